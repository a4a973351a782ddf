package llm

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var (
	// 从第一个 { 到最后一个 } 的贪婪匹配。
	jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)
	fenceRe     = regexp.MustCompile("(?s)```[a-zA-Z]*")
	fieldRes    = map[string]*regexp.Regexp{
		"emotionalTone": fieldRegexp("emotionalTone"),
		"intent":        fieldRegexp("intent"),
		"response":      fieldRegexp("response"),
	}
	// 残留的 "key": "value" 行以及只剩一个花括号的行。
	kvFragmentRe = regexp.MustCompile(`(?m)^\s*\{?\s*"?(emotionalTone|intent|response)"?\s*[:=]\s*"?[^\n]*$`)
	loneBraceRe  = regexp.MustCompile(`(?m)^\s*[{}]\s*,?\s*$`)
	knownKeyRe   = regexp.MustCompile(`"?(emotionalTone|intent|response)"?\s*[:=]`)
)

func fieldRegexp(key string) *regexp.Regexp {
	return regexp.MustCompile(`"?` + key + `"?\s*[:=]\s*"((?:[^"\\]|\\.)*)"`)
}

type rawAnalysis struct {
	EmotionalTone *string `json:"emotionalTone"`
	Intent        *string `json:"intent"`
	Response      *string `json:"response"`
}

// ParseOutput 从模型的自由文本中提取结构化结果，依次尝试：
// JSON 块解析、逐字段正则提取、去除 JSON 片段后使用剩余文本。
func ParseOutput(text string) Analysis {
	if a, ok := parseJSONBlock(text); ok {
		return a
	}
	if a, ok := parseFragments(text); ok {
		return a
	}
	return stripToReply(text)
}

func parseJSONBlock(text string) (Analysis, bool) {
	candidates := make([]string, 0, 2)
	if m := jsonBlockRe.FindString(text); m != "" {
		candidates = append(candidates, m)
	}
	if m := firstBalancedObject(text); m != "" && (len(candidates) == 0 || m != candidates[0]) {
		candidates = append(candidates, m)
	}

	for _, block := range candidates {
		var raw rawAnalysis
		if err := json.Unmarshal([]byte(block), &raw); err != nil {
			continue
		}
		if raw.EmotionalTone == nil && raw.Intent == nil && raw.Response == nil {
			continue
		}
		a := Analysis{Outcome: OutcomeParsed}
		a.EmotionalTone = valueOr(raw.EmotionalTone, DefaultTone, &a.Outcome)
		a.Intent = valueOr(raw.Intent, DefaultIntent, &a.Outcome)
		a.Response = valueOr(raw.Response, FallbackEmptyResponseReply, &a.Outcome)
		return a, true
	}
	return Analysis{}, false
}

func valueOr(v *string, def string, outcome *Outcome) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		*outcome = OutcomePartial
		return def
	}
	return strings.TrimSpace(*v)
}

// firstBalancedObject 返回第一个括号平衡的顶层 {...}，会跳过字符串字面量中的括号。
func firstBalancedObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}
	end := balancedEnd(text, start)
	if end < 0 {
		return ""
	}
	return text[start:end]
}

// balancedEnd 返回从 text[start]（必须是 '{'）开始的平衡块结束后的下标，不平衡时返回 -1。
func balancedEnd(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

func parseFragments(text string) (Analysis, bool) {
	response, ok := extractField(text, "response")
	if !ok {
		return Analysis{}, false
	}
	a := Analysis{Response: response, Outcome: OutcomePartial}
	if tone, ok := extractField(text, "emotionalTone"); ok {
		a.EmotionalTone = tone
	} else {
		a.EmotionalTone = DefaultTone
	}
	if intent, ok := extractField(text, "intent"); ok {
		a.Intent = intent
	} else {
		a.Intent = DefaultIntent
	}
	return a, true
}

func extractField(text, key string) (string, bool) {
	m := fieldRes[key].FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	value, err := strconv.Unquote(`"` + m[1] + `"`)
	if err != nil {
		value = m[1]
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func stripToReply(text string) Analysis {
	cleaned := stripStructuredBlocks(text)
	cleaned = fenceRe.ReplaceAllString(cleaned, "")
	cleaned = kvFragmentRe.ReplaceAllString(cleaned, "")
	cleaned = loneBraceRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = FallbackUnparsedReply
	}
	return Analysis{
		EmotionalTone: DefaultTone,
		Intent:        DefaultIntent,
		Response:      cleaned,
		Outcome:       OutcomeUnparsed,
	}
}

// stripStructuredBlocks 删除含有 emotionalTone/intent/response 字段的平衡 {...} 块，
// 普通文字里的花括号以及块之间的文字原样保留。
func stripStructuredBlocks(text string) string {
	var b strings.Builder
	i := 0
	for i < len(text) {
		open := strings.IndexByte(text[i:], '{')
		if open < 0 {
			break
		}
		open += i
		end := balancedEnd(text, open)
		if end < 0 {
			break
		}
		b.WriteString(text[i:open])
		if block := text[open:end]; !knownKeyRe.MatchString(block) {
			b.WriteString(block)
		}
		i = end
	}
	b.WriteString(text[i:])
	return b.String()
}
