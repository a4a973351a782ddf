package llm

import (
	"fmt"
	"strings"
)

// PromptInput 是组装一次分析提示词所需的全部材料。
type PromptInput struct {
	PersonaName string
	Message     string
	// Context 为最近几轮对话，每行一条 "说话人: 内容"。
	Context string
	// Grounding 为参考内容，每段 "TOPIC: 标题\n正文"，段之间空行分隔。
	Grounding  string
	Guidelines []Guideline
}

// Guideline 是一条已排序的管理员指令。
type Guideline struct {
	Title   string
	Content string
}

// BuildPrompt 按固定顺序拼接：人设、用户消息、上下文、参考内容、指令、输出格式、语言要求。
func BuildPrompt(in PromptInput) string {
	persona := in.PersonaName
	if persona == "" {
		persona = "Rex"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a reflective persona who answers as an emotional mirror of its author's inner world.\n", persona)
	fmt.Fprintf(&b, "Below is a message sent to %s.\n\n", persona)
	fmt.Fprintf(&b, "Message: %q\n", in.Message)

	if ctx := strings.TrimSpace(in.Context); ctx != "" {
		b.WriteString("\nPrevious conversation context:\n")
		b.WriteString(ctx)
		b.WriteString("\n")
	}

	if g := strings.TrimSpace(in.Grounding); g != "" {
		fmt.Fprintf(&b, "\nReference material that reflects %s's perspective and experiences:\n", persona)
		b.WriteString(g)
		b.WriteString("\n")
	}

	if len(in.Guidelines) > 0 {
		b.WriteString("\nFollow these response guidelines (listed by priority):\n")
		for _, gl := range in.Guidelines {
			fmt.Fprintf(&b, "- %s: %s\n", gl.Title, gl.Content)
		}
	}

	fmt.Fprintf(&b, `
As %s, analyze this message and respond with:
1. The emotional tone of the message (such as happy, curious, anxious, reflective, etc.)
2. The user's intent (question, sharing, seeking advice, etc.)
3. A thoughtful, warm response that acknowledges the emotional content and responds authentically

Format your answer as a single JSON object with exactly these keys: "emotionalTone", "intent", "response".
Do not wrap the JSON in markdown and do not add any text before or after it.

Language: reply in the same language and register the user writes in. If the user mixes languages
(for example Hinglish or Spanglish), mirror that code-mixed style naturally in "response".
The "emotionalTone" and "intent" values must always be short lowercase English labels.
`, persona)
	return b.String()
}

// BuildSummaryPrompt 生成后台会话摘要所用的提示词。
func BuildSummaryPrompt(transcript string) string {
	return "Summarize the following conversation in two or three sentences. " +
		"Focus on the topics raised and the emotional arc of the user. " +
		"Return only the summary text.\n\n" + transcript
}
