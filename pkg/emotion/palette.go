// Package emotion 把模型输出的自由文本情绪标签映射为展示用的颜色。
package emotion

import "strings"

// DefaultColor 用于无法识别的情绪标签。
const DefaultColor = "#9E9E9E"

type entry struct {
	name  string
	color string
}

// 顺序即子串匹配的优先级。
var palette = []entry{
	{"happy", "#4CAF50"},
	{"joyful", "#8BC34A"},
	{"curious", "#2196F3"},
	{"excited", "#FF9800"},
	{"neutral", "#9E9E9E"},
	{"reflective", "#9C27B0"},
	{"nostalgic", "#673AB7"},
	{"anxious", "#FFC107"},
	{"sad", "#607D8B"},
	{"angry", "#F44336"},
	{"confused", "#FF5722"},
	{"frustrated", "#E91E63"},
}

var exact = func() map[string]string {
	m := make(map[string]string, len(palette))
	for _, e := range palette {
		m[e.name] = e.color
	}
	return m
}()

// Color 返回情绪标签对应的颜色：先精确匹配，再按子串匹配，最后回退到 DefaultColor。
func Color(tone string) string {
	normalized := strings.ToLower(strings.TrimSpace(tone))
	if normalized == "" {
		return DefaultColor
	}
	if c, ok := exact[normalized]; ok {
		return c
	}
	for _, e := range palette {
		if strings.Contains(normalized, e.name) {
			return e.color
		}
	}
	return DefaultColor
}

// Known 报告该标签是否能精确命中调色板。
func Known(tone string) bool {
	_, ok := exact[strings.ToLower(strings.TrimSpace(tone))]
	return ok
}
