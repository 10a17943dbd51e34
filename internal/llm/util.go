package llm

import "strings"

// CleanJSONBlock removes a Markdown code fence around a JSON reply.
// Models sometimes fence JSON even under a JSON MIME type; anything else is left untouched.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Drop a language tag such as "json" on the opening fence line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		tag := strings.TrimSpace(text[:idx])
		if len(tag) < 20 && !strings.ContainsAny(tag, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
