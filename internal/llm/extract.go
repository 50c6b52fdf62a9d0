// File path: internal/llm/extract.go
package llm

import (
	"fmt"
	"strings"
)

// ExtractJSON pulls the first JSON object or array out of model output.
// It prefers a fenced ```json block, then falls back to brace balancing
// over the raw text. Line comments inside the payload are stripped since
// some models annotate their JSON.
func ExtractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("extract json: empty response")
	}
	if fenced := extractFenced(text); fenced != "" {
		text = fenced
	}
	payload := balanceDelimiters(text)
	if payload == "" {
		return "", fmt.Errorf("extract json: no object or array found")
	}
	return stripLineComments(payload), nil
}

func extractFenced(text string) string {
	for _, marker := range []string{"```json", "```"} {
		start := strings.Index(text, marker)
		if start < 0 {
			continue
		}
		rest := text[start+len(marker):]
		end := strings.Index(rest, "```")
		if end < 0 {
			continue
		}
		body := strings.TrimSpace(rest[:end])
		if strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[") {
			return body
		}
	}
	return ""
}

// balanceDelimiters returns the first balanced {...} or [...] span,
// respecting string literals and escapes.
func balanceDelimiters(text string) string {
	start := -1
	var open, close byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			start = i
			open = text[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// stripLineComments removes // comments that sit outside string literals.
func stripLineComments(payload string) string {
	var b strings.Builder
	inString := false
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if inString {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(payload) {
				i++
				b.WriteByte(payload[i])
			} else if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if c == '/' && i+1 < len(payload) && payload[i+1] == '/' {
			for i < len(payload) && payload[i] != '\n' {
				i++
			}
			if i < len(payload) {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteByte(c)
	}
	return strings.TrimSpace(b.String())
}
