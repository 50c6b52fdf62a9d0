// File path: internal/knowledge/keywords.go
package knowledge

import (
	"regexp"
	"strings"
)

var (
	leadingNumberRe = regexp.MustCompile(`^\d+\.\s*`)
	parenRe         = regexp.MustCompile(`\s*\([^)]*\)`)
	itemSplitRe     = regexp.MustCompile(`[,，]`)
)

// AreaNames pulls area names out of a numbered hierarchical structure such
// as "1. 건강 (의료, 운동)\n2. 주거: 주택 환경". Numbering, trailing
// colon-descriptions, and parenthesized notes are stripped.
func AreaNames(hierarchicalStructure string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(hierarchicalStructure, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cleaned := leadingNumberRe.ReplaceAllString(line, "")
		if idx := strings.Index(cleaned, ":"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(parenRe.ReplaceAllString(cleaned, ""))
		if cleaned != "" && !seen[cleaned] {
			seen[cleaned] = true
			out = append(out, cleaned)
		}
	}
	return out
}

// ItemKeywords pulls item keywords out of a section-items listing such as
// "1. 건강: 만성질환, 운동 습관". The part before a colon is the area label
// and is dropped; comma-separated items on the right become keywords.
func ItemKeywords(sectionItems string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(sectionItems, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		right := line
		if idx := strings.Index(line, ":"); idx >= 0 {
			right = line[idx+1:]
		}
		for _, part := range itemSplitRe.Split(right, -1) {
			part = strings.TrimSpace(part)
			if part != "" && !seen[part] {
				seen[part] = true
				out = append(out, part)
			}
		}
	}
	return out
}
