// File path: internal/survey/layout.go
package survey

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LayoutInfo describes one of the seven response-format codes.
type LayoutInfo struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Parameterized reports whether the code accepts a numeric parameter,
	// written as CODE(n): scale length, ranked count, or grid columns.
	Parameterized bool `json:"parameterized"`
}

// LayoutCodes is the fixed layout catalog. Codes and display names must not
// change; exported documents and the reference catalog both use them.
var LayoutCodes = map[string]LayoutInfo{
	"OQ": {Code: "OQ", Name: "오픈형", Description: "응답자가 자유롭게 의견을 서술하는 개방형 질문입니다."},
	"SC": {Code: "SC", Name: "Single Choice (선다형)", Description: "여러 선택지 중 하나만 선택합니다."},
	"MA": {Code: "MA", Name: "Multiple Answer (복수 응답형)", Description: "여러 선택지 중 하나 이상을 선택할 수 있습니다."},
	"DC": {Code: "DC", Name: "Dichotomous (이분형)", Description: "예/아니오와 같이 선택지가 두 개로 제한됩니다."},
	"RS": {Code: "RS", Name: "Rating Scale (척도형)", Description: "정도나 수준을 숫자 척도로 측정합니다.", Parameterized: true},
	"RK": {Code: "RK", Name: "Ranking (순위형)", Description: "항목들을 선호 순서대로 나열합니다.", Parameterized: true},
	"MG": {Code: "MG", Name: "Matrix / Grid (매트릭스/표 형식)", Description: "여러 항목에 동일한 척도를 표 형태로 반복 적용합니다.", Parameterized: true},
}

// LayoutCodeOrder keeps help text stable.
var LayoutCodeOrder = []string{"OQ", "SC", "MA", "DC", "RS", "RK", "MG"}

// LayoutAssignment binds one item to a layout code, optionally
// parameterized, e.g. {"만족도", "RS(7)", ...}.
type LayoutAssignment struct {
	Item        string `json:"item"`
	LayoutCode  string `json:"layout_code"`
	LayoutName  string `json:"layout_name,omitempty"`
	Description string `json:"layout_description,omitempty"`
	Reasoning   string `json:"reasoning,omitempty"`
}

var layoutCodeRe = regexp.MustCompile(`^([A-Za-z]{2})(?:\((\d+)\))?$`)

// ParseLayoutCode validates a raw code such as "SC" or "RS(7)" and returns
// the base code, the optional parameter, and the catalog entry.
func ParseLayoutCode(raw string) (base string, param int, info LayoutInfo, err error) {
	m := layoutCodeRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", 0, LayoutInfo{}, fmt.Errorf("unrecognized layout code %q", raw)
	}
	base = strings.ToUpper(m[1])
	info, ok := LayoutCodes[base]
	if !ok {
		return "", 0, LayoutInfo{}, fmt.Errorf("unknown layout code %q", base)
	}
	if m[2] != "" {
		if !info.Parameterized {
			return "", 0, LayoutInfo{}, fmt.Errorf("layout code %s does not take a parameter", base)
		}
		param, err = strconv.Atoi(m[2])
		if err != nil || param <= 0 {
			return "", 0, LayoutInfo{}, fmt.Errorf("invalid parameter in %q", raw)
		}
	}
	return base, param, info, nil
}

// BaseLayoutCode strips an optional "(n)" suffix: "RS(7)" -> "RS".
func BaseLayoutCode(code string) string {
	if idx := strings.IndexByte(code, '('); idx >= 0 {
		code = code[:idx]
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// AnnotateLayouts fills display names and descriptions from the catalog for
// every assignment whose base code is known.
func AnnotateLayouts(assignments []LayoutAssignment) []LayoutAssignment {
	out := make([]LayoutAssignment, len(assignments))
	for i, a := range assignments {
		if info, ok := LayoutCodes[BaseLayoutCode(a.LayoutCode)]; ok {
			a.LayoutName = info.Name
			a.Description = info.Description
		}
		out[i] = a
	}
	return out
}

// ParseLayoutLines parses direct "item CODE" input, one item per line, with
// an optional numeric parameter in parentheses. It is the deterministic
// fallback when the generation-backed parser is unavailable.
func ParseLayoutLines(input string) ([]LayoutAssignment, error) {
	var out []LayoutAssignment
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %q is not in item-code form", line)
		}
		code := fields[len(fields)-1]
		if _, _, _, err := ParseLayoutCode(code); err != nil {
			return nil, err
		}
		item := strings.TrimSpace(strings.Join(fields[:len(fields)-1], " "))
		out = append(out, LayoutAssignment{Item: item, LayoutCode: strings.ToUpper(code)})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no layout assignments found")
	}
	return AnnotateLayouts(out), nil
}

// ContainsLayoutCode reports whether the text mentions any catalog code.
// Used to tell malformed layout input apart from unrelated chatter.
func ContainsLayoutCode(text string) bool {
	upper := strings.ToUpper(text)
	for _, code := range LayoutCodeOrder {
		if strings.Contains(upper, code) {
			return true
		}
	}
	return false
}

// EncodeLayouts serializes assignments into the layout_setting field.
func EncodeLayouts(assignments []LayoutAssignment) (string, error) {
	data, err := json.MarshalIndent(assignments, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode layout setting: %w", err)
	}
	return string(data), nil
}

// DecodeLayouts parses a layout_setting value produced by EncodeLayouts.
func DecodeLayouts(value string) ([]LayoutAssignment, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var out []LayoutAssignment
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return nil, fmt.Errorf("decode layout setting: %w", err)
	}
	return out, nil
}

// FormatLayoutList renders assignments for a confirmation prompt.
func FormatLayoutList(assignments []LayoutAssignment) string {
	var b strings.Builder
	for i, a := range assignments {
		if a.LayoutName != "" {
			fmt.Fprintf(&b, "%d. %s: %s (%s)\n", i+1, a.Item, a.LayoutCode, a.LayoutName)
		} else {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, a.Item, a.LayoutCode)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// LayoutHelp summarizes available codes for prompts and re-prompts.
func LayoutHelp() string {
	parts := make([]string, 0, len(LayoutCodeOrder))
	for _, code := range LayoutCodeOrder {
		parts = append(parts, fmt.Sprintf("%s(%s)", code, LayoutCodes[code].Name))
	}
	return strings.Join(parts, ", ")
}
