// File path: internal/llm/extract_test.go
package llm

import (
	"encoding/json"
	"testing"
)

func TestExtractJSONFenced(t *testing.T) {
	raw := "분석 결과입니다.\n```json\n{\"sufficient\": true, \"reason\": \"목표가 구체적임\"}\n```\n이상입니다."
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	var v struct {
		Sufficient bool   `json:"sufficient"`
		Reason     string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(got), &v); err != nil {
		t.Fatalf("unmarshal %q: %v", got, err)
	}
	if !v.Sufficient || v.Reason == "" {
		t.Fatalf("bad payload: %+v", v)
	}
}

func TestExtractJSONBraceBalance(t *testing.T) {
	raw := `응답: {"items": [{"name": "건강 {상태}"}]} 끝`
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != `{"items": [{"name": "건강 {상태}"}]}` {
		t.Fatalf("got %q", got)
	}
}

func TestExtractJSONArray(t *testing.T) {
	raw := "목록:\n[{\"item\": \"만족도\", \"layout_code\": \"RS(5)\"}]"
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	var v []map[string]string
	if err := json.Unmarshal([]byte(got), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(v) != 1 || v[0]["layout_code"] != "RS(5)" {
		t.Fatalf("payload: %v", v)
	}
}

func TestExtractJSONStripsComments(t *testing.T) {
	raw := "{\n  \"url\": \"http://example.com\", // 주석\n  \"ok\": true\n}"
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	var v struct {
		URL string `json:"url"`
		OK  bool   `json:"ok"`
	}
	if err := json.Unmarshal([]byte(got), &v); err != nil {
		t.Fatalf("unmarshal %q: %v", got, err)
	}
	if v.URL != "http://example.com" || !v.OK {
		t.Fatalf("payload: %+v", v)
	}
}

func TestExtractJSONRespectsStrings(t *testing.T) {
	raw := `{"text": "중괄호 } 포함 \" 문자열"}`
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != raw {
		t.Fatalf("got %q", got)
	}
}

func TestExtractJSONErrors(t *testing.T) {
	for _, raw := range []string{"", "JSON 없음", "{미완성"} {
		if _, err := ExtractJSON(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
