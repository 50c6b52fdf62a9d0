// File path: internal/export/export_test.go
package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	files := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		files[f.Name] = string(body)
	}
	return files
}

func TestDOCXStructure(t *testing.T) {
	content := "# 설문지\n## 1. 건강\n문항 1. 귀하의 성별은 무엇입니까? (SC)\n■ 안내사항"
	data, err := DOCX(content, "주민 만족도 조사")
	if err != nil {
		t.Fatalf("docx: %v", err)
	}
	files := readArchive(t, data)

	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if _, ok := files[name]; !ok {
			t.Fatalf("archive missing %s, has %v", name, keys(files))
		}
	}
	doc := files["word/document.xml"]
	if !strings.Contains(doc, "주민 만족도 조사") {
		t.Fatalf("title missing from document")
	}
	if !strings.Contains(doc, `<w:sz w:val="28"/>`) {
		t.Fatalf("heading size not applied: %s", doc)
	}
	if strings.Contains(doc, "# 설문지") {
		t.Fatalf("heading marker leaked into output")
	}
	if !strings.Contains(doc, "■ 안내사항") {
		t.Fatalf("bold marker line dropped")
	}
}

func TestDOCXEscapesXML(t *testing.T) {
	data, err := DOCX("문항 1. 소득이 <100만원 & 지출>50만원인 경우", "")
	if err != nil {
		t.Fatalf("docx: %v", err)
	}
	doc := readArchive(t, data)["word/document.xml"]
	if !strings.Contains(doc, "&lt;100만원 &amp; 지출&gt;50만원") {
		t.Fatalf("special characters not escaped: %s", doc)
	}
}

func TestHWPXStructure(t *testing.T) {
	data, err := HWPX("문항 1. 만족도 (RS(5))", "설문지")
	if err != nil {
		t.Fatalf("hwpx: %v", err)
	}

	// The mimetype entry must come first for readers that sniff it.
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) == 0 || zr.File[0].Name != "mimetype" {
		t.Fatalf("first entry = %q, want mimetype", zr.File[0].Name)
	}

	files := readArchive(t, data)
	if files["mimetype"] != "application/hwp+zip" {
		t.Fatalf("mimetype = %q", files["mimetype"])
	}
	for _, name := range []string{"version.xml", "META-INF/container.xml", "Contents/content.hpf", "Contents/header.xml", "Contents/section0.xml"} {
		if _, ok := files[name]; !ok {
			t.Fatalf("archive missing %s", name)
		}
	}
	if !strings.Contains(files["Contents/section0.xml"], "문항 1. 만족도") {
		t.Fatalf("content missing from section")
	}
}

func TestClassifyLine(t *testing.T) {
	cases := []struct {
		in    string
		text  string
		style lineStyle
	}{
		{"# 제목", "제목", styleHeading1},
		{"## 영역", "영역", styleHeading2},
		{"### 항목", "항목", styleHeading3},
		{"■ 안내", "■ 안내", styleBold},
		{"**강조**", "강조", styleBold},
		{"일반 문장", "일반 문장", styleBody},
		{"", "", styleBody},
	}
	for _, tc := range cases {
		text, style := classifyLine(tc.in)
		if text != tc.text || style != tc.style {
			t.Fatalf("classifyLine(%q) = (%q, %d), want (%q, %d)", tc.in, text, style, tc.text, tc.style)
		}
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
