// File path: internal/export/docx.go

// Package export renders a finished survey into downloadable document
// containers. Both formats are zip archives of hand-built XML; the markup is
// derived from line prefixes of the survey text (#/##/### headings, ■ and
// **...** bold).
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// DOCX renders the survey text as a Word document archive.
func DOCX(content, title string) ([]byte, error) {
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	if strings.TrimSpace(title) != "" {
		doc.WriteString(docxParagraph(title, 32, true, true))
	}
	for _, line := range strings.Split(content, "\n") {
		doc.WriteString(docxLine(line))
	}
	doc.WriteString(`<w:sectPr/></w:body></w:document>`)

	return zipArchive([]zipEntry{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", doc.String()},
	})
}

func docxLine(line string) string {
	text, style := classifyLine(line)
	switch style {
	case styleHeading1:
		return docxParagraph(text, 28, true, false)
	case styleHeading2:
		return docxParagraph(text, 24, true, false)
	case styleHeading3:
		return docxParagraph(text, 22, true, false)
	case styleBold:
		return docxParagraph(text, 0, true, false)
	default:
		return docxParagraph(text, 0, false, false)
	}
}

func docxParagraph(text string, halfPointSize int, bold, center bool) string {
	if strings.TrimSpace(text) == "" {
		return `<w:p/>`
	}
	var props strings.Builder
	if bold {
		props.WriteString(`<w:b/>`)
	}
	if halfPointSize > 0 {
		fmt.Fprintf(&props, `<w:sz w:val="%d"/>`, halfPointSize)
	}
	rPr := ""
	if props.Len() > 0 {
		rPr = `<w:rPr>` + props.String() + `</w:rPr>`
	}
	pPr := ""
	if center {
		pPr = `<w:pPr><w:jc w:val="center"/></w:pPr>`
	}
	return fmt.Sprintf(`<w:p>%s<w:r>%s<w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		pPr, rPr, escapeXML(text))
}

type lineStyle int

const (
	styleBody lineStyle = iota
	styleHeading1
	styleHeading2
	styleHeading3
	styleBold
)

// classifyLine maps the survey text's lightweight markup to a style and
// returns the line with its markers stripped.
func classifyLine(line string) (string, lineStyle) {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "### "):
		return strings.TrimPrefix(trimmed, "### "), styleHeading3
	case strings.HasPrefix(trimmed, "## "):
		return strings.TrimPrefix(trimmed, "## "), styleHeading2
	case strings.HasPrefix(trimmed, "# "):
		return strings.TrimPrefix(trimmed, "# "), styleHeading1
	case strings.HasPrefix(trimmed, "■"):
		return trimmed, styleBold
	case strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") && len(trimmed) > 4:
		return strings.TrimSuffix(strings.TrimPrefix(trimmed, "**"), "**"), styleBold
	default:
		return line, styleBody
	}
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string { return xmlReplacer.Replace(s) }

type zipEntry struct {
	name string
	body string
}

func zipArchive(entries []zipEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("export: create %s: %w", e.name, err)
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			return nil, fmt.Errorf("export: write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export: close archive: %w", err)
	}
	return buf.Bytes(), nil
}
