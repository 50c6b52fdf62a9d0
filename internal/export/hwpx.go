// File path: internal/export/hwpx.go
package export

import (
	"fmt"
	"strings"
)

const hwpxVersion = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<hv:HCFVersion xmlns:hv="http://www.hancom.co.kr/hwpml/2011/version" tagetApplication="WORDPROCESSOR" major="5" minor="0" micro="5" buildNumber="0" os="1" xmlVersion="1.4" application="surveyforge"/>`

const hwpxContainer = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<ocf:container xmlns:ocf="urn:oasis:names:tc:opendocument:xmlns:container">
<ocf:rootfiles>
<ocf:rootfile full-path="Contents/content.hpf" media-type="application/hwpml-package+xml"/>
</ocf:rootfiles>
</ocf:container>`

const hwpxManifest = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<opf:package xmlns:opf="http://www.idpf.org/2007/opf/" version="" unique-identifier="" id="">
<opf:manifest>
<opf:item id="header" href="Contents/header.xml" media-type="application/xml"/>
<opf:item id="section0" href="Contents/section0.xml" media-type="application/xml"/>
</opf:manifest>
<opf:spine>
<opf:itemref idref="header"/>
<opf:itemref idref="section0"/>
</opf:spine>
</opf:package>`

const hwpxHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<hh:head xmlns:hh="http://www.hancom.co.kr/hwpml/2011/head" version="1.4" secCnt="1">
<hh:refList>
<hh:fontfaces itemCnt="1">
<hh:fontface lang="HANGUL" fontCnt="1"><hh:font id="0" face="함초롬바탕" type="TTF" isEmbedded="0"/></hh:fontface>
</hh:fontfaces>
<hh:charProperties itemCnt="2">
<hh:charPr id="0" height="1000" textColor="#000000"/>
<hh:charPr id="1" height="1000" textColor="#000000"><hh:bold/></hh:charPr>
</hh:charProperties>
</hh:refList>
</hh:head>`

// HWPX renders the survey text as a Hangul word-processor archive. The
// mimetype entry must be the first file in the zip.
func HWPX(content, title string) ([]byte, error) {
	var section strings.Builder
	section.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<hs:sec xmlns:hs="http://www.hancom.co.kr/hwpml/2011/section" xmlns:hp="http://www.hancom.co.kr/hwpml/2011/paragraph">`)
	if strings.TrimSpace(title) != "" {
		section.WriteString(hwpxParagraph(title, true))
	}
	for _, line := range strings.Split(content, "\n") {
		text, style := classifyLine(line)
		section.WriteString(hwpxParagraph(text, style != styleBody))
	}
	section.WriteString(`</hs:sec>`)

	return zipArchive([]zipEntry{
		{"mimetype", "application/hwp+zip"},
		{"version.xml", hwpxVersion},
		{"META-INF/container.xml", hwpxContainer},
		{"Contents/content.hpf", hwpxManifest},
		{"Contents/header.xml", hwpxHeader},
		{"Contents/section0.xml", section.String()},
	})
}

func hwpxParagraph(text string, bold bool) string {
	charPr := 0
	if bold {
		charPr = 1
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Sprintf(`<hp:p paraPrIDRef="0" styleIDRef="0"><hp:run charPrIDRef="%d"/></hp:p>`, charPr)
	}
	return fmt.Sprintf(`<hp:p paraPrIDRef="0" styleIDRef="0"><hp:run charPrIDRef="%d"><hp:t>%s</hp:t></hp:run></hp:p>`,
		charPr, escapeXML(text))
}
