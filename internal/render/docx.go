package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/arnav/career-copilot/internal/types"
)

// The blank template carries the package scaffolding of a docx file; the
// renderer replaces its document body wholesale.
//
//go:embed template.docx
var docxTemplate []byte

const (
	docxNameSize    = 36 // half-points, 18pt
	docxHeadingSize = 28 // half-points, 14pt
)

// RenderDOCX writes a flow document with the same section set as the PDF
// renderer. The WordprocessingML body is assembled directly and written
// through the docx template.
func (r *Renderer) RenderDOCX(resume *types.CustomizedResume, stem string) (string, error) {
	path := filepath.Join(r.outputDir, stem+".docx")

	var b docxBody

	if resume.Name != "" {
		b.addSized(resume.Name, docxNameSize)
	}

	if resume.Summary != "" {
		b.addSized("Summary", docxHeadingSize)
		b.addPlain(resume.Summary)
	}

	if len(resume.Skills) > 0 {
		b.addSized("Skills", docxHeadingSize)
		b.addPlain(strings.Join(resume.Skills, ", "))
	}

	if len(resume.Experience) > 0 {
		b.addSized("Experience", docxHeadingSize)
		for _, exp := range resume.Experience {
			b.addBold(headerLine(exp.Role, exp.Company, exp.Duration))
			if exp.Description != "" {
				b.addPlain(exp.Description)
			}
		}
	}

	if len(resume.Projects) > 0 {
		b.addSized("Projects", docxHeadingSize)
		for _, project := range resume.Projects {
			b.addBold(projectLine(project))
			if project.Description != "" {
				b.addPlain(project.Description)
			}
		}
	}

	if line := educationLine(resume.Education); line != "" {
		b.addSized("Education", docxHeadingSize)
		b.addPlain(line)
	}

	tpl, err := docx.ReadDocxFromMemory(bytes.NewReader(docxTemplate), int64(len(docxTemplate)))
	if err != nil {
		return "", &RenderError{Path: path, Cause: err}
	}
	defer func() { _ = tpl.Close() }()

	doc := tpl.Editable()
	doc.SetContent(b.documentXML())
	if err := doc.WriteToFile(path); err != nil {
		return "", &RenderError{Path: path, Cause: err}
	}
	return path, nil
}

// docxBody accumulates WordprocessingML paragraphs.
type docxBody struct {
	paragraphs []string
}

func (b *docxBody) addPlain(text string) {
	b.add(text, false, 0)
}

func (b *docxBody) addBold(text string) {
	b.add(text, true, 0)
}

// addSized adds a bold run at the given half-point font size.
func (b *docxBody) addSized(text string, halfPoints int) {
	b.add(text, true, halfPoints)
}

func (b *docxBody) add(text string, bold bool, halfPoints int) {
	var props strings.Builder
	if bold {
		props.WriteString("<w:b/>")
	}
	if halfPoints > 0 {
		fmt.Fprintf(&props, `<w:sz w:val="%d"/>`, halfPoints)
	}

	var p strings.Builder
	p.WriteString("<w:p><w:r>")
	if props.Len() > 0 {
		p.WriteString("<w:rPr>" + props.String() + "</w:rPr>")
	}
	p.WriteString(`<w:t xml:space="preserve">` + escapeXML(text) + "</w:t></w:r></w:p>")
	b.paragraphs = append(b.paragraphs, p.String())
}

func (b *docxBody) documentXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		strings.Join(b.paragraphs, "") +
		"<w:sectPr/></w:body></w:document>"
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(text string) string {
	return xmlEscaper.Replace(text)
}
