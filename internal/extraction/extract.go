// Package extraction pulls plain text out of uploaded resume documents.
// Only the text layer is read; scanned-image PDFs yield empty or garbage
// text and that is a documented limitation, not a bug.
package extraction

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Text extracts plain text from the file at path, dispatching on its
// extension. Supported: .pdf, .docx, .doc. Returns *UnsupportedFormatError
// for anything else and *ExtractionError when the document is unreadable.
func Text(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return fromPDF(path)
	case ".docx", ".doc":
		return fromDocx(path)
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

// fromPDF concatenates the text layer of every page, one page per line.
func fromPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to read file", Cause: err}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to read pdf", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages; partial text beats none.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// fromDocx joins paragraph text from the document body.
func fromDocx(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to read file", Cause: err}
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Path: path, Message: "failed to parse docx", Cause: err}
	}
	defer doc.Close()

	return plainTextFromDocxXML(doc.Editable().GetContent()), nil
}

// plainTextFromDocxXML strips WordprocessingML markup, turning paragraph
// boundaries into newlines.
func plainTextFromDocxXML(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	var sb strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	lines := strings.Split(sb.String(), "\n")
	var out []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
