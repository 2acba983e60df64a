package render

import (
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/arnav/career-copilot/internal/types"
)

// RenderPDF writes a paginated page-flow document: name, summary, skills as
// a comma-joined list, experience and project entries with a bold header
// line, and a single education line.
func (r *Renderer) RenderPDF(resume *types.CustomizedResume, stem string) (string, error) {
	path := filepath.Join(r.outputDir, stem+".pdf")

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	if resume.Name != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 9, resume.Name, "", "L", false)
		pdf.Ln(2)
	}

	if resume.Summary != "" {
		pdfHeading(pdf, "Summary")
		pdfBody(pdf, resume.Summary)
	}

	if len(resume.Skills) > 0 {
		pdfHeading(pdf, "Skills")
		pdfBody(pdf, strings.Join(resume.Skills, ", "))
	}

	if len(resume.Experience) > 0 {
		pdfHeading(pdf, "Experience")
		for _, exp := range resume.Experience {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, headerLine(exp.Role, exp.Company, exp.Duration), "", "L", false)
			if exp.Description != "" {
				pdfBody(pdf, exp.Description)
			}
			pdf.Ln(1)
		}
	}

	if len(resume.Projects) > 0 {
		pdfHeading(pdf, "Projects")
		for _, project := range resume.Projects {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, projectLine(project), "", "L", false)
			if project.Description != "" {
				pdfBody(pdf, project.Description)
			}
			pdf.Ln(1)
		}
	}

	if line := educationLine(resume.Education); line != "" {
		pdfHeading(pdf, "Education")
		pdfBody(pdf, line)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", &RenderError{Path: path, Cause: err}
	}
	return path, nil
}

func pdfHeading(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 7, title, "", "L", false)
}

func pdfBody(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, text, "", "L", false)
}
