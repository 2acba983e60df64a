// Package render serializes a customized resume into a downloadable
// document. Rendering is purely presentational: missing sections are
// omitted with no placeholder, and absent optional fields never cause a
// failure.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/arnav/career-copilot/internal/types"
)

// Format selects the output document type.
type Format string

// Supported output formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// UnsupportedFormatError indicates a format the renderer cannot produce.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported render format: %s", e.Format)
}

// RenderError indicates a document that could not be written.
type RenderError struct {
	Path  string
	Cause error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error for %s: %v", e.Path, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Renderer writes resume documents under a fixed output directory.
type Renderer struct {
	outputDir string
}

// NewRenderer creates the output directory if needed.
func NewRenderer(outputDir string) (*Renderer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Renderer{outputDir: outputDir}, nil
}

// Render writes the resume as <stem>.<format> and returns the file path.
func (r *Renderer) Render(resume *types.CustomizedResume, format Format, stem string) (string, error) {
	switch format {
	case FormatPDF:
		return r.RenderPDF(resume, stem)
	case FormatDOCX:
		return r.RenderDOCX(resume, stem)
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}
}

// educationLine flattens an education record into one display line, empty
// when there is nothing to show.
func educationLine(edu *types.Education) string {
	if edu == nil {
		return ""
	}
	var sb strings.Builder
	if edu.Degree != "" {
		sb.WriteString(edu.Degree)
	}
	if edu.Field != "" {
		sb.WriteString(" in " + edu.Field)
	}
	if edu.Institution != "" {
		sb.WriteString(" - " + edu.Institution)
	}
	if edu.Year != "" {
		sb.WriteString(" (" + edu.Year + ")")
	}
	return strings.TrimSpace(sb.String())
}

// headerLine builds the bold "Role - Company (Duration)" line for an
// experience entry.
func headerLine(role, company, duration string) string {
	line := role
	if line == "" {
		line = "N/A"
	}
	if company != "" {
		line += " - " + company
	}
	if duration != "" {
		line += " (" + duration + ")"
	}
	return line
}

// projectLine builds the bold "Name - tech, tech" line for a project entry.
func projectLine(p types.Project) string {
	line := p.Name
	if line == "" {
		line = "Project"
	}
	if len(p.Tech) > 0 {
		line += " - " + strings.Join(p.Tech, ", ")
	}
	return line
}
