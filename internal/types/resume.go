// Package types provides type definitions for structured data used throughout the career-copilot system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// StructuredResume represents a parsed resume. A record is created once per
// upload and never mutated afterwards; a new upload produces a new record.
type StructuredResume struct {
	RawText    string       `json:"raw_text,omitempty"`
	Skills     []string     `json:"skills"`
	Education  *Education   `json:"education,omitempty"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
	Summary    string       `json:"summary,omitempty"`
	ATSScore   int          `json:"ats_score"`
	ATSReport  *ATSAnalysis `json:"ats_analysis,omitempty"`
}

// Education holds the single best education match. Fields the heuristics
// could not find stay empty.
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// Experience is one work-experience entry in original document order.
type Experience struct {
	Company     string `json:"company,omitempty"`
	Role        string `json:"role,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description"`
}

// Project is one project entry in original document order.
type Project struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
}

// ATSAnalysis explains how the ATS score was reached.
type ATSAnalysis struct {
	Issues          []string        `json:"issues"`
	PositiveAspects []string        `json:"positive_aspects"`
	SectionPresence map[string]bool `json:"section_presence"`
}
