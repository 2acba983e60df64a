// Package parsing converts raw resume text into a StructuredResume using
// best-effort regex heuristics. The pattern set, ordering and thresholds are
// part of the observable contract (the ATS score and extracted fields are
// user-facing), so they are reproduced exactly rather than upgraded to a
// grammar or NLP pipeline. A heuristic miss is not an error: the field stays
// empty and the ATS scorer treats the absence as a deduction.
package parsing

import (
	"regexp"
	"strings"

	"github.com/arnav/career-copilot/internal/extraction"
	"github.com/arnav/career-copilot/internal/types"
	"github.com/arnav/career-copilot/internal/vocab"
)

var (
	skillsHeadingRe = regexp.MustCompile(`(?i)skills?[:\-]?\s*([^\n]+)`)
	skillSplitRe    = regexp.MustCompile(`[,|•\-\n]`)
	summaryRe       = regexp.MustCompile(`(?i)summary[:\-]?\s*([^\n]+(?:\n[^\n]+){0,3})`)
)

// Parser extracts structured fields from resume text. The vocabulary is
// injected at construction and never mutated.
type Parser struct {
	skills *vocab.Set
}

// NewParser creates a Parser with the given skill vocabulary.
func NewParser(skills *vocab.Set) *Parser {
	return &Parser{skills: skills}
}

// DefaultParser creates a Parser with the stock vocabulary.
func DefaultParser() *Parser {
	return NewParser(vocab.DefaultSkills())
}

// ParseFile extracts text from the document at path and parses it.
// Extraction failures surface as typed errors from the extraction package.
func (p *Parser) ParseFile(path string) (*types.StructuredResume, error) {
	text, err := extraction.Text(path)
	if err != nil {
		return nil, err
	}
	return p.ParseText(text), nil
}

// ParseText parses raw resume text. It never fails; fields the heuristics
// cannot find stay empty.
func (p *Parser) ParseText(text string) *types.StructuredResume {
	resume := &types.StructuredResume{
		RawText:    text,
		Skills:     p.ExtractSkills(text),
		Education:  p.ExtractEducation(text),
		Experience: p.ExtractExperience(text),
		Projects:   p.ExtractProjects(text),
		Summary:    p.ExtractSummary(text),
	}

	score, analysis := p.CalculateATSScore(text, resume)
	resume.ATSScore = score
	resume.ATSReport = &analysis
	return resume
}

// ExtractSkills matches the vocabulary as case-insensitive substrings and
// unions in tokens found after a "Skills:" style heading, split on
// comma/pipe/bullet/newline and filtered to length > 2. Vocabulary matches
// are title-cased; heading-derived entries keep their original casing.
// The result is deduplicated by exact string.
func (p *Parser) ExtractSkills(text string) []string {
	found := p.skills.MatchSubstrings(text)

	if m := skillsHeadingRe.FindStringSubmatch(text); m != nil {
		for _, token := range skillSplitRe.Split(m[1], -1) {
			token = strings.TrimSpace(token)
			if len(token) > 2 {
				found = append(found, token)
			}
		}
	}

	seen := make(map[string]bool)
	skills := make([]string, 0, len(found))
	for _, s := range found {
		if !seen[s] {
			seen[s] = true
			skills = append(skills, s)
		}
	}
	return skills
}

// ExtractSummary captures up to three lines following a "Summary" heading.
func (p *Parser) ExtractSummary(text string) string {
	if m := summaryRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
