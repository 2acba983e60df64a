package parsing

import (
	"regexp"
	"strings"

	"github.com/arnav/career-copilot/internal/types"
	"github.com/arnav/career-copilot/internal/vocab"
)

// Education patterns are tried in order; the first match wins and no merging
// happens across matches.
var educationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)education[:\-]?\s*[^\n]+`),
	regexp.MustCompile(`(?i)(b\.?tech|b\.?e\.?|m\.?tech|m\.?e\.?|bachelor|master|phd)[:\-]?\s*[^\n]+`),
	regexp.MustCompile(`(?i)(bsc|msc|ba|ma)[:\-]?\s*[^\n]+`),
}

var (
	degreeRe      = regexp.MustCompile(`(?i)(b\.?tech|b\.?e\.?|m\.?tech|m\.?e\.?|bachelor|master|phd|bsc|msc)`)
	institutionRe = regexp.MustCompile(`(?i)(?:in|from|at)\s+([A-Z][^\n,]+)`)
	yearRe        = regexp.MustCompile(`(19|20)\d{2}`)

	experienceHeadingRe = regexp.MustCompile(`(?i)experience[:\-]?\s*`)
	projectsHeadingRe   = regexp.MustCompile(`(?i)projects?[:\-]?\s*`)
	// A captured section runs up to a blank line or a new ALL-CAPS heading.
	sectionEndRe = regexp.MustCompile(`\n\n|\n[A-Z][A-Z\s]+\n`)

	// New experience entries start at a capitalized word pair or a bare
	// role word.
	experienceEntryRe = regexp.MustCompile(`^([A-Z][a-z]+\s+[A-Z]|Intern|Developer|Engineer)`)
	projectEntryRe    = regexp.MustCompile(`^([A-Z][a-z]+|•|\-)`)

	companyRe  = regexp.MustCompile(`(?i)at\s+([A-Z][^\n]+)`)
	durationRe = regexp.MustCompile(`(?i)(\d{4}|\w+\s+\d{4})\s*[-–]\s*(\d{4}|present|current)`)
)

// ExtractEducation returns the single best education match, or nil when no
// pattern matches. Degree, institution and year are extracted independently
// from within the matched span; fields not found stay empty.
func (p *Parser) ExtractEducation(text string) *types.Education {
	for _, pattern := range educationPatterns {
		span := pattern.FindString(text)
		if span == "" {
			continue
		}

		edu := &types.Education{}
		if m := degreeRe.FindString(span); m != "" {
			edu.Degree = vocab.TitleCase(m)
		}
		if m := institutionRe.FindStringSubmatch(span); m != nil {
			edu.Institution = strings.TrimSpace(m[1])
		}
		if m := yearRe.FindString(span); m != "" {
			edu.Year = m
		}
		return edu
	}
	return nil
}

// ExtractExperience captures the experience section and splits it into
// entries at lines that look like a new role start. Entries under 20
// characters are discarded as noise.
func (p *Parser) ExtractExperience(text string) []types.Experience {
	section := captureSection(text, experienceHeadingRe)
	if section == "" {
		return nil
	}

	var experiences []types.Experience
	for _, entry := range splitEntries(section, experienceEntryRe) {
		entry = strings.TrimSpace(entry)
		if len(entry) < 20 {
			continue
		}

		exp := types.Experience{Description: entry}
		lines := strings.Split(entry, "\n")
		if len(lines) > 0 {
			exp.Role = strings.TrimSpace(lines[0])
		}
		if m := companyRe.FindStringSubmatch(entry); m != nil {
			exp.Company = strings.TrimSpace(m[1])
		}
		if m := durationRe.FindStringSubmatch(entry); m != nil {
			exp.Duration = m[1] + " - " + m[2]
		}
		experiences = append(experiences, exp)
	}
	return experiences
}

// ExtractProjects mirrors ExtractExperience with a 15-character noise floor;
// the tech list is the vocabulary terms found in the entry.
func (p *Parser) ExtractProjects(text string) []types.Project {
	section := captureSection(text, projectsHeadingRe)
	if section == "" {
		return nil
	}

	var projects []types.Project
	for _, entry := range splitEntries(section, projectEntryRe) {
		entry = strings.TrimSpace(entry)
		if len(entry) < 15 {
			continue
		}

		project := types.Project{Description: entry}
		lines := strings.Split(entry, "\n")
		if len(lines) > 0 {
			project.Name = strings.TrimSpace(lines[0])
		}
		project.Tech = p.skills.MatchSubstrings(entry)
		projects = append(projects, project)
	}
	return projects
}

// captureSection finds a heading and returns the text between it and the
// next blank line or ALL-CAPS heading (or end of text).
func captureSection(text string, headingRe *regexp.Regexp) string {
	loc := headingRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	rest := text[loc[1]:]
	if end := sectionEndRe.FindStringIndex(rest); end != nil {
		rest = rest[:end[0]]
	}
	return rest
}

// splitEntries splits a section at newlines whose following line matches
// startRe. RE2 has no lookahead, so the split is done line by line.
func splitEntries(section string, startRe *regexp.Regexp) []string {
	lines := strings.Split(section, "\n")
	var entries []string
	var current []string

	for i, line := range lines {
		if i > 0 && startRe.MatchString(line) && len(current) > 0 {
			entries = append(entries, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		entries = append(entries, strings.Join(current, "\n"))
	}
	return entries
}
