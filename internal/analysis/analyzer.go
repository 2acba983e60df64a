// Package analysis derives structured features from free-text job postings.
// Like the resume parser, it is rule-based pattern matching against injected
// vocabularies; the pattern set and caps are a reproduced contract.
package analysis

import (
	"regexp"
	"strings"

	"github.com/arnav/career-copilot/internal/types"
	"github.com/arnav/career-copilot/internal/vocab"
)

const (
	maxPriorityKeywords = 20
	maxExpectations     = 10
)

var (
	// A "required skills" style section with a ten-line lookahead.
	skillsSectionRe = regexp.MustCompile(`(?i)(required|must have|skills?|qualifications?)[:\-]?\s*([^\n]+(?:\n[^\n]+){0,10})`)

	// Emphasis patterns whose trailing phrase becomes a priority keyword.
	emphasisPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(must|required|essential|mandatory|critical|important)\s+([a-z\s]+)`),
		regexp.MustCompile(`(?i)strong\s+(experience|knowledge|understanding)\s+(?:in|of|with)\s+([a-z\s]+)`),
		regexp.MustCompile(`(?i)proficient\s+(?:in|with)\s+([a-z\s]+)`),
		regexp.MustCompile(`(?i)expert\s+(?:in|with)\s+([a-z\s]+)`),
	}

	// Versioned tokens like "python 3.9" or "react (version 18)" betray a
	// tool name in the preceding word.
	versionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`([a-z]+)\s+\d+\.?\d*`),
		regexp.MustCompile(`([a-z]+)\s+\(version\s+\d+\)`),
	}

	respSectionRe = regexp.MustCompile(`(?i)(responsibilities?|duties?|what you'?ll do|key\s+responsibilities?)[:\-]?\s*([^\n]+(?:\n[^\n]+){0,15})`)
	bulletStartRe = regexp.MustCompile(`^(?:[•\-\*]|\d+\.)`)
	bulletTrimRe  = regexp.MustCompile(`^[•\-\*\d.]+\s*`)
	youWillRe     = regexp.MustCompile(`(?i)you\s+will\s+([^.]+)`)
)

// Analyzer derives job-description features from injected vocabularies.
type Analyzer struct {
	skills *vocab.Set
	tools  *vocab.Set
}

// NewAnalyzer creates an Analyzer with the given vocabularies.
func NewAnalyzer(skills, tools *vocab.Set) *Analyzer {
	return &Analyzer{skills: skills, tools: tools}
}

// DefaultAnalyzer creates an Analyzer with the stock vocabularies.
func DefaultAnalyzer() *Analyzer {
	return NewAnalyzer(vocab.DefaultJobSkills(), vocab.DefaultTools())
}

// Analyze derives all features from a job posting.
func (a *Analyzer) Analyze(text string) *types.JobAnalysis {
	return &types.JobAnalysis{
		RawText:           text,
		RequiredSkills:    a.ExtractRequiredSkills(text),
		PriorityKeywords:  a.ExtractPriorityKeywords(text),
		ToolsTechnologies: a.ExtractToolsTechnologies(text),
		RoleExpectations:  a.ExtractRoleExpectations(text),
	}
}

// ExtractRequiredSkills matches the skill vocabulary first inside a captured
// requirements section, then across the whole text. Deduplicated and
// title-cased.
func (a *Analyzer) ExtractRequiredSkills(text string) []string {
	seen := make(map[string]bool)
	var found []string

	add := func(skills []string) {
		for _, s := range skills {
			if !seen[s] {
				seen[s] = true
				found = append(found, s)
			}
		}
	}

	if m := skillsSectionRe.FindStringSubmatch(text); m != nil {
		add(a.skills.MatchSubstrings(m[2]))
	}
	add(a.skills.MatchSubstrings(text))
	return found
}

// ExtractPriorityKeywords captures the trailing phrase of emphasis patterns,
// keeps phrases longer than three characters, and truncates to the first 20
// distinct matches in scan order.
func (a *Analyzer) ExtractPriorityKeywords(text string) []string {
	textLower := strings.ToLower(text)
	seen := make(map[string]bool)
	var keywords []string

	for _, pattern := range emphasisPatterns {
		for _, m := range pattern.FindAllStringSubmatch(textLower, -1) {
			phrase := m[len(m)-1]
			phrase = strings.TrimSpace(phrase)
			if len(phrase) <= 3 {
				continue
			}
			display := vocab.TitleCase(phrase)
			if !seen[display] {
				seen[display] = true
				keywords = append(keywords, display)
			}
			if len(keywords) == maxPriorityKeywords {
				return keywords
			}
		}
	}
	return keywords
}

// ExtractToolsTechnologies matches the tools vocabulary across the text and
// adds the word preceding a version number as an extra tool when it is
// longer than two characters.
func (a *Analyzer) ExtractToolsTechnologies(text string) []string {
	seen := make(map[string]bool)
	var found []string
	for _, tool := range a.tools.MatchSubstrings(text) {
		if !seen[tool] {
			seen[tool] = true
			found = append(found, tool)
		}
	}

	textLower := strings.ToLower(text)
	for _, pattern := range versionPatterns {
		for _, m := range pattern.FindAllStringSubmatch(textLower, -1) {
			tool := strings.TrimSpace(m[1])
			if len(tool) <= 2 {
				continue
			}
			display := vocab.TitleCase(tool)
			if !seen[display] {
				seen[display] = true
				found = append(found, display)
			}
		}
	}
	return found
}

// ExtractRoleExpectations captures a responsibilities section, splits it into
// bullet or numbered items cleaned of their markers, keeps items longer than
// ten characters, appends unique "you will <clause>" sentences found anywhere
// in the text, and joins the first ten by ". ".
func (a *Analyzer) ExtractRoleExpectations(text string) string {
	var expectations []string
	seen := make(map[string]bool)

	add := func(item string) {
		item = strings.TrimSpace(item)
		if len(item) > 10 && !seen[item] {
			seen[item] = true
			expectations = append(expectations, item)
		}
	}

	if m := respSectionRe.FindStringSubmatch(text); m != nil {
		for _, item := range splitBullets(m[2]) {
			add(bulletTrimRe.ReplaceAllString(item, ""))
		}
	}

	for _, m := range youWillRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	if len(expectations) > maxExpectations {
		expectations = expectations[:maxExpectations]
	}
	return strings.Join(expectations, ". ")
}

// splitBullets splits a block at newlines that start a bullet or numbered
// item. RE2 has no lookahead, so the split walks lines.
func splitBullets(block string) []string {
	lines := strings.Split(block, "\n")
	var items []string
	var current []string

	for i, line := range lines {
		if i > 0 && bulletStartRe.MatchString(strings.TrimSpace(line)) && len(current) > 0 {
			items = append(items, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		items = append(items, strings.Join(current, "\n"))
	}
	return items
}
