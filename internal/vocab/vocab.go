// Package vocab holds the heuristic skill and tool vocabularies used by the
// resume parser and job analyzer. The lists are injected at construction so
// tests can substitute smaller ones; they are never mutated after creation.
package vocab

import (
	"strings"
	"unicode"
)

// Set is an immutable vocabulary.
type Set struct {
	terms []string
}

// New copies terms into a Set.
func New(terms []string) *Set {
	copied := make([]string, len(terms))
	copy(copied, terms)
	return &Set{terms: copied}
}

// Terms returns a copy of the vocabulary terms.
func (s *Set) Terms() []string {
	copied := make([]string, len(s.terms))
	copy(copied, s.terms)
	return copied
}

// MatchSubstrings returns the title-cased vocabulary terms that occur as
// case-insensitive substrings of text, in vocabulary order, deduplicated.
func (s *Set) MatchSubstrings(text string) []string {
	textLower := strings.ToLower(text)
	seen := make(map[string]bool)
	var found []string
	for _, term := range s.terms {
		if strings.Contains(textLower, strings.ToLower(term)) {
			display := TitleCase(term)
			if !seen[display] {
				seen[display] = true
				found = append(found, display)
			}
		}
	}
	return found
}

// TitleCase display-cases a vocabulary term or skill token: any letter that
// follows a non-letter is uppercased, every other letter lowercased. The
// boundary rule treats punctuation as a word break, so "node.js" becomes
// "Node.Js"; that casing is part of the observable output contract.
func TitleCase(term string) string {
	var sb strings.Builder
	sb.Grow(len(term))
	prevLetter := false
	for _, r := range term {
		switch {
		case !unicode.IsLetter(r):
			sb.WriteRune(r)
			prevLetter = false
		case prevLetter:
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		}
	}
	return sb.String()
}

// DefaultSkills returns the stock skill vocabulary spanning languages,
// frameworks, data tools and soft skills.
func DefaultSkills() *Set {
	return New([]string{
		"python", "java", "javascript", "react", "node.js", "sql", "mongodb",
		"postgresql", "aws", "docker", "kubernetes", "git", "html", "css",
		"machine learning", "data science", "pandas", "numpy", "tensorflow",
		"pytorch", "flask", "django", "fastapi", "express", "angular", "vue",
		"c++", "c#", "go", "rust", "php", "ruby", "swift", "kotlin",
		"tableau", "power bi", "excel", "r", "matlab", "scikit-learn",
		"communication", "leadership", "teamwork", "problem solving",
	})
}

// DefaultJobSkills extends the stock skill vocabulary with process and
// infrastructure terms that show up in job postings but rarely on resumes.
func DefaultJobSkills() *Set {
	base := DefaultSkills().Terms()
	return New(append(base,
		"agile", "scrum", "jira", "confluence", "ci/cd", "rest api",
		"graphql", "microservices", "linux", "bash", "shell scripting",
	))
}

// DefaultTools returns the stock tools/technologies vocabulary.
func DefaultTools() *Set {
	return New([]string{
		"aws", "azure", "gcp", "docker", "kubernetes", "jenkins",
		"git", "github", "gitlab", "jira", "confluence", "slack",
		"tableau", "power bi", "excel", "looker", "metabase",
		"postgresql", "mysql", "mongodb", "redis", "elasticsearch",
		"react", "angular", "vue", "next.js", "node.js", "express",
		"django", "flask", "fastapi", "spring", "hibernate",
	})
}
