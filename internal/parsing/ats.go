package parsing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arnav/career-copilot/internal/types"
	"github.com/arnav/career-copilot/internal/vocab"
)

var (
	emailRe  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe  = regexp.MustCompile(`(\+\d{1,2}\s?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	bulletRe = regexp.MustCompile(`[•\-\*]`)
)

// atsSections are scored in this fixed order.
var atsSections = []string{"skills", "education", "experience", "projects"}

// CalculateATSScore computes the heuristic ATS score for a resume. It is a
// pure function of (text, parsed): identical inputs always yield the same
// score and issue list, and the additive components cap the score at 100.
//
// Components: word count in [400,1000] earns 10 else 5; each of the four
// sections earns 10 when present; email and phone earn 5 each; 5 or more
// skills earn 20 (1-4 earn 10); more than 5 bullet glyphs earn 20 (else 10).
func (p *Parser) CalculateATSScore(text string, parsed *types.StructuredResume) (int, types.ATSAnalysis) {
	score := 0
	analysis := types.ATSAnalysis{
		Issues:          []string{},
		PositiveAspects: []string{},
		SectionPresence: make(map[string]bool),
	}

	// Content length.
	wordCount := len(strings.Fields(text))
	switch {
	case wordCount >= 400 && wordCount <= 1000:
		score += 10
		analysis.PositiveAspects = append(analysis.PositiveAspects, "Optimal word count")
	case wordCount < 400:
		score += 5
		analysis.Issues = append(analysis.Issues, "Resume might be too short")
	default:
		score += 5
		analysis.Issues = append(analysis.Issues, "Resume might be too long")
	}

	// Section presence.
	for _, section := range atsSections {
		present := sectionPresent(parsed, section)
		analysis.SectionPresence[section] = present
		if present {
			score += 10
		} else {
			analysis.Issues = append(analysis.Issues,
				fmt.Sprintf("Missing section: %s", vocab.TitleCase(section)))
		}
	}

	// Contact info.
	hasEmail := emailRe.MatchString(text)
	hasPhone := phoneRe.MatchString(text)
	if hasEmail {
		score += 5
	} else {
		analysis.Issues = append(analysis.Issues, "Missing email address")
	}
	if hasPhone {
		score += 5
	} else {
		analysis.Issues = append(analysis.Issues, "Missing phone number")
	}

	// Skills coverage.
	skillsCount := len(parsed.Skills)
	switch {
	case skillsCount >= 5:
		score += 20
		analysis.PositiveAspects = append(analysis.PositiveAspects,
			fmt.Sprintf("Good technical skills detected (%d found)", skillsCount))
	case skillsCount > 0:
		score += 10
		analysis.Issues = append(analysis.Issues, "Consider adding more relevant technical skills")
	default:
		analysis.Issues = append(analysis.Issues, "No technical skills detected")
	}

	// Formatting / readability.
	bullets := len(bulletRe.FindAllString(text, -1))
	if bullets > 5 {
		score += 20
		analysis.PositiveAspects = append(analysis.PositiveAspects, "Good use of bullet points")
	} else {
		score += 10
		analysis.Issues = append(analysis.Issues, "Use more bullet points for better readability")
	}

	return score, analysis
}

func sectionPresent(parsed *types.StructuredResume, section string) bool {
	switch section {
	case "skills":
		return len(parsed.Skills) > 0
	case "education":
		e := parsed.Education
		return e != nil && (e.Degree != "" || e.Field != "" || e.Institution != "" || e.Year != "")
	case "experience":
		return len(parsed.Experience) > 0
	case "projects":
		return len(parsed.Projects) > 0
	default:
		return false
	}
}
