package customize

import "strings"

// RelevanceScore rates how well a set of resume skills matches a job
// description's required skills, 0-100. A job description with no required
// skills always scores exactly 50. A required skill counts as matched when
// it contains, or is contained in, any resume skill (case-insensitive,
// bidirectional substring, not exact equality). The keyword bonus is
// min(matches*5, 20); the clamp to 100 happens only at the very end.
func RelevanceScore(resumeSkills, requiredSkills, priorityKeywords []string) int {
	if len(requiredSkills) == 0 {
		return 50
	}

	resumeLower := lowerAll(resumeSkills)

	matched := 0
	for _, required := range requiredSkills {
		requiredLower := strings.ToLower(required)
		for _, rs := range resumeLower {
			if strings.Contains(requiredLower, rs) || strings.Contains(rs, requiredLower) {
				matched++
				break
			}
		}
	}

	score := matched * 100 / len(requiredSkills)

	if len(priorityKeywords) > 0 {
		keywordMatches := 0
		for _, kw := range priorityKeywords {
			kwLower := strings.ToLower(kw)
			for _, rs := range resumeLower {
				if strings.Contains(rs, kwLower) {
					keywordMatches++
					break
				}
			}
		}
		bonus := keywordMatches * 5
		if bonus > 20 {
			bonus = 20
		}
		score += bonus
	}

	if score > 100 {
		score = 100
	}
	return score
}

// MissingSkills returns the required skills with no case-insensitive exact
// match among the resume skills, in required-skill order.
func MissingSkills(resumeSkills, requiredSkills []string) []string {
	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[strings.ToLower(s)] = true
	}

	var missing []string
	for _, required := range requiredSkills {
		if !have[strings.ToLower(required)] {
			missing = append(missing, required)
		}
	}
	return missing
}

// ReorderSkills partitions resume skills so that skills matching any
// required skill (bidirectional substring, case-insensitive) come first.
// The partition is stable: relative order within each group is preserved.
func ReorderSkills(resumeSkills, requiredSkills []string) []string {
	requiredLower := lowerAll(requiredSkills)

	relevant := make([]string, 0, len(resumeSkills))
	var others []string
	for _, skill := range resumeSkills {
		skillLower := strings.ToLower(skill)
		isRelevant := false
		for _, req := range requiredLower {
			if strings.Contains(skillLower, req) || strings.Contains(req, skillLower) {
				isRelevant = true
				break
			}
		}
		if isRelevant {
			relevant = append(relevant, skill)
		} else {
			others = append(others, skill)
		}
	}
	return append(relevant, others...)
}

// descriptionRelevance counts the required skills that occur as
// case-insensitive substrings of a description.
func descriptionRelevance(description string, requiredLower []string) int {
	descLower := strings.ToLower(description)
	count := 0
	for _, skill := range requiredLower {
		if strings.Contains(descLower, skill) {
			count++
		}
	}
	return count
}

func lowerAll(values []string) []string {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return lowered
}
