// Package coach provides application and interview support built on the LLM
// gateway: skill-gap analysis across stored job descriptions, interview
// question generation and grading, and application answer drafting.
package coach

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/arnav/career-copilot/internal/llm"
	"github.com/arnav/career-copilot/internal/prompts"
	"github.com/arnav/career-copilot/internal/types"
	"github.com/arnav/career-copilot/internal/vocab"
)

const (
	gapFrequencyCap   = 20
	gapMissingCap     = 15
	gapRecommendedCap = 10
	gapIdeasCap       = 5
)

// Coach runs LLM-backed coaching operations.
type Coach struct {
	gw *llm.Gateway
}

// New creates a Coach.
func New(gw *llm.Gateway) *Coach {
	return &Coach{gw: gw}
}

// AnalyzeSkillGaps aggregates required skills and tools across all of a
// user's stored job descriptions, counts frequency case-insensitively, and
// subtracts skills the user already has (case-insensitive exact match). The
// result is ordered by descending frequency; the top recommendations get one
// LLM-generated project idea each and two templated learning links. The
// links are search URL templates, never fetched or validated.
func (c *Coach) AnalyzeSkillGaps(ctx context.Context, userSkills []string, jds []*types.JobAnalysis) *types.SkillGapReport {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, jd := range jds {
		for _, s := range append(append([]string{}, jd.RequiredSkills...), jd.ToolsTechnologies...) {
			key := strings.ToLower(s)
			if _, ok := counts[key]; !ok {
				firstSeen[key] = order
				order++
			}
			counts[key]++
		}
	}

	ranked := make([]string, 0, len(counts))
	for skill := range counts {
		ranked = append(ranked, skill)
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		if counts[ranked[a]] != counts[ranked[b]] {
			return counts[ranked[a]] > counts[ranked[b]]
		}
		return firstSeen[ranked[a]] < firstSeen[ranked[b]]
	})
	if len(ranked) > gapFrequencyCap {
		ranked = ranked[:gapFrequencyCap]
	}

	known := make(map[string]bool, len(userSkills))
	for _, s := range userSkills {
		known[strings.ToLower(s)] = true
	}

	missing := make([]string, 0, len(ranked))
	for _, skill := range ranked {
		if !known[skill] {
			missing = append(missing, skill)
		}
	}

	recommended := missing
	if len(recommended) > gapRecommendedCap {
		recommended = recommended[:gapRecommendedCap]
	}

	report := &types.SkillGapReport{
		MissingSkills:     missing,
		RecommendedSkills: recommended,
		ProjectIdeas:      []string{},
		LearningResources: []types.LearningResource{},
	}
	if len(report.MissingSkills) > gapMissingCap {
		report.MissingSkills = report.MissingSkills[:gapMissingCap]
	}

	ideaTemplate := prompts.MustGet("coach.json", "project-idea")
	for i, skill := range recommended {
		if i == gapIdeasCap {
			break
		}
		idea := c.gw.Complete(ctx, prompts.Format(ideaTemplate, map[string]string{"Skill": skill}))
		report.ProjectIdeas = append(report.ProjectIdeas, fmt.Sprintf("%s: %s", vocab.TitleCase(skill), idea))
		report.LearningResources = append(report.LearningResources, learningLinks(skill))
	}

	return report
}

// learningLinks builds the two fixed-template resources for a skill.
func learningLinks(skill string) types.LearningResource {
	title := vocab.TitleCase(skill)
	return types.LearningResource{
		Skill: title,
		Resources: []types.ResourceLink{
			{
				Name: fmt.Sprintf("Learn %s - YouTube", title),
				URL:  fmt.Sprintf("https://youtube.com/results?search_query=learn+%s", strings.ReplaceAll(skill, " ", "+")),
				Type: "free",
			},
			{
				Name: fmt.Sprintf("%s Tutorial - GeeksforGeeks", title),
				URL:  fmt.Sprintf("https://geeksforgeeks.org/%s", strings.ReplaceAll(skill, " ", "-")),
				Type: "free",
			},
		},
	}
}
