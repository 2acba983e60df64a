// Package customize combines a parsed resume with an analyzed job
// description: it scores the match, reorders and rewrites resume content
// toward the posting, and produces a customized resume with a change log.
// All LLM calls run sequentially through the gateway; a gateway failure
// shows up as diagnostic text in the affected field, never as an error.
package customize

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/arnav/career-copilot/internal/llm"
	"github.com/arnav/career-copilot/internal/prompts"
	"github.com/arnav/career-copilot/internal/types"
)

const (
	missingSkillsNoteCap = 3
	missingSkillsLogCap  = 5
	promptSkillsCap      = 5
)

// Engine runs resume customization against one LLM gateway.
type Engine struct {
	gw *llm.Gateway
}

// NewEngine creates an Engine.
func NewEngine(gw *llm.Gateway) *Engine {
	return &Engine{gw: gw}
}

// Customize produces a CustomizationResult for one resume/job-description
// pair. The input resume is never mutated.
func (e *Engine) Customize(ctx context.Context, resume *types.StructuredResume, jd *types.JobAnalysis) *types.CustomizationResult {
	missing := MissingSkills(resume.Skills, jd.RequiredSkills)

	projects, projectsEnhanced := e.enhanceProjects(ctx, resume.Projects, jd.RequiredSkills)
	experience, experienceEnhanced := e.enhanceExperience(ctx, resume.Experience, jd.RequiredSkills)

	customized := types.CustomizedResume{
		Skills:            ReorderSkills(resume.Skills, jd.RequiredSkills),
		Projects:          projects,
		Experience:        experience,
		Education:         resume.Education,
		Summary:           e.generateSummary(ctx, resume, jd),
		MissingSkillsNote: capped(missing, missingSkillsNoteCap),
	}

	return &types.CustomizationResult{
		CustomizedData: customized,
		ChangesMade: types.ChangeLog{
			SkillsReordered:    true,
			ProjectsEnhanced:   projectsEnhanced,
			ExperienceEnhanced: experienceEnhanced,
			MissingSkills:      capped(missing, missingSkillsLogCap),
		},
		RelevanceScore: RelevanceScore(resume.Skills, jd.RequiredSkills, jd.PriorityKeywords),
	}
}

// enhanceProjects rewrites the description of every project that mentions at
// least one required skill, then re-sorts the whole list descending by
// relevance recomputed on the possibly-rewritten text. The recompute after
// mutation is intentional: sort order reflects what the document will say.
func (e *Engine) enhanceProjects(ctx context.Context, projects []types.Project, requiredSkills []string) ([]types.Project, int) {
	requiredLower := lowerAll(requiredSkills)
	template := prompts.MustGet("customize.json", "rewrite-project")

	enhanced := make([]types.Project, len(projects))
	copy(enhanced, projects)

	for i := range enhanced {
		if descriptionRelevance(enhanced[i].Description, requiredLower) == 0 {
			continue
		}
		prompt := prompts.Format(template, map[string]string{
			"Description": enhanced[i].Description,
			"Skills":      strings.Join(capped(requiredSkills, promptSkillsCap), ", "),
		})
		enhanced[i].Description = e.gw.Complete(ctx, prompt)
	}

	sort.SliceStable(enhanced, func(a, b int) bool {
		return descriptionRelevance(enhanced[a].Description, requiredLower) >
			descriptionRelevance(enhanced[b].Description, requiredLower)
	})

	return enhanced, len(enhanced)
}

// enhanceExperience applies the same rewrite-on-relevance logic to
// experience entries. Order is preserved; experience is not re-sorted.
func (e *Engine) enhanceExperience(ctx context.Context, experience []types.Experience, requiredSkills []string) ([]types.Experience, int) {
	requiredLower := lowerAll(requiredSkills)
	template := prompts.MustGet("customize.json", "rewrite-experience")

	enhanced := make([]types.Experience, len(experience))
	copy(enhanced, experience)

	for i := range enhanced {
		if descriptionRelevance(enhanced[i].Description, requiredLower) == 0 {
			continue
		}
		prompt := prompts.Format(template, map[string]string{
			"Description": enhanced[i].Description,
			"Skills":      strings.Join(capped(requiredSkills, promptSkillsCap), ", "),
		})
		enhanced[i].Description = e.gw.Complete(ctx, prompt)
	}

	return enhanced, len(enhanced)
}

// generateSummary enhances an existing summary toward the target role, or
// authors a new one from the resume's top skills and section counts.
func (e *Engine) generateSummary(ctx context.Context, resume *types.StructuredResume, jd *types.JobAnalysis) string {
	if resume.Summary != "" {
		prompt := prompts.Format(prompts.MustGet("customize.json", "enhance-summary"), map[string]string{
			"Summary": resume.Summary,
			"Role":    jd.Role,
			"Skills":  strings.Join(capped(jd.RequiredSkills, promptSkillsCap), ", "),
		})
		return e.gw.Complete(ctx, prompt)
	}

	prompt := prompts.Format(prompts.MustGet("customize.json", "new-summary"), map[string]string{
		"Role":            jd.Role,
		"Skills":          strings.Join(capped(resume.Skills, promptSkillsCap), ", "),
		"ExperienceCount": strconv.Itoa(len(resume.Experience)),
		"ProjectCount":    strconv.Itoa(len(resume.Projects)),
	})
	return e.gw.Complete(ctx, prompt)
}

func capped(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
