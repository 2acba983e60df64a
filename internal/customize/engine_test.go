package customize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnav/career-copilot/internal/llm"
	"github.com/arnav/career-copilot/internal/types"
)

func unconfiguredEngine() *Engine {
	return NewEngine(llm.New(context.Background(), llm.Config{}, nil))
}

func sampleInputs() (*types.StructuredResume, *types.JobAnalysis) {
	resume := &types.StructuredResume{
		Skills: []string{"Photoshop", "Python", "SQL"},
		Projects: []types.Project{
			{Name: "Tracker", Description: "Inventory tracker built with Python"},
			{Name: "Gallery", Description: "A photo gallery in Photoshop"},
		},
		Experience: []types.Experience{
			{Role: "Intern", Description: "Wrote SQL reports"},
		},
		Education: &types.Education{Degree: "B.Tech"},
		Summary:   "Developer who likes data.",
	}
	jd := &types.JobAnalysis{
		Role:             "Data Analyst",
		RequiredSkills:   []string{"Python", "SQL", "AWS", "Docker"},
		PriorityKeywords: []string{"Pipelines"},
	}
	return resume, jd
}

func TestCustomize_WithoutProviderStillCompletes(t *testing.T) {
	engine := unconfiguredEngine()
	resume, jd := sampleInputs()

	result := engine.Customize(context.Background(), resume, jd)
	require.NotNil(t, result)

	// Structural work happens without any provider.
	assert.Equal(t, []string{"Python", "SQL", "Photoshop"}, result.CustomizedData.Skills)
	assert.True(t, result.ChangesMade.SkillsReordered)
	assert.Equal(t, []string{"AWS", "Docker"}, result.ChangesMade.MissingSkills)
	assert.Equal(t, []string{"AWS", "Docker"}, result.CustomizedData.MissingSkillsNote)

	// LLM-backed fields degrade to the diagnostic message, not an error.
	assert.Equal(t, llm.NotConfiguredMessage, result.CustomizedData.Summary)
}

func TestCustomize_RelevantDescriptionsGetDiagnostic(t *testing.T) {
	engine := unconfiguredEngine()
	resume, jd := sampleInputs()

	result := engine.Customize(context.Background(), resume, jd)

	// The Python project mentions a required skill, so it went through
	// the gateway; the Photoshop project did not.
	descriptions := make(map[string]string)
	for _, p := range result.CustomizedData.Projects {
		descriptions[p.Name] = p.Description
	}
	assert.Equal(t, llm.NotConfiguredMessage, descriptions["Tracker"])
	assert.Equal(t, "A photo gallery in Photoshop", descriptions["Gallery"])

	assert.Equal(t, llm.NotConfiguredMessage, result.CustomizedData.Experience[0].Description)
}

func TestCustomize_DoesNotMutateInput(t *testing.T) {
	engine := unconfiguredEngine()
	resume, jd := sampleInputs()

	originalSkills := append([]string(nil), resume.Skills...)
	originalProjectDesc := resume.Projects[0].Description
	originalExpDesc := resume.Experience[0].Description

	engine.Customize(context.Background(), resume, jd)

	assert.Equal(t, originalSkills, resume.Skills)
	assert.Equal(t, originalProjectDesc, resume.Projects[0].Description)
	assert.Equal(t, originalExpDesc, resume.Experience[0].Description)
}

func TestCustomize_RelevanceScore(t *testing.T) {
	engine := unconfiguredEngine()
	resume, jd := sampleInputs()

	result := engine.Customize(context.Background(), resume, jd)

	// 2 of 4 required skills matched: 50. No priority keyword matches.
	assert.Equal(t, 50, result.RelevanceScore)
}

func TestCustomize_ChangeCounts(t *testing.T) {
	engine := unconfiguredEngine()
	resume, jd := sampleInputs()

	result := engine.Customize(context.Background(), resume, jd)

	assert.Equal(t, len(resume.Projects), result.ChangesMade.ProjectsEnhanced)
	assert.Equal(t, len(resume.Experience), result.ChangesMade.ExperienceEnhanced)
}

func TestCustomize_MissingSkillCaps(t *testing.T) {
	engine := unconfiguredEngine()
	resume := &types.StructuredResume{Skills: []string{"nothing relevant"}}
	jd := &types.JobAnalysis{
		RequiredSkills: []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7"},
	}

	result := engine.Customize(context.Background(), resume, jd)

	// Note caps at 3, change log caps at 5.
	assert.Len(t, result.CustomizedData.MissingSkillsNote, 3)
	assert.Len(t, result.ChangesMade.MissingSkills, 5)
}

func TestCustomize_EducationCarriedThrough(t *testing.T) {
	engine := unconfiguredEngine()
	resume, jd := sampleInputs()

	result := engine.Customize(context.Background(), resume, jd)
	require.NotNil(t, result.CustomizedData.Education)
	assert.Equal(t, "B.Tech", result.CustomizedData.Education.Degree)

	// A resume without education stays without education.
	resume.Education = nil
	result = engine.Customize(context.Background(), resume, jd)
	assert.Nil(t, result.CustomizedData.Education)
}
