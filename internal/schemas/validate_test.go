package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnav/career-copilot/internal/parsing"
)

const validResumeJSON = `{
	"skills": ["Python", "SQL"],
	"experience": [{"company": "TechCorp", "role": "Intern"}],
	"projects": [{"name": "Tracker", "tech": ["Python"]}],
	"summary": "Developer.",
	"ats_score": 75
}`

func TestValidate_StructuredResume(t *testing.T) {
	assert.NoError(t, Validate(StructuredResume, validResumeJSON))
}

func TestValidate_ParserOutputConforms(t *testing.T) {
	resume := parsing.DefaultParser().ParseText("Skills: Python, SQL\n\nExperience\nIntern at TechCorp")
	data, err := json.Marshal(resume)
	require.NoError(t, err)

	assert.NoError(t, Validate(StructuredResume, string(data)))
}

func TestValidate_MissingRequiredField(t *testing.T) {
	err := Validate(StructuredResume, `{"skills": [], "experience": [], "projects": []}`)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, StructuredResume, ve.Schema)
	require.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "ats_score")
}

func TestValidate_ScoreOutOfRange(t *testing.T) {
	err := Validate(StructuredResume, `{
		"skills": [], "experience": [], "projects": [], "ats_score": 101
	}`)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidate_JobAnalysis(t *testing.T) {
	assert.NoError(t, Validate(JobAnalysis, `{
		"company_name": "TechCorp",
		"role": "Backend Engineer",
		"required_skills": ["Python"],
		"priority_keywords": ["pipelines"],
		"tools_technologies": []
	}`))
}

func TestValidate_JobAnalysisKeywordCap(t *testing.T) {
	keywords := make([]string, 21)
	for i := range keywords {
		keywords[i] = "kw"
	}
	doc, err := json.Marshal(map[string]any{
		"required_skills":    []string{},
		"priority_keywords":  keywords,
		"tools_technologies": []string{},
	})
	require.NoError(t, err)

	var ve *ValidationError
	require.ErrorAs(t, Validate(JobAnalysis, string(doc)), &ve)
}

func TestValidate_CustomizationResult(t *testing.T) {
	assert.NoError(t, Validate(CustomizationResult, `{
		"customized_data": {
			"skills": ["Python"],
			"projects": [],
			"experience": [],
			"summary": "x"
		},
		"changes_made": {
			"skills_reordered": true,
			"projects_enhanced": 1,
			"experience_enhanced": 0,
			"missing_skills": ["AWS"]
		},
		"relevance_score": 50
	}`))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("no_such_schema", `{}`)

	var le *SchemaLoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "no_such_schema", le.Schema)
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(StructuredResume, `{not json`)

	var le *SchemaLoadError
	require.ErrorAs(t, err, &le)
}
