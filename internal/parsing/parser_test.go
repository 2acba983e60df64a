package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnav/career-copilot/internal/vocab"
)

const sampleResume = `John Doe
john.doe@example.com | (555) 123-4567

Summary: Software developer with a focus on data tooling.

Skills: Python, SQL, Docker, Communication, Pandas

Experience:
Software Intern at TechCorp
2022 - 2023
• Built data pipelines in Python
• Migrated reports to SQL

Projects:
Inventory Tracker
• Built with Python and PostgreSQL
`

func TestParseText_PopulatesAllFields(t *testing.T) {
	resume := DefaultParser().ParseText(sampleResume)
	require.NotNil(t, resume)

	assert.Equal(t, sampleResume, resume.RawText)
	assert.NotEmpty(t, resume.Skills)
	assert.NotEmpty(t, resume.Summary)
	require.NotNil(t, resume.ATSReport)
	assert.GreaterOrEqual(t, resume.ATSScore, 0)
	assert.LessOrEqual(t, resume.ATSScore, 100)
}

func TestParseText_NeverFails(t *testing.T) {
	for _, text := range []string{"", "gibberish", "\n\n\n"} {
		resume := DefaultParser().ParseText(text)
		require.NotNil(t, resume)
		require.NotNil(t, resume.ATSReport)
	}
}

func TestExtractSkills_VocabularyMatches(t *testing.T) {
	p := NewParser(vocab.New([]string{"python", "sql"}))

	skills := p.ExtractSkills("I know Python and some SQL")
	assert.Equal(t, []string{"Python", "Sql"}, skills)
}

func TestExtractSkills_HeadingTokens(t *testing.T) {
	p := NewParser(vocab.New(nil))

	skills := p.ExtractSkills("Skills: Terraform, Ansible | Pulumi")
	assert.Equal(t, []string{"Terraform", "Ansible", "Pulumi"}, skills)
}

func TestExtractSkills_HeadingTokensKeepOriginalCasing(t *testing.T) {
	p := NewParser(vocab.New(nil))

	skills := p.ExtractSkills("Skills: gRPC, jQuery")
	assert.Equal(t, []string{"gRPC", "jQuery"}, skills)
}

func TestExtractSkills_ShortTokensDropped(t *testing.T) {
	p := NewParser(vocab.New(nil))

	// Tokens of length <= 2 are noise.
	skills := p.ExtractSkills("Skills: Go, R, C, Terraform")
	assert.Equal(t, []string{"Terraform"}, skills)
}

func TestExtractSkills_Dedup(t *testing.T) {
	p := NewParser(vocab.New([]string{"python"}))

	// The vocabulary match is title-cased; the heading token keeps its
	// casing, so only an exact duplicate is removed.
	skills := p.ExtractSkills("Skills: Python, python")
	assert.Equal(t, []string{"Python", "python"}, skills)
}

func TestExtractSkills_EmptyVocabularyNoHeading(t *testing.T) {
	p := NewParser(vocab.New(nil))

	assert.Empty(t, p.ExtractSkills("Python SQL Docker everywhere"))
}

func TestExtractSummary(t *testing.T) {
	summary := DefaultParser().ExtractSummary("Summary: Line one\nLine two\n\nSkills: none")
	assert.Contains(t, summary, "Line one")
}

func TestExtractSummary_Missing(t *testing.T) {
	assert.Empty(t, DefaultParser().ExtractSummary("no heading here"))
}

func TestExtractEducation_FirstPatternWins(t *testing.T) {
	text := "Education: B.Tech in Computer Science from Example University, 2023"
	edu := DefaultParser().ExtractEducation(text)
	require.NotNil(t, edu)
	assert.NotEmpty(t, edu.Degree)
	assert.Equal(t, "2023", edu.Year)
	assert.Contains(t, edu.Institution, "Example University")
}

func TestExtractEducation_NoMatchReturnsNil(t *testing.T) {
	// The string must avoid every degree bigram; "me"/"be"/"ba"/"ma" hidden
	// inside ordinary words count as matches.
	assert.Nil(t, DefaultParser().ExtractEducation("worked with linux tools only"))
}

func TestExtractEducation_DegreeBigramInsideWord(t *testing.T) {
	// "mentioned" contains "me", which the degree pattern accepts. The
	// loose match is part of the reproduced heuristic contract.
	edu := DefaultParser().ExtractEducation("no credentials mentioned")
	require.NotNil(t, edu)
	assert.Equal(t, "Me", edu.Degree)
}

func TestExtractExperience_SplitsEntries(t *testing.T) {
	text := `Experience:
Software Intern at TechCorp working on pipelines
Data Analyst at DataWorks building dashboards daily`

	exps := DefaultParser().ExtractExperience(text)
	require.Len(t, exps, 2)
	assert.Contains(t, exps[0].Company, "TechCorp")
	assert.Contains(t, exps[1].Company, "DataWorks")
}

func TestExtractExperience_NoiseFloor(t *testing.T) {
	text := "Experience:\nShort line"
	assert.Empty(t, DefaultParser().ExtractExperience(text))
}

func TestExtractExperience_Duration(t *testing.T) {
	text := "Experience:\nSoftware Intern at TechCorp (2022 - present) building tooling"
	exps := DefaultParser().ExtractExperience(text)
	require.Len(t, exps, 1)
	assert.Equal(t, "2022 - present", exps[0].Duration)
}

func TestExtractProjects_TechFromVocabulary(t *testing.T) {
	p := NewParser(vocab.New([]string{"python", "postgresql"}))
	text := "Projects:\nInventory Tracker built with Python and PostgreSQL"

	projects := p.ExtractProjects(text)
	require.Len(t, projects, 1)
	assert.Equal(t, []string{"Python", "Postgresql"}, projects[0].Tech)
}

func TestCaptureSection_StopsAtBlankLine(t *testing.T) {
	text := "Experience:\nSoftware Intern at TechCorp building data pipelines\n\nProjects:\nsomething else entirely here"
	exps := DefaultParser().ExtractExperience(text)
	require.Len(t, exps, 1)
	assert.NotContains(t, exps[0].Description, "something else")
}
