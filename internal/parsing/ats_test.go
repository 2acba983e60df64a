package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnav/career-copilot/internal/types"
	"github.com/arnav/career-copilot/internal/vocab"
)

// fullResume builds a text and parsed pair that earns every component.
func fullResume() (string, *types.StructuredResume) {
	var sb strings.Builder
	sb.WriteString("John Doe john@example.com (555) 123-4567\n")
	sb.WriteString("• one • two • three • four • five • six\n")
	for i := 0; i < 450; i++ {
		sb.WriteString("word ")
	}
	text := sb.String()

	parsed := &types.StructuredResume{
		Skills:     []string{"Python", "Sql", "Docker", "Git", "Aws"},
		Education:  &types.Education{Degree: "B.Tech"},
		Experience: []types.Experience{{Description: "built things at a company"}},
		Projects:   []types.Project{{Description: "a project description"}},
	}
	return text, parsed
}

func TestCalculateATSScore_Maximum(t *testing.T) {
	p := DefaultParser()
	text, parsed := fullResume()

	score, analysis := p.CalculateATSScore(text, parsed)

	assert.Equal(t, 100, score)
	assert.Empty(t, analysis.Issues)
	assert.Contains(t, analysis.PositiveAspects, "Optimal word count")
	assert.Contains(t, analysis.PositiveAspects, "Good technical skills detected (5 found)")
	assert.Contains(t, analysis.PositiveAspects, "Good use of bullet points")
	for _, section := range []string{"skills", "education", "experience", "projects"} {
		assert.True(t, analysis.SectionPresence[section])
	}
}

func TestCalculateATSScore_Minimum(t *testing.T) {
	p := DefaultParser()

	// Empty everything: short text 5, no sections 0, no contact 0, no
	// skills 0, few bullets 10.
	score, analysis := p.CalculateATSScore("", &types.StructuredResume{})

	assert.Equal(t, 15, score)
	assert.Contains(t, analysis.Issues, "Resume might be too short")
	assert.Contains(t, analysis.Issues, "Missing section: Skills")
	assert.Contains(t, analysis.Issues, "Missing section: Education")
	assert.Contains(t, analysis.Issues, "Missing section: Experience")
	assert.Contains(t, analysis.Issues, "Missing section: Projects")
	assert.Contains(t, analysis.Issues, "Missing email address")
	assert.Contains(t, analysis.Issues, "Missing phone number")
	assert.Contains(t, analysis.Issues, "No technical skills detected")
	assert.Contains(t, analysis.Issues, "Use more bullet points for better readability")
}

func TestCalculateATSScore_Deterministic(t *testing.T) {
	p := DefaultParser()
	text, parsed := fullResume()

	first, firstAnalysis := p.CalculateATSScore(text, parsed)
	second, secondAnalysis := p.CalculateATSScore(text, parsed)

	assert.Equal(t, first, second)
	assert.Equal(t, firstAnalysis, secondAnalysis)
}

func TestCalculateATSScore_AlwaysInRange(t *testing.T) {
	p := NewParser(vocab.New(nil))

	texts := []string{
		"",
		"short",
		strings.Repeat("word ", 2000),
		strings.Repeat("• bullet point here\n", 50),
	}
	for _, text := range texts {
		parsed := p.ParseText(text)
		assert.GreaterOrEqual(t, parsed.ATSScore, 0)
		assert.LessOrEqual(t, parsed.ATSScore, 100)
	}
}

func TestCalculateATSScore_SkillsComponent(t *testing.T) {
	p := DefaultParser()

	tests := []struct {
		name   string
		skills []string
		delta  int
		issue  string
	}{
		{"five or more", []string{"a", "b", "c", "d", "e"}, 20, ""},
		{"one to four", []string{"a"}, 10, "Consider adding more relevant technical skills"},
		{"none", nil, 0, "No technical skills detected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := &types.StructuredResume{Skills: tt.skills}
			score, analysis := p.CalculateATSScore("", parsed)

			// Base for empty text with no other sections: 5 + 10 bullets,
			// plus 10 when the skills section counts as present.
			base := 15
			if len(tt.skills) > 0 {
				base += 10
			}
			assert.Equal(t, base+tt.delta, score)
			if tt.issue != "" {
				assert.Contains(t, analysis.Issues, tt.issue)
			}
		})
	}
}

func TestCalculateATSScore_WordCountBoundaries(t *testing.T) {
	p := DefaultParser()

	tests := []struct {
		words    int
		delta    int
		expected string
	}{
		{399, 5, "Resume might be too short"},
		{400, 10, "Optimal word count"},
		{1000, 10, "Optimal word count"},
		{1001, 5, "Resume might be too long"},
	}
	for _, tt := range tests {
		text := strings.Repeat("word ", tt.words)
		score, analysis := p.CalculateATSScore(text, &types.StructuredResume{})

		// 10 for few bullets is the only other component.
		assert.Equal(t, tt.delta+10, score, "words=%d", tt.words)
		found := append(analysis.Issues, analysis.PositiveAspects...)
		assert.Contains(t, found, tt.expected)
	}
}

func TestCalculateATSScore_EducationPresence(t *testing.T) {
	p := DefaultParser()

	// An education struct with every field empty does not count as a
	// present section.
	parsed := &types.StructuredResume{Education: &types.Education{}}
	_, analysis := p.CalculateATSScore("", parsed)
	assert.False(t, analysis.SectionPresence["education"])

	parsed.Education.Year = "2023"
	_, analysis = p.CalculateATSScore("", parsed)
	assert.True(t, analysis.SectionPresence["education"])
}

func TestParseText_EmptyVocabularySkillsScoreZero(t *testing.T) {
	p := NewParser(vocab.New(nil))

	// Text rich in real skills but with no heading: the skills component
	// must contribute nothing with an empty vocabulary.
	resume := p.ParseText("Python SQL Docker Kubernetes everywhere")
	require.Empty(t, resume.Skills)
	assert.Contains(t, resume.ATSReport.Issues, "No technical skills detected")
}
