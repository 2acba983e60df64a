package coach

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnav/career-copilot/internal/llm"
	"github.com/arnav/career-copilot/internal/types"
)

// scriptedGateway returns a gateway whose every completion is the given
// response, served through the HTTP fallback provider.
func scriptedGateway(t *testing.T, response string) *llm.Gateway {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": response}}}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	return llm.New(context.Background(), llm.Config{
		RESTAPIKey:     "test-key",
		FallbackModels: []string{"test-model"},
		BaseURL:        srv.URL,
	}, nil)
}

func TestGenerateInterviewQuestions_ParsesNumberedLines(t *testing.T) {
	response := strings.Join([]string{
		"Here are your questions:",
		"1. Tell me about your tracker project.",
		"2. How do you index a slow query?",
		"",
		"- What is a goroutine?",
		"some commentary the model added",
		"3. Why this company?",
	}, "\n")
	coach := New(scriptedGateway(t, response))

	questions := coach.GenerateInterviewQuestions(context.Background(),
		&types.StructuredResume{Skills: []string{"Go"}},
		&types.JobAnalysis{Role: "Backend Engineer"}, 3)

	assert.Equal(t, []string{
		"Tell me about your tracker project.",
		"How do you index a slow query?",
		"What is a goroutine?",
		"Why this company?",
	}, questions)
}

func TestGenerateInterviewQuestions_NoParseableLines(t *testing.T) {
	coach := New(scriptedGateway(t, "The model refused to number anything."))

	questions := coach.GenerateInterviewQuestions(context.Background(),
		&types.StructuredResume{}, &types.JobAnalysis{}, 5)

	assert.Empty(t, questions)
}

func TestEvaluateAnswer_ParsesStructuredResponse(t *testing.T) {
	response := strings.Join([]string{
		"Score: 7/10",
		"Strengths: clear structure, concrete example",
		"Weaknesses: too short",
		"Improvement Suggestion: quantify the impact",
		"Sample Better Answer: Go's concurrency model cut our p99 latency in half.",
	}, "\n")
	coach := New(scriptedGateway(t, response))

	eval := coach.EvaluateAnswer(context.Background(), "Why Go?", "Because it is fast.", &types.JobAnalysis{Role: "Backend Engineer"})
	require.NotNil(t, eval)

	assert.Equal(t, 7, eval.Score)
	assert.Equal(t, []string{"clear structure", "concrete example"}, eval.Strengths)
	assert.Equal(t, []string{"too short"}, eval.Weaknesses)
	assert.Equal(t, "quantify the impact", eval.Suggestion)
	assert.Equal(t, "Go's concurrency model cut our p99 latency in half.", eval.SampleAnswer)
	assert.Equal(t, response, eval.Feedback)
}

func TestEvaluateAnswer_FailsClosedOnFreeformResponse(t *testing.T) {
	response := "I think this answer was decent overall."
	coach := New(scriptedGateway(t, response))

	eval := coach.EvaluateAnswer(context.Background(), "q", "a", &types.JobAnalysis{})
	require.NotNil(t, eval)

	assert.Zero(t, eval.Score)
	assert.Empty(t, eval.Strengths)
	assert.Empty(t, eval.Weaknesses)
	assert.Empty(t, eval.Suggestion)
	assert.Empty(t, eval.SampleAnswer)
	// The raw response is never lost.
	assert.Equal(t, response, eval.Feedback)
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"7", 7},
		{" 7/10 ", 7},
		{"7.0", 7},
		{"8.6", 8},
		{"9 / 10", 9},
		{"excellent", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseScore(tt.raw), "raw=%q", tt.raw)
	}
}

func TestGenerateApplicationAnswer_TruncatesAtWordLimit(t *testing.T) {
	response := strings.Repeat("word ", 30)
	coach := New(scriptedGateway(t, response))

	answer := coach.GenerateApplicationAnswer(context.Background(), "Why us?",
		&types.StructuredResume{}, &types.JobAnalysis{}, 10)

	words := strings.Fields(answer)
	assert.Len(t, words, 10)
	assert.True(t, strings.HasSuffix(answer, "..."))
}

func TestGenerateApplicationAnswer_UnderLimitUnchanged(t *testing.T) {
	coach := New(scriptedGateway(t, "A short and complete answer."))

	answer := coach.GenerateApplicationAnswer(context.Background(), "Why us?",
		&types.StructuredResume{}, &types.JobAnalysis{}, 150)

	assert.Equal(t, "A short and complete answer.", answer)
}
