package coach

import (
	"context"
	"strconv"
	"strings"

	"github.com/arnav/career-copilot/internal/prompts"
	"github.com/arnav/career-copilot/internal/types"
)

// GenerateInterviewQuestions asks for count numbered questions tailored to
// the candidate and role, and parses them by stripping leading numerals and
// bullets from each non-empty line of the response.
func (c *Coach) GenerateInterviewQuestions(ctx context.Context, resume *types.StructuredResume, jd *types.JobAnalysis, count int) []string {
	prompt := prompts.Format(prompts.MustGet("coach.json", "interview-questions"), map[string]string{
		"Count":             strconv.Itoa(count),
		"Role":              jd.Role,
		"Company":           jd.CompanyName,
		"RequiredSkills":    strings.Join(jd.RequiredSkills, ", "),
		"CandidateSkills":   strings.Join(resume.Skills, ", "),
		"CandidateProjects": strings.Join(projectNames(resume.Projects), ", "),
	})

	response := c.gw.Complete(ctx, prompt)

	var questions []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line[0] >= '0' && line[0] <= '9' || strings.HasPrefix(line, "-") {
			cleaned := strings.TrimLeft(line, "0123456789.- ")
			if cleaned != "" {
				questions = append(questions, cleaned)
			}
		}
	}
	return questions
}

// EvaluateAnswer grades one interview answer. The model is asked for a fixed
// line format; each field is parsed by prefix match and fails closed to its
// zero value when the format is not followed. The raw response is always
// preserved in Feedback so nothing is lost on a parse miss.
func (c *Coach) EvaluateAnswer(ctx context.Context, question, answer string, jd *types.JobAnalysis) *types.AnswerEvaluation {
	prompt := prompts.Format(prompts.MustGet("coach.json", "evaluate-answer"), map[string]string{
		"Role":           jd.Role,
		"Question":       question,
		"Answer":         answer,
		"RequiredSkills": strings.Join(jd.RequiredSkills, ", "),
	})

	response := c.gw.Complete(ctx, prompt)

	eval := &types.AnswerEvaluation{
		Feedback:   response,
		Strengths:  []string{},
		Weaknesses: []string{},
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Score:"):
			eval.Score = parseScore(strings.TrimPrefix(line, "Score:"))
		case strings.HasPrefix(line, "Strengths:"):
			eval.Strengths = splitList(strings.TrimPrefix(line, "Strengths:"))
		case strings.HasPrefix(line, "Weaknesses:"):
			eval.Weaknesses = splitList(strings.TrimPrefix(line, "Weaknesses:"))
		case strings.HasPrefix(line, "Improvement Suggestion:"):
			eval.Suggestion = strings.TrimSpace(strings.TrimPrefix(line, "Improvement Suggestion:"))
		case strings.HasPrefix(line, "Sample Better Answer:"):
			eval.SampleAnswer = strings.TrimSpace(strings.TrimPrefix(line, "Sample Better Answer:"))
		}
	}
	return eval
}

// GenerateApplicationAnswer drafts an answer to an application question. The
// word limit is a contract, not a hint: the response is hard-truncated to
// wordLimit words with a trailing ellipsis when it runs over.
func (c *Coach) GenerateApplicationAnswer(ctx context.Context, question string, resume *types.StructuredResume, jd *types.JobAnalysis, wordLimit int) string {
	expectations := jd.RoleExpectations
	if len(expectations) > 200 {
		expectations = expectations[:200]
	}

	projects := resume.Projects
	if len(projects) > 2 {
		projects = projects[:2]
	}
	skills := resume.Skills
	if len(skills) > 5 {
		skills = skills[:5]
	}

	prompt := prompts.Format(prompts.MustGet("coach.json", "application-answer"), map[string]string{
		"WordLimit":    strconv.Itoa(wordLimit),
		"Question":     question,
		"Role":         jd.Role,
		"Company":      jd.CompanyName,
		"Expectations": expectations,
		"Skills":       strings.Join(skills, ", "),
		"Projects":     strings.Join(projectNames(projects), ", "),
	})

	answer := c.gw.Complete(ctx, prompt)

	words := strings.Fields(answer)
	if len(words) > wordLimit {
		answer = strings.Join(words[:wordLimit], " ") + "..."
	}
	return answer
}

// parseScore accepts "7", "7/10", "7.0" and similar, failing closed to 0.
func parseScore(raw string) int {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	raw = strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func projectNames(projects []types.Project) []string {
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return names
}
