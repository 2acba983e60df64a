package types

// SkillGapReport aggregates missing skills across a user's stored job
// descriptions, ordered by descending frequency.
type SkillGapReport struct {
	MissingSkills     []string           `json:"missing_skills"`
	RecommendedSkills []string           `json:"recommended_skills"`
	ProjectIdeas      []string           `json:"project_ideas"`
	LearningResources []LearningResource `json:"learning_resources"`
}

// LearningResource groups templated learning links for one skill. The URLs
// are search templates; they are never fetched or validated.
type LearningResource struct {
	Skill     string         `json:"skill"`
	Resources []ResourceLink `json:"resources"`
}

// ResourceLink is one learning link.
type ResourceLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// AnswerEvaluation is structured feedback for one interview answer. Fields
// the model response did not follow the expected format for stay at their
// zero values; Feedback always carries the raw response.
type AnswerEvaluation struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	Suggestion   string   `json:"suggestion,omitempty"`
	SampleAnswer string   `json:"sample_answer,omitempty"`
}
