package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/arnav/career-copilot/internal/types"
)

// User is an account record.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name"`
	College        string    `json:"college,omitempty"`
	EducationLevel string    `json:"education_level,omitempty"`
	TargetRole     string    `json:"target_role,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Resume is an uploaded resume plus its parsed form.
type Resume struct {
	ID               uuid.UUID              `json:"id"`
	UserID           uuid.UUID              `json:"user_id"`
	OriginalFilename string                 `json:"original_filename"`
	OriginalFilePath string                 `json:"original_file_path,omitempty"`
	Category         string                 `json:"category"`
	ParsedData       *types.StructuredResume `json:"parsed_data,omitempty"`
	ATSScore         int                    `json:"ats_score"`
	ATSAnalysis      *types.ATSAnalysis     `json:"ats_analysis,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// JobDescription is an analyzed job posting.
type JobDescription struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	CompanyName        string    `json:"company_name,omitempty"`
	Role               string    `json:"role,omitempty"`
	JobDescriptionText string    `json:"job_description_text"`
	RequiredSkills     []string  `json:"required_skills"`
	PriorityKeywords   []string  `json:"priority_keywords"`
	ToolsTechnologies  []string  `json:"tools_technologies"`
	RoleExpectations   string    `json:"role_expectations,omitempty"`
	AnalyzedAt         time.Time `json:"analyzed_at"`
}

// Analysis converts a stored job description back to its analyzed form.
func (j *JobDescription) Analysis() *types.JobAnalysis {
	return &types.JobAnalysis{
		CompanyName:       j.CompanyName,
		Role:              j.Role,
		RawText:           j.JobDescriptionText,
		RequiredSkills:    j.RequiredSkills,
		PriorityKeywords:  j.PriorityKeywords,
		ToolsTechnologies: j.ToolsTechnologies,
		RoleExpectations:  j.RoleExpectations,
	}
}

// CustomizedResume is a tailored resume tied to an original and a job.
type CustomizedResume struct {
	ID                uuid.UUID               `json:"id"`
	OriginalResumeID  uuid.UUID               `json:"original_resume_id"`
	JobDescriptionID  uuid.UUID               `json:"job_description_id"`
	CustomizedData    *types.CustomizedResume `json:"customized_data,omitempty"`
	GeneratedFilePath string                  `json:"generated_file_path,omitempty"`
	ChangesMade       *types.ChangeLog        `json:"changes_made,omitempty"`
	RelevanceScore    int                     `json:"relevance_score"`
	CreatedAt         time.Time               `json:"created_at"`
}

// Application tracks one submitted job application.
type Application struct {
	ID                 uuid.UUID         `json:"id"`
	UserID             uuid.UUID         `json:"user_id"`
	JobDescriptionID   uuid.UUID         `json:"job_description_id"`
	CustomizedResumeID *uuid.UUID        `json:"customized_resume_id,omitempty"`
	CompanyName        string            `json:"company_name,omitempty"`
	Role               string            `json:"role,omitempty"`
	ApplicationDate    time.Time         `json:"application_date"`
	Status             string            `json:"status"`
	ApplicationAnswers map[string]string `json:"application_answers"`
	Notes              string            `json:"notes,omitempty"`
}

// Application statuses.
const (
	StatusApplied     = "Applied"
	StatusUnderReview = "Under Review"
	StatusInterview   = "Interview"
	StatusRejected    = "Rejected"
	StatusAccepted    = "Accepted"
)

// SkillRecommendation is a stored skill-gap analysis.
type SkillRecommendation struct {
	ID                uuid.UUID                 `json:"id"`
	UserID            uuid.UUID                 `json:"user_id"`
	MissingSkills     []string                  `json:"missing_skills"`
	RecommendedSkills []string                  `json:"recommended_skills"`
	ProjectIdeas      []string                  `json:"project_ideas"`
	LearningResources []types.LearningResource  `json:"learning_resources"`
	AnalyzedJobsCount int                       `json:"analyzed_jobs_count"`
	GeneratedAt       time.Time                 `json:"generated_at"`
}
