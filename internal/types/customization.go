package types

// CustomizedResume is the resume content produced by the customization
// engine for one resume/job-description pair. It mirrors StructuredResume
// minus the ATS fields, plus a short note about skills the candidate lacks.
type CustomizedResume struct {
	Name              string       `json:"name,omitempty"`
	Skills            []string     `json:"skills"`
	Projects          []Project    `json:"projects"`
	Experience        []Experience `json:"experience"`
	Education         *Education   `json:"education,omitempty"`
	Summary           string       `json:"summary,omitempty"`
	MissingSkillsNote []string     `json:"missing_skills_note"`
}

// ChangeLog records what the customization engine changed.
type ChangeLog struct {
	SkillsReordered    bool     `json:"skills_reordered"`
	ProjectsEnhanced   int      `json:"projects_enhanced"`
	ExperienceEnhanced int      `json:"experience_enhanced"`
	MissingSkills      []string `json:"missing_skills"`
}

// CustomizationResult is the full output of one customization run. Many
// results may exist per resume, one per job-description pairing.
type CustomizationResult struct {
	CustomizedData CustomizedResume `json:"customized_data"`
	ChangesMade    ChangeLog        `json:"changes_made"`
	RelevanceScore int              `json:"relevance_score"`
}
