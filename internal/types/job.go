package types

// JobAnalysis represents an analyzed job description. Created once per
// analyze call.
type JobAnalysis struct {
	CompanyName       string   `json:"company_name,omitempty"`
	Role              string   `json:"role,omitempty"`
	RawText           string   `json:"raw_text,omitempty"`
	RequiredSkills    []string `json:"required_skills"`
	PriorityKeywords  []string `json:"priority_keywords"`
	ToolsTechnologies []string `json:"tools_technologies"`
	// RoleExpectations is the first ten responsibility items joined by ". ".
	RoleExpectations string `json:"role_expectations,omitempty"`
}
