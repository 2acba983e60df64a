package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/arnav/career-copilot/internal/types"
)

// SaveJobDescription stores an analyzed job posting.
func (db *DB) SaveJobDescription(ctx context.Context, userID uuid.UUID, analysis *types.JobAnalysis) (*JobDescription, error) {
	skillsJSON, err := json.Marshal(nonNil(analysis.RequiredSkills))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal required skills: %w", err)
	}
	keywordsJSON, err := json.Marshal(nonNil(analysis.PriorityKeywords))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal priority keywords: %w", err)
	}
	toolsJSON, err := json.Marshal(nonNil(analysis.ToolsTechnologies))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tools: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO job_descriptions (user_id, company_name, role, job_description_text, required_skills, priority_keywords, tools_technologies, role_expectations)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		userID, analysis.CompanyName, analysis.Role, analysis.RawText,
		skillsJSON, keywordsJSON, toolsJSON, analysis.RoleExpectations,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to save job description: %w", err)
	}

	return db.GetJobDescription(ctx, id)
}

// GetJobDescription retrieves a job description by ID. Returns nil when not found.
func (db *DB) GetJobDescription(ctx context.Context, id uuid.UUID) (*JobDescription, error) {
	var jd JobDescription
	var skillsJSON, keywordsJSON, toolsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, COALESCE(company_name, ''), COALESCE(role, ''), COALESCE(job_description_text, ''), required_skills, priority_keywords, tools_technologies, COALESCE(role_expectations, ''), analyzed_at
		 FROM job_descriptions WHERE id = $1`,
		id,
	).Scan(&jd.ID, &jd.UserID, &jd.CompanyName, &jd.Role, &jd.JobDescriptionText,
		&skillsJSON, &keywordsJSON, &toolsJSON, &jd.RoleExpectations, &jd.AnalyzedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job description: %w", err)
	}

	for _, pair := range []struct {
		data []byte
		dst  *[]string
	}{
		{skillsJSON, &jd.RequiredSkills},
		{keywordsJSON, &jd.PriorityKeywords},
		{toolsJSON, &jd.ToolsTechnologies},
	} {
		if len(pair.data) > 0 {
			if err := json.Unmarshal(pair.data, pair.dst); err != nil {
				return nil, fmt.Errorf("failed to unmarshal job description field: %w", err)
			}
		}
	}
	return &jd, nil
}

// ListJobDescriptions retrieves all analyzed postings for a user,
// most recent first.
func (db *DB) ListJobDescriptions(ctx context.Context, userID uuid.UUID) ([]JobDescription, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, COALESCE(company_name, ''), COALESCE(role, ''), required_skills, analyzed_at
		 FROM job_descriptions WHERE user_id = $1 ORDER BY analyzed_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	defer rows.Close()

	var jds []JobDescription
	for rows.Next() {
		var jd JobDescription
		var skillsJSON []byte
		if err := rows.Scan(&jd.ID, &jd.UserID, &jd.CompanyName, &jd.Role, &skillsJSON, &jd.AnalyzedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job description: %w", err)
		}
		if len(skillsJSON) > 0 {
			if err := json.Unmarshal(skillsJSON, &jd.RequiredSkills); err != nil {
				return nil, fmt.Errorf("failed to unmarshal required skills: %w", err)
			}
		}
		jds = append(jds, jd)
	}
	return jds, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
