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

// SaveCustomizedResume stores a customization result and its rendered file path.
func (db *DB) SaveCustomizedResume(ctx context.Context, resumeID, jobID uuid.UUID, result *types.CustomizationResult, filePath string) (*CustomizedResume, error) {
	dataJSON, err := json.Marshal(result.CustomizedData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal customized data: %w", err)
	}
	changesJSON, err := json.Marshal(result.ChangesMade)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal change log: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO customized_resumes (original_resume_id, job_description_id, customized_data, generated_file_path, changes_made, relevance_score)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		resumeID, jobID, dataJSON, filePath, changesJSON, result.RelevanceScore,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to save customized resume: %w", err)
	}

	return db.GetCustomizedResume(ctx, id)
}

// GetCustomizedResume retrieves a customization by ID. Returns nil when not found.
func (db *DB) GetCustomizedResume(ctx context.Context, id uuid.UUID) (*CustomizedResume, error) {
	var cr CustomizedResume
	var dataJSON, changesJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, original_resume_id, job_description_id, customized_data, COALESCE(generated_file_path, ''), changes_made, COALESCE(relevance_score, 0), created_at
		 FROM customized_resumes WHERE id = $1`,
		id,
	).Scan(&cr.ID, &cr.OriginalResumeID, &cr.JobDescriptionID, &dataJSON,
		&cr.GeneratedFilePath, &changesJSON, &cr.RelevanceScore, &cr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customized resume: %w", err)
	}

	if len(dataJSON) > 0 {
		cr.CustomizedData = &types.CustomizedResume{}
		if err := json.Unmarshal(dataJSON, cr.CustomizedData); err != nil {
			return nil, fmt.Errorf("failed to unmarshal customized data: %w", err)
		}
	}
	if len(changesJSON) > 0 {
		cr.ChangesMade = &types.ChangeLog{}
		if err := json.Unmarshal(changesJSON, cr.ChangesMade); err != nil {
			return nil, fmt.Errorf("failed to unmarshal change log: %w", err)
		}
	}
	return &cr, nil
}

// ListCustomizedResumes retrieves customizations for a resume, most recent first.
func (db *DB) ListCustomizedResumes(ctx context.Context, resumeID uuid.UUID) ([]CustomizedResume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, original_resume_id, job_description_id, COALESCE(generated_file_path, ''), COALESCE(relevance_score, 0), created_at
		 FROM customized_resumes WHERE original_resume_id = $1 ORDER BY created_at DESC`,
		resumeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list customized resumes: %w", err)
	}
	defer rows.Close()

	var results []CustomizedResume
	for rows.Next() {
		var cr CustomizedResume
		if err := rows.Scan(&cr.ID, &cr.OriginalResumeID, &cr.JobDescriptionID, &cr.GeneratedFilePath, &cr.RelevanceScore, &cr.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customized resume: %w", err)
		}
		results = append(results, cr)
	}
	return results, rows.Err()
}
