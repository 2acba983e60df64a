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

// SaveResume stores an uploaded resume with its parsed data.
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, filename, filePath, category string, parsed *types.StructuredResume) (*Resume, error) {
	parsedJSON, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parsed resume: %w", err)
	}
	var analysisJSON []byte
	if parsed.ATSReport != nil {
		analysisJSON, err = json.Marshal(parsed.ATSReport)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal ATS analysis: %w", err)
		}
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, original_filename, original_file_path, category, parsed_data, ats_score, ats_analysis)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		userID, filename, filePath, category, parsedJSON, parsed.ATSScore, analysisJSON,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}

	return db.GetResume(ctx, id)
}

// GetResume retrieves a resume by ID. Returns nil when not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	var parsedJSON, analysisJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, COALESCE(original_filename, ''), COALESCE(original_file_path, ''), category, parsed_data, COALESCE(ats_score, 0), ats_analysis, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.UserID, &r.OriginalFilename, &r.OriginalFilePath, &r.Category,
		&parsedJSON, &r.ATSScore, &analysisJSON, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if len(parsedJSON) > 0 {
		r.ParsedData = &types.StructuredResume{}
		if err := json.Unmarshal(parsedJSON, r.ParsedData); err != nil {
			return nil, fmt.Errorf("failed to unmarshal parsed resume: %w", err)
		}
	}
	if len(analysisJSON) > 0 {
		r.ATSAnalysis = &types.ATSAnalysis{}
		if err := json.Unmarshal(analysisJSON, r.ATSAnalysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ATS analysis: %w", err)
		}
	}
	return &r, nil
}

// ListResumes retrieves all resumes for a user, most recent first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, COALESCE(original_filename, ''), category, COALESCE(ats_score, 0), created_at, updated_at
		 FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.UserID, &r.OriginalFilename, &r.Category, &r.ATSScore, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, rows.Err()
}

// DeleteResume removes a resume owned by the given user.
func (db *DB) DeleteResume(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
