package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateApplication records a new application with status "Applied".
func (db *DB) CreateApplication(ctx context.Context, userID, jobID uuid.UUID, customizedResumeID *uuid.UUID, companyName, role string, answers map[string]string) (*Application, error) {
	if answers == nil {
		answers = map[string]string{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal application answers: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO applications (user_id, job_description_id, customized_resume_id, company_name, role, status, application_answers)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		userID, jobID, customizedResumeID, companyName, role, StatusApplied, answersJSON,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return db.GetApplication(ctx, id)
}

// GetApplication retrieves an application by ID. Returns nil when not found.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	var app Application
	var answersJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, job_description_id, customized_resume_id, COALESCE(company_name, ''), COALESCE(role, ''), application_date, status, application_answers, COALESCE(notes, '')
		 FROM applications WHERE id = $1`,
		id,
	).Scan(&app.ID, &app.UserID, &app.JobDescriptionID, &app.CustomizedResumeID,
		&app.CompanyName, &app.Role, &app.ApplicationDate, &app.Status, &answersJSON, &app.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	app.ApplicationAnswers = map[string]string{}
	if len(answersJSON) > 0 {
		if err := json.Unmarshal(answersJSON, &app.ApplicationAnswers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal application answers: %w", err)
		}
	}
	return &app, nil
}

// ListApplications retrieves all applications for a user, most recent first.
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, job_description_id, customized_resume_id, COALESCE(company_name, ''), COALESCE(role, ''), application_date, status, COALESCE(notes, '')
		 FROM applications WHERE user_id = $1 ORDER BY application_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.UserID, &app.JobDescriptionID, &app.CustomizedResumeID,
			&app.CompanyName, &app.Role, &app.ApplicationDate, &app.Status, &app.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// UpdateApplicationStatus moves an application to a new status. The
// notes field is replaced when notes is non-empty.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id, userID uuid.UUID, status, notes string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, notes = CASE WHEN $2 <> '' THEN $2 ELSE notes END
		 WHERE id = $3 AND user_id = $4`,
		status, notes, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
