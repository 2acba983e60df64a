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

// SaveSkillRecommendation stores a skill-gap analysis for a user.
func (db *DB) SaveSkillRecommendation(ctx context.Context, userID uuid.UUID, report *types.SkillGapReport, analyzedJobs int) (*SkillRecommendation, error) {
	missingJSON, err := json.Marshal(nonNil(report.MissingSkills))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal missing skills: %w", err)
	}
	recommendedJSON, err := json.Marshal(nonNil(report.RecommendedSkills))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recommended skills: %w", err)
	}
	ideasJSON, err := json.Marshal(nonNil(report.ProjectIdeas))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project ideas: %w", err)
	}
	resources := report.LearningResources
	if resources == nil {
		resources = []types.LearningResource{}
	}
	resourcesJSON, err := json.Marshal(resources)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal learning resources: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO skill_recommendations (user_id, missing_skills, recommended_skills, project_ideas, learning_resources, analyzed_jobs_count)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		userID, missingJSON, recommendedJSON, ideasJSON, resourcesJSON, analyzedJobs,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to save skill recommendation: %w", err)
	}

	return db.GetSkillRecommendation(ctx, id)
}

// GetSkillRecommendation retrieves one analysis by ID. Returns nil when not found.
func (db *DB) GetSkillRecommendation(ctx context.Context, id uuid.UUID) (*SkillRecommendation, error) {
	var rec SkillRecommendation
	var missingJSON, recommendedJSON, ideasJSON, resourcesJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, missing_skills, recommended_skills, project_ideas, learning_resources, analyzed_jobs_count, generated_at
		 FROM skill_recommendations WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.UserID, &missingJSON, &recommendedJSON, &ideasJSON,
		&resourcesJSON, &rec.AnalyzedJobsCount, &rec.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get skill recommendation: %w", err)
	}

	for _, pair := range []struct {
		data []byte
		dst  any
	}{
		{missingJSON, &rec.MissingSkills},
		{recommendedJSON, &rec.RecommendedSkills},
		{ideasJSON, &rec.ProjectIdeas},
		{resourcesJSON, &rec.LearningResources},
	} {
		if len(pair.data) > 0 {
			if err := json.Unmarshal(pair.data, pair.dst); err != nil {
				return nil, fmt.Errorf("failed to unmarshal recommendation field: %w", err)
			}
		}
	}
	return &rec, nil
}

// LatestSkillRecommendation retrieves the newest analysis for a user.
// Returns nil when the user has none.
func (db *DB) LatestSkillRecommendation(ctx context.Context, userID uuid.UUID) (*SkillRecommendation, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT id FROM skill_recommendations WHERE user_id = $1 ORDER BY generated_at DESC LIMIT 1`,
		userID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest skill recommendation: %w", err)
	}
	return db.GetSkillRecommendation(ctx, id)
}
