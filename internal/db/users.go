package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrEmailTaken is returned when creating a user with a registered email.
var ErrEmailTaken = errors.New("email already registered")

// CreateUser inserts a new user and returns the stored record.
func (db *DB) CreateUser(ctx context.Context, email, passwordHash, name string) (*User, error) {
	var user User
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name, is_active)
		 VALUES ($1, $2, $3, true)
		 RETURNING id, email, password_hash, name, COALESCE(college, ''), COALESCE(education_level, ''), COALESCE(target_role, ''), is_active, created_at, updated_at`,
		strings.ToLower(strings.TrimSpace(email)), passwordHash, name,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.College,
		&user.EducationLevel, &user.TargetRole, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email. Returns nil when not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name, COALESCE(college, ''), COALESCE(education_level, ''), COALESCE(target_role, ''), is_active, created_at, updated_at
		 FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.College,
		&user.EducationLevel, &user.TargetRole, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetUser retrieves a user by ID. Returns nil when not found.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name, COALESCE(college, ''), COALESCE(education_level, ''), COALESCE(target_role, ''), is_active, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.College,
		&user.EducationLevel, &user.TargetRole, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateUserProfile updates the profile fields of a user.
func (db *DB) UpdateUserProfile(ctx context.Context, id uuid.UUID, college, educationLevel, targetRole string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET college = $1, education_level = $2, target_role = $3, updated_at = NOW()
		 WHERE id = $4`,
		college, educationLevel, targetRole, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	return nil
}
