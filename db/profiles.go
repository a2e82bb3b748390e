package db

import (
	"context"
	"database/sql"

	"github.com/MiguelRivas11/studio/models"
)

// UpsertProfile creates or replaces the user's profile record.
func UpsertProfile(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, display_name, email, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    email = EXCLUDED.email,
		    photo_url = EXCLUDED.photo_url,
		    updated_at = NOW()
	`
	_, err := DB.ExecContext(ctx, query, p.UserID, p.DisplayName, p.Email, p.PhotoURL)
	return err
}

// GetProfile returns the user's profile, or nil when none exists.
func GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT user_id, display_name, email, photo_url, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	p := &models.Profile{}
	err := DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.DisplayName,
		&p.Email,
		&p.PhotoURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return p, nil
}
