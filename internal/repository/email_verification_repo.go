package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EmailVerificationRepository struct {
	db *pgxpool.Pool
}

func NewEmailVerificationRepository(db *pgxpool.Pool) *EmailVerificationRepository {
	return &EmailVerificationRepository{db: db}
}

// Replace drops any outstanding tokens for the user and stores a fresh one,
// so at most one verification link is live per user.
func (r *EmailVerificationRepository) Replace(ctx context.Context, userID int64, token string, exp time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM email_verifications WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO email_verifications (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, token, userID, exp); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *EmailVerificationRepository) GetUserID(ctx context.Context, token string) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx, `
		SELECT user_id FROM email_verifications
		WHERE token = $1 AND expires_at > now()
	`, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return userID, nil
}

func (r *EmailVerificationRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM email_verifications WHERE token = $1`, token)
	return err
}
