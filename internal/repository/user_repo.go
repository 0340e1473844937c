package repository

import (
	"context"
	"errors"

	"ProjectHubAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, email, password_hash, display_name, google_id, picture_url, email_verified, created_at`

// Create inserts a new user and returns the assigned id. A unique-constraint
// violation (email or google_id) is reported as ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *model.User) (int64, error) {
	var id int64
	query := `INSERT INTO users (email, password_hash, display_name, google_id, picture_url, email_verified)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.DB.QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.DisplayName, u.GoogleID, u.PictureURL, u.EmailVerified,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.scanOne(r.DB.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanOne(r.DB.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id=$1`
	return r.scanOne(r.DB.QueryRow(ctx, query, googleID))
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// LinkGoogle attaches an external identity to an existing account. The
// provider asserts email ownership, so the verified flag flips too.
func (r *UserRepository) LinkGoogle(ctx context.Context, userID int64, googleID string, pictureURL *string) error {
	query := `UPDATE users
			SET google_id=$1, picture_url=COALESCE($2, picture_url), email_verified=TRUE
			WHERE id=$3`
	tag, err := r.DB.Exec(ctx, query, googleID, pictureURL, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetPasswordHash(ctx context.Context, userID int64, hash string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE users SET password_hash=$1 WHERE id=$2`, hash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetEmailVerified(ctx context.Context, userID int64) error {
	tag, err := r.DB.Exec(ctx, `UPDATE users SET email_verified=TRUE WHERE id=$1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName,
		&u.GoogleID, &u.PictureURL, &u.EmailVerified, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
