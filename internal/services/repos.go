package services

import (
	"context"
	"time"

	"ProjectHubAPI/external/google"
	"ProjectHubAPI/internal/model"
)

// Storage and collaborator contracts the services depend on. The pgx and
// Redis implementations live in internal/repository; the HTTP collaborators
// in external/.

type UserRepository interface {
	Create(ctx context.Context, u *model.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	LinkGoogle(ctx context.Context, userID int64, googleID string, pictureURL *string) error
	SetPasswordHash(ctx context.Context, userID int64, hash string) error
	SetEmailVerified(ctx context.Context, userID int64) error
}

type VerificationRepository interface {
	Replace(ctx context.Context, userID int64, token string, exp time.Time) error
	GetUserID(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

type ResetTokenStore interface {
	Put(ctx context.Context, token string, userID int64, ttl time.Duration) error
	Take(ctx context.Context, token string) (int64, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, name string, ownerID int64) (*model.Project, error)
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	UpsertMember(ctx context.Context, projectID, userID int64, role string) error
}

type Mailer interface {
	SendVerificationEmail(ctx context.Context, toEmail, verifyURL string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, resetURL string) error
}

type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*google.Profile, error)
}
