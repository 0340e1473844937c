package services

import (
	"context"
	"errors"
	"time"

	"ProjectHubAPI/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type PasswordResetService struct {
	users      UserRepository
	store      ResetTokenStore
	mailer     Mailer
	ttl        time.Duration
	bcryptCost int
	baseURL    string
}

func NewPasswordResetService(
	users UserRepository,
	store ResetTokenStore,
	mailer Mailer,
	ttl time.Duration,
	bcryptCost int,
	baseURL string,
) *PasswordResetService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &PasswordResetService{
		users:      users,
		store:      store,
		mailer:     mailer,
		ttl:        ttl,
		bcryptCost: bcryptCost,
		baseURL:    baseURL,
	}
}

// Request issues a single-use reset token for the account and mails the
// link. The token expires after the configured TTL (an hour by default).
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	tok := uuid.NewString()
	if err := s.store.Put(ctx, tok, u.ID, s.ttl); err != nil {
		return err
	}
	return s.mailer.SendPasswordResetEmail(ctx, u.Email,
		s.baseURL+"/reset-password?token="+tok)
}

// Reset consumes the token and replaces the credential hash. Consumption is
// atomic: a reused, expired or unknown token fails with ErrInvalidToken.
func (s *PasswordResetService) Reset(ctx context.Context, tok, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	userID, err := s.store.Take(ctx, tok)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.SetPasswordHash(ctx, userID, string(hash))
}
