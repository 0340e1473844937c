package services

import (
	"context"
	"errors"
	"time"

	"ProjectHubAPI/internal/repository"

	"github.com/google/uuid"
)

type EmailVerificationService struct {
	users   UserRepository
	tokens  VerificationRepository
	mailer  Mailer
	ttl     time.Duration
	baseURL string
}

func NewEmailVerificationService(
	users UserRepository,
	tokens VerificationRepository,
	mailer Mailer,
	ttl time.Duration,
	baseURL string,
) *EmailVerificationService {
	return &EmailVerificationService{
		users:   users,
		tokens:  tokens,
		mailer:  mailer,
		ttl:     ttl,
		baseURL: baseURL,
	}
}

// SendToUser stores a fresh verification token for the user and mails the
// link. Any previously issued token for the same user stops working.
func (s *EmailVerificationService) SendToUser(ctx context.Context, userID int64, email string) error {
	tok := uuid.NewString()
	if err := s.tokens.Replace(ctx, userID, tok, time.Now().Add(s.ttl)); err != nil {
		return err
	}
	return s.mailer.SendVerificationEmail(ctx, email,
		s.baseURL+"/api/auth/verify-email?token="+tok)
}

// Resend issues a new verification link for an unverified account.
func (s *EmailVerificationService) Resend(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.EmailVerified {
		return ErrAlreadyVerified
	}
	return s.SendToUser(ctx, u.ID, u.Email)
}

// Verify consumes a verification token, flips the user's verified flag and
// returns the verified email address.
func (s *EmailVerificationService) Verify(ctx context.Context, tok string) (string, error) {
	if tok == "" {
		return "", ErrInvalidToken
	}
	userID, err := s.tokens.GetUserID(ctx, tok)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	// consume the token before flipping the flag: a failure here must
	// never report an error for a verification that already committed
	if err := s.tokens.Delete(ctx, tok); err != nil {
		return "", err
	}
	if err := s.users.SetEmailVerified(ctx, userID); err != nil {
		return "", err
	}
	return u.Email, nil
}
