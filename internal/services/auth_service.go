package services

import (
	"context"
	"errors"

	"ProjectHubAPI/external/google"
	"ProjectHubAPI/internal/model"
	"ProjectHubAPI/internal/repository"
	"ProjectHubAPI/internal/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users      UserRepository
	tokens     *token.Service
	verify     *EmailVerificationService
	identity   IdentityVerifier
	bcryptCost int
	log        *zap.Logger
}

func NewAuthService(
	users UserRepository,
	tokens *token.Service,
	verify *EmailVerificationService,
	identity IdentityVerifier,
	bcryptCost int,
	log *zap.Logger,
) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		verify:     verify,
		identity:   identity,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// Register creates a local account. It does not issue a token: login is a
// separate step. A verification email is sent after the record is persisted;
// a mailer failure is logged, not surfaced, so the registration stands.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*model.User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	hash := string(hashBytes)

	u := &model.User{
		Email:        email,
		PasswordHash: &hash,
		DisplayName:  displayName,
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		// the pre-check above races with concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	u.ID = id
	u.PasswordHash = nil

	if err := s.verify.SendToUser(ctx, id, email); err != nil {
		s.log.Warn("verification email not sent",
			zap.Int64("user_id", id), zap.Error(err))
	}

	return u, nil
}

// Login authenticates email + password and returns a signed identity token.
// Unknown email and wrong password produce the same error so callers cannot
// probe which addresses are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if u.PasswordHash == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", nil, err
	}
	u.PasswordHash = nil
	return tok, u, nil
}

// LoginWithGoogle exchanges a Google-verified ID token for a local identity
// token, provisioning or linking the User record as needed.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (string, *model.User, error) {
	p, err := s.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.log.Debug("google id token rejected", zap.Error(err))
		return "", nil, ErrInvalidCredentials
	}

	u, err := s.findOrCreateGoogleUser(ctx, p)
	if err != nil {
		return "", nil, err
	}

	tok, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", nil, err
	}
	u.PasswordHash = nil
	return tok, u, nil
}

func (s *AuthService) findOrCreateGoogleUser(ctx context.Context, p *google.Profile) (*model.User, error) {
	u, err := s.users.GetByGoogleID(ctx, p.Subject)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// An account may already exist under this email from a password
	// registration; link it instead of failing on the unique constraint.
	email := normalizeEmail(p.Email)
	u, err = s.users.GetByEmail(ctx, email)
	if err == nil {
		var picture *string
		if p.Picture != "" {
			picture = &p.Picture
		}
		if err := s.users.LinkGoogle(ctx, u.ID, p.Subject, picture); err != nil {
			return nil, err
		}
		return s.users.GetByID(ctx, u.ID)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	nu := &model.User{
		Email:         email,
		DisplayName:   p.Name,
		GoogleID:      &p.Subject,
		EmailVerified: true,
	}
	if p.Picture != "" {
		nu.PictureURL = &p.Picture
	}
	id, err := s.users.Create(ctx, nu)
	if err != nil {
		// lost a race with a concurrent first login; the record exists now
		if errors.Is(err, repository.ErrDuplicate) {
			return s.users.GetByGoogleID(ctx, p.Subject)
		}
		return nil, err
	}
	nu.ID = id
	return nu, nil
}
