package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"ProjectHubAPI/external/google"
	"ProjectHubAPI/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(users *fakeUserRepo, identity IdentityVerifier) (*AuthService, *fakeMailer, *token.Service) {
	mailer := &fakeMailer{}
	tokens := token.NewService([]byte("test-secret"), time.Hour)
	verify := NewEmailVerificationService(users, newFakeVerifyRepo(), mailer, 24*time.Hour, "http://localhost:8080")
	auth := NewAuthService(users, tokens, verify, identity, 4, zap.NewNop())
	return auth, mailer, tokens
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newFakeUserRepo()
	auth, mailer, tokens := newTestAuthService(users, nil)

	u, err := auth.Register(ctx, "a@x.com", "secret-pass", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.NotZero(t, u.ID)
	assert.Nil(t, u.PasswordHash)
	require.Len(t, mailer.verifications, 1)
	assert.Equal(t, "a@x.com", mailer.verifications[0].to)

	tok, logged, err := auth.Login(ctx, "a@x.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	claims, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newFakeUserRepo()
	auth, _, _ := newTestAuthService(users, nil)

	_, err := auth.Register(ctx, "a@x.com", "secret-pass", "")
	require.NoError(t, err)
	existing, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "a@x.com", "another-pass", "")
	require.ErrorIs(t, err, ErrEmailTaken)

	// the original record is untouched
	after, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, *existing.PasswordHash, *after.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	auth, _, _ := newTestAuthService(newFakeUserRepo(), nil)

	_, err := auth.Register(ctx, "", "secret-pass", "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = auth.Register(ctx, "not-an-email", "secret-pass", "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = auth.Register(ctx, "a@x.com", "short", "")
	require.ErrorIs(t, err, ErrValidation)

	// past bcrypt's 72-byte limit the boundary rejects it, not the hasher
	_, err = auth.Register(ctx, "a@x.com", strings.Repeat("p", 80), "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestRegister_MailerFailureDoesNotFailRegistration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newFakeUserRepo()
	auth, mailer, _ := newTestAuthService(users, nil)
	mailer.fail = true

	_, err := auth.Register(ctx, "a@x.com", "secret-pass", "")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "a@x.com", "secret-pass")
	require.NoError(t, err)
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	auth, _, _ := newTestAuthService(newFakeUserRepo(), nil)

	u, err := auth.Register(ctx, "Alice@X.Com", "secret-pass", "")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", u.Email)

	_, _, err = auth.Login(ctx, "ALICE@x.com", "secret-pass")
	require.NoError(t, err)
}

func TestLogin_UniformFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	auth, _, _ := newTestAuthService(newFakeUserRepo(), nil)

	_, err := auth.Register(ctx, "a@x.com", "secret-pass", "")
	require.NoError(t, err)

	// unknown email and wrong password are indistinguishable
	_, _, errUnknown := auth.Login(ctx, "nobody@x.com", "secret-pass")
	_, _, errWrongPw := auth.Login(ctx, "a@x.com", "wrong-pass")
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLoginWithGoogle_ProvisionsOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newFakeUserRepo()
	identity := &fakeIdentity{profiles: map[string]*google.Profile{
		"good-token": {Subject: "sub-1", Email: "G@X.Com", Name: "Gabi", Picture: "https://img/x.png"},
	}}
	auth, _, _ := newTestAuthService(users, identity)

	_, u1, err := auth.LoginWithGoogle(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, "g@x.com", u1.Email)
	assert.True(t, u1.EmailVerified)
	assert.Equal(t, "Gabi", u1.DisplayName)

	// second login finds the same record
	_, u2, err := auth.LoginWithGoogle(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, u1.ID, u2.ID)
	assert.Len(t, users.byID, 1)
}

func TestLoginWithGoogle_LinksExistingAccount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newFakeUserRepo()
	identity := &fakeIdentity{profiles: map[string]*google.Profile{
		"good-token": {Subject: "sub-1", Email: "a@x.com", Name: "Alice"},
	}}
	auth, _, _ := newTestAuthService(users, identity)

	registered, err := auth.Register(ctx, "a@x.com", "secret-pass", "Alice")
	require.NoError(t, err)

	_, linked, err := auth.LoginWithGoogle(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, linked.ID)
	require.NotNil(t, linked.GoogleID)
	assert.Equal(t, "sub-1", *linked.GoogleID)
	assert.True(t, linked.EmailVerified)

	// the password still works after linking
	_, _, err = auth.Login(ctx, "a@x.com", "secret-pass")
	require.NoError(t, err)
}

func TestLoginWithGoogle_RejectedToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	identity := &fakeIdentity{profiles: map[string]*google.Profile{}}
	auth, _, _ := newTestAuthService(newFakeUserRepo(), identity)

	_, _, err := auth.LoginWithGoogle(ctx, "bad-token")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
