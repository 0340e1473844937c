package services

import (
	"context"
	"errors"
	"time"

	"ProjectHubAPI/external/google"
	"ProjectHubAPI/internal/model"
	"ProjectHubAPI/internal/repository"
)

type fakeUserRepo struct {
	nextID int64
	byID   map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) (int64, error) {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return 0, repository.ErrDuplicate
		}
		if u.GoogleID != nil && existing.GoogleID != nil && *existing.GoogleID == *u.GoogleID {
			return 0, repository.ErrDuplicate
		}
	}
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	f.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByGoogleID(_ context.Context, googleID string) (*model.User, error) {
	for _, u := range f.byID {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) LinkGoogle(_ context.Context, userID int64, googleID string, pictureURL *string) error {
	u, ok := f.byID[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.GoogleID = &googleID
	if pictureURL != nil {
		u.PictureURL = pictureURL
	}
	u.EmailVerified = true
	return nil
}

func (f *fakeUserRepo) SetPasswordHash(_ context.Context, userID int64, hash string) error {
	u, ok := f.byID[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = &hash
	return nil
}

func (f *fakeUserRepo) SetEmailVerified(_ context.Context, userID int64) error {
	u, ok := f.byID[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.EmailVerified = true
	return nil
}

type verificationEntry struct {
	userID int64
	exp    time.Time
}

type fakeVerifyRepo struct {
	byToken    map[string]verificationEntry
	failDelete bool
}

func newFakeVerifyRepo() *fakeVerifyRepo {
	return &fakeVerifyRepo{byToken: map[string]verificationEntry{}}
}

func (f *fakeVerifyRepo) Replace(_ context.Context, userID int64, token string, exp time.Time) error {
	for tok, e := range f.byToken {
		if e.userID == userID {
			delete(f.byToken, tok)
		}
	}
	f.byToken[token] = verificationEntry{userID: userID, exp: exp}
	return nil
}

func (f *fakeVerifyRepo) GetUserID(_ context.Context, token string) (int64, error) {
	e, ok := f.byToken[token]
	if !ok || time.Now().After(e.exp) {
		return 0, repository.ErrNotFound
	}
	return e.userID, nil
}

func (f *fakeVerifyRepo) Delete(_ context.Context, token string) error {
	if f.failDelete {
		return errors.New("delete failed")
	}
	delete(f.byToken, token)
	return nil
}

type fakeResetStore struct {
	byToken map[string]verificationEntry
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{byToken: map[string]verificationEntry{}}
}

func (f *fakeResetStore) Put(_ context.Context, token string, userID int64, ttl time.Duration) error {
	f.byToken[token] = verificationEntry{userID: userID, exp: time.Now().Add(ttl)}
	return nil
}

func (f *fakeResetStore) Take(_ context.Context, token string) (int64, error) {
	e, ok := f.byToken[token]
	if !ok {
		return 0, repository.ErrNotFound
	}
	delete(f.byToken, token)
	if time.Now().After(e.exp) {
		return 0, repository.ErrNotFound
	}
	return e.userID, nil
}

type sentMail struct {
	to  string
	url string
}

type fakeMailer struct {
	verifications []sentMail
	resets        []sentMail
	fail          bool
}

func (f *fakeMailer) SendVerificationEmail(_ context.Context, toEmail, verifyURL string) error {
	if f.fail {
		return errors.New("mailer down")
	}
	f.verifications = append(f.verifications, sentMail{to: toEmail, url: verifyURL})
	return nil
}

func (f *fakeMailer) SendPasswordResetEmail(_ context.Context, toEmail, resetURL string) error {
	if f.fail {
		return errors.New("mailer down")
	}
	f.resets = append(f.resets, sentMail{to: toEmail, url: resetURL})
	return nil
}

type fakeIdentity struct {
	profiles map[string]*google.Profile
}

func (f *fakeIdentity) VerifyIDToken(_ context.Context, idToken string) (*google.Profile, error) {
	p, ok := f.profiles[idToken]
	if !ok {
		return nil, errors.New("google rejected the id token")
	}
	return p, nil
}

type fakeProjectRepo struct {
	nextID int64
	byID   map[int64]*model.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{byID: map[int64]*model.Project{}}
}

func (f *fakeProjectRepo) Create(_ context.Context, name string, ownerID int64) (*model.Project, error) {
	f.nextID++
	p := &model.Project{
		ID:      f.nextID,
		Name:    name,
		OwnerID: ownerID,
		Members: []model.ProjectMember{{UserID: ownerID, Role: model.RoleOwner}},
	}
	f.byID[p.ID] = p
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id int64) (*model.Project, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) UpdateName(_ context.Context, id int64, name string) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Name = name
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProjectRepo) UpsertMember(_ context.Context, projectID, userID int64, role string) error {
	p, ok := f.byID[projectID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, m := range p.Members {
		if m.UserID == userID {
			p.Members[i].Role = role
			return nil
		}
	}
	p.Members = append(p.Members, model.ProjectMember{UserID: userID, Role: role})
	return nil
}
