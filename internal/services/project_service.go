package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ProjectHubAPI/internal/model"
	"ProjectHubAPI/internal/repository"
)

// ProjectService is the thin CRUD surface the permission guard protects.
type ProjectService struct {
	projects ProjectRepository
	users    UserRepository
}

func NewProjectService(projects ProjectRepository, users UserRepository) *ProjectService {
	return &ProjectService{projects: projects, users: users}
}

func (s *ProjectService) Create(ctx context.Context, ownerID int64, name string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}
	return s.projects.Create(ctx, name, ownerID)
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Rename(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: project name is required", ErrValidation)
	}
	err := s.projects.UpdateName(ctx, id, name)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProjectNotFound
	}
	return err
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	err := s.projects.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProjectNotFound
	}
	return err
}

// SetMemberRole grants or updates a member's role. The owner's entry is
// fixed; ownership transfer is not part of this surface.
func (s *ProjectService) SetMemberRole(ctx context.Context, p *model.Project, userID int64, role string) error {
	if !model.ValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if userID == p.OwnerID {
		return fmt.Errorf("%w: the owner's role cannot be changed", ErrValidation)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.projects.UpsertMember(ctx, p.ID, userID, role)
}
