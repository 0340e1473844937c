package repository

import (
	"context"
	"errors"

	"ProjectHubAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	DB *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

// Create inserts the project and its owner membership row in one
// transaction so a project is never visible without its owner entry.
func (r *ProjectRepository) Create(ctx context.Context, name string, ownerID int64) (*model.Project, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	p := &model.Project{Name: name, OwnerID: ownerID}
	err = tx.QueryRow(ctx, `
		INSERT INTO projects (name, owner_id) VALUES ($1, $2)
		RETURNING id, created_at
	`, name, ownerID).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
	`, p.ID, ownerID, model.RoleOwner); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	p.Members = []model.ProjectMember{{UserID: ownerID, Role: model.RoleOwner}}
	return p, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, owner_id, created_at FROM projects WHERE id=$1
	`, id).Scan(&p.ID, &p.Name, &p.OwnerID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT user_id, role FROM project_members WHERE project_id=$1 ORDER BY user_id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m model.ProjectMember
		if err := rows.Scan(&m.UserID, &m.Role); err != nil {
			return nil, err
		}
		p.Members = append(p.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) UpdateName(ctx context.Context, id int64, name string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE projects SET name=$1 WHERE id=$2`, name, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertMember grants userID the given role, overwriting a previous grant.
func (r *ProjectRepository) UpsertMember(ctx context.Context, projectID, userID int64, role string) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`, projectID, userID, role)
	return err
}
