package model

import "time"

const (
	RoleViewer = "viewer"
	RoleEditor = "editor"
	RoleOwner  = "owner"
)

var roleRank = map[string]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleOwner:  3,
}

func ValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

type ProjectMember struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

type Project struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	OwnerID   int64           `json:"owner_id"`
	Members   []ProjectMember `json:"members"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

// HasPermission reports whether userID holds a role on the project at least
// as strong as required. The owner passes every check.
func (p *Project) HasPermission(userID int64, required string) bool {
	need, ok := roleRank[required]
	if !ok {
		return false
	}
	if p.OwnerID == userID {
		return true
	}
	for _, m := range p.Members {
		if m.UserID == userID {
			return roleRank[m.Role] >= need
		}
	}
	return false
}
