package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"ProjectHubAPI/internal/model"
	"ProjectHubAPI/internal/services"

	"github.com/labstack/echo/v4"
)

const projectContextKey = "project"

// ProjectLoader is the lookup the guard needs; ProjectService satisfies it.
type ProjectLoader interface {
	Get(ctx context.Context, id int64) (*model.Project, error)
}

// RequireProjectRole enforces a per-project role on routes carrying an :id
// path param. It must run after RequireAuth. The project is looked up once
// and attached to the context so handlers don't query it again.
func RequireProjectRole(projects ProjectLoader, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
			}

			idParam := c.Param("id")
			if idParam == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "project id required"})
			}
			id, err := strconv.ParseInt(idParam, 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project id"})
			}

			p, err := projects.Get(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, services.ErrProjectNotFound) {
					return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
			}

			if !p.HasPermission(claims.UserID, role) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": role + " role required"})
			}

			c.Set(projectContextKey, p)
			return next(c)
		}
	}
}

// GetProject returns the project attached by RequireProjectRole, or nil.
func GetProject(c echo.Context) *model.Project {
	v := c.Get(projectContextKey)
	if v == nil {
		return nil
	}
	if p, ok := v.(*model.Project); ok {
		return p
	}
	return nil
}
