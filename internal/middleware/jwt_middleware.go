package middleware

import (
	"net/http"
	"strings"

	"ProjectHubAPI/internal/token"

	"github.com/labstack/echo/v4"
)

const claimsContextKey = "auth_claims"

// RequireAuth returns the access guard: it validates the bearer token and
// attaches the decoded identity to the request context. Public routes simply
// don't mount it; the route table in cmd/app is the authority on which
// routes are public.
func RequireAuth(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
			}
			parts := strings.Fields(auth)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization header"})
			}
			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// GetClaims returns the identity attached by RequireAuth, or nil.
func GetClaims(c echo.Context) *token.Claims {
	v := c.Get(claimsContextKey)
	if v == nil {
		return nil
	}
	if cl, ok := v.(*token.Claims); ok {
		return cl
	}
	return nil
}
