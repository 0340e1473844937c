package main

import (
	"errors"
	"net/http"

	"ProjectHubAPI/internal/middleware"
	"ProjectHubAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	IDToken string `json:"id_token"`
}

func registerHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		u, err := authSvc.Register(c.Request().Context(), req.Email, req.Password, req.DisplayName)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrEmailTaken):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case errors.Is(err, services.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"id":    u.ID,
			"email": u.Email,
		})
	}
}

func loginHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		tok, user, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token": tok,
			"user":  user,
		})
	}
}

func googleLoginHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(googleLoginRequest)
		if err := c.Bind(req); err != nil || req.IDToken == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id_token required"})
		}

		tok, user, err := authSvc.LoginWithGoogle(c.Request().Context(), req.IDToken)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token": tok,
			"user":  user,
		})
	}
}

// meHandler returns the authenticated user's identity from the token.
func meHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"id":    claims.UserID,
			"email": claims.Email,
			"exp":   claims.ExpiresAt,
		})
	}
}

func registerAuthRoutes(
	g *echo.Group,
	authSvc *services.AuthService,
	resetSvc *services.PasswordResetService,
	verifySvc *services.EmailVerificationService,
	guard echo.MiddlewareFunc,
) {
	auth := g.Group("/auth")

	// public
	auth.POST("/register", registerHandler(authSvc))
	auth.POST("/login", loginHandler(authSvc))
	auth.POST("/google", googleLoginHandler(authSvc))
	auth.POST("/resend-verification", resendVerificationHandler(verifySvc))
	auth.GET("/verify-email", verifyEmailHandler(verifySvc))
	auth.POST("/request-reset", requestResetHandler(resetSvc))
	auth.POST("/reset-password", resetPasswordHandler(resetSvc))

	// authenticated
	protected := auth.Group("")
	protected.Use(guard)
	protected.GET("/me", meHandler())
}
