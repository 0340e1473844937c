package main

import (
	"errors"
	"net/http"

	"ProjectHubAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type resendVerificationRequest struct {
	Email string `json:"email"`
}

func resendVerificationHandler(verifySvc *services.EmailVerificationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(resendVerificationRequest)
		if err := c.Bind(req); err != nil || req.Email == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
		}

		err := verifySvc.Resend(c.Request().Context(), req.Email)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown email"})
		case errors.Is(err, services.ErrAlreadyVerified):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already verified"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}

		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
}

func verifyEmailHandler(verifySvc *services.EmailVerificationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		tok := c.QueryParam("token")
		if tok == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
		}

		email, err := verifySvc.Verify(c.Request().Context(), tok)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrInvalidToken):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired token"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}

		return c.JSON(http.StatusOK, echo.Map{"ok": true, "email": email})
	}
}
