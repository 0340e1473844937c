package main

import (
	"errors"
	"net/http"

	"ProjectHubAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type requestResetRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func requestResetHandler(resetSvc *services.PasswordResetService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(requestResetRequest)
		if err := c.Bind(req); err != nil || req.Email == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
		}

		err := resetSvc.Request(c.Request().Context(), req.Email)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown email"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}

		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
}

func resetPasswordHandler(resetSvc *services.PasswordResetService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(resetPasswordRequest)
		if err := c.Bind(req); err != nil || req.Token == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
		}

		err := resetSvc.Reset(c.Request().Context(), req.Token, req.NewPassword)
		switch {
		case err == nil:
		case errors.Is(err, services.ErrInvalidToken):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired token"})
		case errors.Is(err, services.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}

		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
}
