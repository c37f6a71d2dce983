package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Static notice pages: no inputs, no state. They exist so every redirect
// target in the account workflow lands on a real page.

// Lockout handles GET /account/lockout.
func Lockout(c echo.Context) error {
	return c.Render(http.StatusOK, "lockout.html", nil)
}

// ResetPasswordConfirmation handles GET /account/reset-password-confirmation.
func ResetPasswordConfirmation(c echo.Context) error {
	return c.Render(http.StatusOK, "reset_password_confirmation.html", nil)
}

// AccessDenied handles GET /account/access-denied.
func AccessDenied(c echo.Context) error {
	return c.Render(http.StatusOK, "access_denied.html", nil)
}
