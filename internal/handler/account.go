package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tmarkov/restaurant-manager/internal/middleware"
	"github.com/tmarkov/restaurant-manager/internal/repository"
)

// ProfileHandler serves the read-only personal-account page. It assumes
// SessionAuth has already resolved the identity into the context.
type ProfileHandler struct {
	Employees *repository.EmployeeRepo
}

func NewProfileHandler(employees *repository.EmployeeRepo) *ProfileHandler {
	return &ProfileHandler{Employees: employees}
}

// Profile handles GET /account/profile: one employee record with its
// comments (joined to restaurants) and reservations (joined to tables and
// their restaurants), projected into the account page. No mutation.
func (h *ProfileHandler) Profile(c echo.Context) error {
	employeeID := middleware.CurrentEmployeeID(c)
	if employeeID == 0 {
		return c.Redirect(http.StatusFound, "/account/login")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	profile, err := h.Employees.GetProfile(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Render(http.StatusNotFound, "error.html", nil)
		}
		return renderFailure(c)
	}
	return c.Render(http.StatusOK, "account.html", profile)
}
