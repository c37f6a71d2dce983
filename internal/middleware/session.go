package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/tmarkov/restaurant-manager/internal/identity"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "rm_session"

// SessionAuth returns an Echo middleware that resolves the session cookie
// into an authenticated identity and stores it in the request context under
// "user_id", "role" and "employee_id". Requests without a live session are
// redirected to the login form with the original path as returnUrl.
func SessionAuth(p *identity.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return redirectToLogin(c)
			}
			id, err := p.Authenticate(c.Request().Context(), cookie.Value)
			if err != nil {
				return redirectToLogin(c)
			}
			c.Set("user_id", id.UserID)
			c.Set("role", id.Role)
			c.Set("employee_id", id.EmployeeID)
			return next(c)
		}
	}
}

func redirectToLogin(c echo.Context) error {
	dest := c.Request().URL.RequestURI()
	return c.Redirect(http.StatusFound, "/account/login?returnUrl="+url.QueryEscape(dest))
}

// CurrentUserID returns the authenticated user id stored by SessionAuth,
// or zero when the request is anonymous.
func CurrentUserID(c echo.Context) uint64 {
	if v, ok := c.Get("user_id").(uint64); ok {
		return v
	}
	return 0
}

// CurrentEmployeeID returns the linked employee id stored by SessionAuth,
// or zero when the request is anonymous.
func CurrentEmployeeID(c echo.Context) uint64 {
	if v, ok := c.Get("employee_id").(uint64); ok {
		return v
	}
	return 0
}
