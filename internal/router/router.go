// Package router defines how HTTP routes are registered for the application.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/tmarkov/restaurant-manager/internal/handler"
	"github.com/tmarkov/restaurant-manager/internal/identity"
	"github.com/tmarkov/restaurant-manager/internal/middleware"
	"github.com/tmarkov/restaurant-manager/internal/model"
)

// RegisterRoutes registers the public routes: landing page and health check.
func RegisterRoutes(e *echo.Echo, restaurants *handler.RestaurantHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/restaurants", restaurants.Index)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/restaurants")
	})
}

// RegisterAccount registers the account workflow under /account. Every
// state-changing endpoint runs behind the anti-forgery middleware (token
// carried in the "csrf" form field) and the credential submits additionally
// behind the rate limiter. The personal-account page requires a live
// session and an allowed role.
func RegisterAccount(e *echo.Echo, a *handler.AccountHandler, p *handler.ProfileHandler, provider *identity.Provider, ratelimit echo.MiddlewareFunc) {
	acct := e.Group("/account", echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup: "form:csrf",
	}))

	acct.GET("/login", a.LoginForm)
	acct.POST("/login", a.Login, ratelimit)
	acct.GET("/register", a.RegisterForm)
	acct.POST("/register", a.Register, ratelimit)
	acct.GET("/logout", a.Logout)

	acct.GET("/lockout", handler.Lockout)
	acct.GET("/reset-password-confirmation", handler.ResetPasswordConfirmation)
	acct.GET("/access-denied", handler.AccessDenied)

	acct.GET("/profile", p.Profile,
		middleware.SessionAuth(provider),
		middleware.RequireRole(model.RoleCustomer, model.RoleAdmin))
}
