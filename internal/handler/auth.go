package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tmarkov/restaurant-manager/internal/identity"
	"github.com/tmarkov/restaurant-manager/internal/middleware"
	"github.com/tmarkov/restaurant-manager/internal/model"
	"github.com/tmarkov/restaurant-manager/internal/queue"
	"github.com/tmarkov/restaurant-manager/internal/repository"
)

// externalCookie is the marker cookie an external login provider may have
// left behind. It is cleared before the local login form is shown so a
// stale half-finished external sign-in cannot leak into a new attempt.
const externalCookie = "rm_external"

// RegistrationNotifier publishes a registration event for downstream
// consumers. A nil notifier disables publishing.
type RegistrationNotifier interface {
	AccountRegistered(ctx context.Context, event queue.AccountRegisteredEvent) error
}

// AccountHandler bundles dependencies for the login, registration and
// logout endpoints.
type AccountHandler struct {
	Users    *repository.UserRepo
	Identity *identity.Provider
	Notifier RegistrationNotifier
}

func NewAccountHandler(users *repository.UserRepo, provider *identity.Provider, notifier RegistrationNotifier) *AccountHandler {
	return &AccountHandler{Users: users, Identity: provider, Notifier: notifier}
}

// ----- view data -----

type loginPage struct {
	CSRF        string
	ReturnURL   string
	Login       string
	RememberMe  bool
	Errors      []string
	FieldErrors map[string]string
}

type registerPage struct {
	CSRF        string
	Username    string
	Email       string
	FirstName   string
	Surname     string
	Errors      []string
	FieldErrors map[string]string
}

// LoginForm handles GET /account/login. Any lingering external-provider
// session marker is invalidated before the empty form is rendered; the
// intended post-login destination rides along as returnUrl.
func (h *AccountHandler) LoginForm(c echo.Context) error {
	clearCookie(c, externalCookie)
	return c.Render(http.StatusOK, "login.html", loginPage{
		CSRF:      csrfToken(c),
		ReturnURL: c.QueryParam("returnUrl"),
	})
}

// Login handles POST /account/login. Outcomes: field errors re-render the
// form; an unknown username or wrong password re-renders with a generic
// message that does not reveal which part was wrong; a locked account
// redirects to the lockout notice; success establishes a session and
// redirects to the validated destination.
func (h *AccountHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", loginPage{
			CSRF:      csrfToken(c),
			ReturnURL: c.QueryParam("returnUrl"),
			Errors:    []string{"invalid form submission"},
		})
	}
	page := loginPage{
		CSRF:        csrfToken(c),
		ReturnURL:   c.QueryParam("returnUrl"),
		Login:       form.Login,
		RememberMe:  form.RememberMe,
		FieldErrors: map[string]string{},
	}

	if errs := form.validate(); len(errs) > 0 {
		page.FieldErrors = errs
		return c.Render(http.StatusOK, "login.html", page)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, form.Login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same wording regardless of which part was wrong.
			page.Errors = []string{"check username and password"}
			return c.Render(http.StatusOK, "login.html", page)
		}
		return renderFailure(c)
	}

	// Lockout tracking stays off for this check; locked accounts are still
	// detected and redirected. See the provider for the enforcing mode.
	outcome, err := h.Identity.SignInWithPassword(ctx, u, form.Password, false)
	if err != nil {
		return renderFailure(c)
	}
	switch outcome {
	case identity.LockedOut:
		return c.Redirect(http.StatusFound, "/account/lockout")
	case identity.Success:
		tok, err := h.Identity.IssueSession(ctx, u, form.RememberMe)
		if err != nil {
			return renderFailure(c)
		}
		setSessionCookie(c, tok, form.RememberMe)
		return c.Redirect(http.StatusFound, safeReturnURL(c.QueryParam("returnUrl")))
	default:
		page.Errors = []string{"invalid login or password"}
		return c.Render(http.StatusOK, "login.html", page)
	}
}

// RegisterForm handles GET /account/register.
func (h *AccountHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", registerPage{CSRF: csrfToken(c)})
}

// Register handles POST /account/register. Shape validation runs first;
// only then are the two uniqueness checks performed, both always, so a
// duplicate username and a duplicate email surface together. Creation
// inserts the employee profile and user in one transaction with the
// default customer role; a provider-rejected password surfaces each policy
// message verbatim.
func (h *AccountHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", registerPage{
			CSRF:   csrfToken(c),
			Errors: []string{"invalid form submission"},
		})
	}
	form.normalize()
	page := registerPage{
		CSRF:        csrfToken(c),
		Username:    form.Username,
		Email:       form.Email,
		FirstName:   form.FirstName,
		Surname:     form.Surname,
		FieldErrors: map[string]string{},
	}

	if errs := form.validate(); len(errs) > 0 {
		page.FieldErrors = errs
		return c.Render(http.StatusOK, "register.html", page)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Both checks run unconditionally so both errors can accumulate.
	usernameTaken, err := h.Users.UsernameExists(ctx, form.Username)
	if err != nil {
		return renderFailure(c)
	}
	emailTaken, err := h.Users.EmailExists(ctx, form.Email)
	if err != nil {
		return renderFailure(c)
	}
	if usernameTaken {
		page.FieldErrors["username"] = "username is already taken"
	}
	if emailTaken {
		page.FieldErrors["email"] = "email is already registered"
	}
	if len(page.FieldErrors) > 0 {
		return c.Render(http.StatusOK, "register.html", page)
	}

	if msgs := identity.ValidatePolicy(form.Password); len(msgs) > 0 {
		page.Errors = msgs
		return c.Render(http.StatusOK, "register.html", page)
	}
	hash, err := identity.HashPassword(form.Password, h.Identity.Cfg.BcryptCost)
	if err != nil {
		return renderFailure(c)
	}

	emp := model.Employee{
		FirstName: form.FirstName,
		Surname:   form.Surname,
		Email:     form.Email,
	}
	u := model.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	}
	if err := h.Users.Create(ctx, &emp, &u); err != nil {
		// The unique indexes are authoritative: a duplicate that raced past
		// the pre-checks comes back as the same field errors.
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			page.FieldErrors["username"] = "username is already taken"
		case errors.Is(err, repository.ErrEmailExists):
			page.FieldErrors["email"] = "email is already registered"
		default:
			return renderFailure(c)
		}
		return c.Render(http.StatusOK, "register.html", page)
	}

	if h.Notifier != nil {
		evt := queue.AccountRegisteredEvent{
			UserID:       u.ID,
			EmployeeID:   emp.ID,
			Username:     u.Username,
			Email:        u.Email,
			FirstName:    emp.FirstName,
			Surname:      emp.Surname,
			Role:         u.Role,
			RegisteredAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Notifier.AccountRegistered(ctx, evt); err != nil {
			log.Printf("register: publish event failed: %v", err)
		}
	}
	return c.Redirect(http.StatusFound, defaultLandingPage)
}

// Logout handles GET /account/logout. The current session, if any, is
// terminated server-side and the cookie expired; logging out without a
// session succeeds the same way.
func (h *AccountHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := h.Identity.Terminate(ctx, cookie.Value); err != nil {
			return renderFailure(c)
		}
	}
	clearCookie(c, middleware.SessionCookie)
	return c.Redirect(http.StatusFound, defaultLandingPage)
}

// ----- cookie helpers -----

func setSessionCookie(c echo.Context, tok identity.SessionToken, remember bool) {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		// Persistent cookie; otherwise it dies with the browser session
		// while the server-side row still bounds its lifetime.
		cookie.Expires = tok.Exp
	}
	c.SetCookie(cookie)
}

func clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// renderFailure is the generic page for unexpected infrastructure faults.
func renderFailure(c echo.Context) error {
	return c.Render(http.StatusInternalServerError, "error.html", nil)
}
