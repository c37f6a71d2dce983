package handler

import (
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"
)

// defaultLandingPage is where redirects go when no safe destination was
// supplied: the public restaurant index.
const defaultLandingPage = "/restaurants"

// loginForm carries the POST /account/login fields.
type loginForm struct {
	Login      string `form:"login"`
	Password   string `form:"password"`
	RememberMe bool   `form:"rememberMe"`
}

// validate checks basic shape only; credential verification happens later.
func (f *loginForm) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Login) == "" {
		errs["login"] = "username is required"
	}
	if f.Password == "" {
		errs["password"] = "password is required"
	}
	return errs
}

// registerForm carries the POST /account/register fields.
type registerForm struct {
	Username  string `form:"username"`
	Email     string `form:"email"`
	Password  string `form:"password"`
	FirstName string `form:"firstName"`
	Surname   string `form:"surname"`
}

// normalize trims whitespace from every submitted field except the password.
func (f *registerForm) normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.Surname = strings.TrimSpace(f.Surname)
}

// validate checks required fields and email shape. Uniqueness is checked
// separately so its field errors can accumulate with these.
func (f *registerForm) validate() map[string]string {
	errs := map[string]string{}
	if f.Username == "" {
		errs["username"] = "username is required"
	}
	if f.Email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		errs["email"] = "email is not a valid address"
	}
	if f.Password == "" {
		errs["password"] = "password is required"
	}
	if f.FirstName == "" {
		errs["firstName"] = "first name is required"
	}
	if f.Surname == "" {
		errs["surname"] = "surname is required"
	}
	return errs
}

// safeReturnURL returns dest when it is a same-origin relative path, and
// the default landing page otherwise. Protocol-relative ("//evil") and
// backslash ("/\evil") forms are rejected along with absolute URLs.
func safeReturnURL(dest string) string {
	if dest == "" || !strings.HasPrefix(dest, "/") {
		return defaultLandingPage
	}
	if strings.HasPrefix(dest, "//") || strings.HasPrefix(dest, "/\\") {
		return defaultLandingPage
	}
	return dest
}

// csrfToken pulls the anti-forgery token that the CSRF middleware stored in
// the context, so forms can echo it back. Empty when the middleware is not
// installed (tests).
func csrfToken(c echo.Context) string {
	if v, ok := c.Get("csrf").(string); ok {
		return v
	}
	return ""
}
