package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeReturnURL(t *testing.T) {
	tests := []struct {
		name string
		dest string
		want string
	}{
		{"empty", "", defaultLandingPage},
		{"relative path", "/orders", "/orders"},
		{"relative with query", "/orders?page=2", "/orders?page=2"},
		{"absolute http", "http://evil.example/x", defaultLandingPage},
		{"absolute https", "https://evil.example/x", defaultLandingPage},
		{"protocol relative", "//evil.example/x", defaultLandingPage},
		{"backslash trick", "/\\evil.example", defaultLandingPage},
		{"no leading slash", "orders", defaultLandingPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeReturnURL(tt.dest))
		})
	}
}

func TestLoginFormValidate(t *testing.T) {
	f := loginForm{}
	errs := f.validate()
	assert.Contains(t, errs, "login")
	assert.Contains(t, errs, "password")

	f = loginForm{Login: "alice", Password: "pw"}
	assert.Empty(t, f.validate())

	f = loginForm{Login: "   ", Password: "pw"}
	assert.Contains(t, f.validate(), "login")
}

func TestRegisterFormValidate(t *testing.T) {
	f := registerForm{}
	errs := f.validate()
	for _, field := range []string{"username", "email", "password", "firstName", "surname"} {
		assert.Contains(t, errs, field)
	}

	f = registerForm{Username: "alice", Email: "not-an-email", Password: "pw", FirstName: "Alice", Surname: "Smith"}
	errs = f.validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs, "email")

	f.Email = "a@x.com"
	assert.Empty(t, f.validate())
}

func TestRegisterFormNormalize(t *testing.T) {
	f := registerForm{Username: " alice ", Email: " a@x.com ", Password: " pw ", FirstName: " Alice ", Surname: " Smith "}
	f.normalize()
	assert.Equal(t, "alice", f.Username)
	assert.Equal(t, "a@x.com", f.Email)
	assert.Equal(t, "Alice", f.FirstName)
	assert.Equal(t, "Smith", f.Surname)
	assert.Equal(t, " pw ", f.Password) // passwords are taken verbatim
}
