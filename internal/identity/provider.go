package identity

import (
	"context"
	"errors"
	"time"

	"github.com/tmarkov/restaurant-manager/internal/config"
	"github.com/tmarkov/restaurant-manager/internal/model"
	"github.com/tmarkov/restaurant-manager/internal/repository"
)

// Outcome is the result of a credential check.
type Outcome int

const (
	// Failed means the password did not match (or the account is inactive).
	Failed Outcome = iota
	// Success means the password matched and any failure counter was reset.
	Success
	// LockedOut means the account is locked and the password was not judged.
	LockedOut
)

// Identity is the resolved principal attached to an authenticated request.
type Identity struct {
	UserID     uint64
	EmployeeID uint64
	Role       string
}

// ErrNoSession is returned by Authenticate when the cookie value does not
// map to a live server-side session.
var ErrNoSession = errors.New("no active session")

// Provider bundles the stores and configuration behind credential checks
// and session lifecycle. It is the only component that reads password
// hashes or writes session rows.
type Provider struct {
	Users    *repository.UserRepo
	Sessions *repository.SessionRepo
	Cfg      config.Config
}

func NewProvider(cfg config.Config, users *repository.UserRepo, sessions *repository.SessionRepo) *Provider {
	return &Provider{Users: users, Sessions: sessions, Cfg: cfg}
}

// SignInWithPassword checks the password of an already-loaded user.
//
// A user whose lockout deadline lies in the future is reported LockedOut
// without the password being judged. On a match the failure counter is
// reset. On a mismatch the counter is only advanced when lockoutOnFailure
// is true; reaching the configured attempt limit sets the lockout deadline
// and reports LockedOut immediately. The login handler currently passes
// lockoutOnFailure=false, but both modes are supported.
func (p *Provider) SignInWithPassword(ctx context.Context, u model.User, password string, lockoutOnFailure bool) (Outcome, error) {
	now := time.Now().UTC()
	if u.LockoutUntil != nil && now.Before(*u.LockoutUntil) {
		return LockedOut, nil
	}
	if u.IsActive && VerifyPassword(u.PasswordHash, password) {
		if err := p.Users.ResetFailedLogins(ctx, u.ID); err != nil {
			return Failed, err
		}
		return Success, nil
	}
	if !lockoutOnFailure {
		return Failed, nil
	}
	failed := u.FailedLogins + 1
	if int(failed) >= p.Cfg.LockoutAttempts {
		until := now.Add(time.Duration(p.Cfg.LockoutMinutes) * time.Minute)
		if err := p.Users.SetLockoutState(ctx, u.ID, failed, &until); err != nil {
			return Failed, err
		}
		return LockedOut, nil
	}
	if err := p.Users.SetLockoutState(ctx, u.ID, failed, nil); err != nil {
		return Failed, err
	}
	return Failed, nil
}

// IssueSession establishes a session for the user: a random session id is
// stored hashed with its expiry, and a signed token embedding that id is
// returned for the cookie. remember selects the long-lived TTL.
func (p *Provider) IssueSession(ctx context.Context, u model.User, remember bool) (SessionToken, error) {
	ttl := time.Duration(p.Cfg.SessionTTLMin) * time.Minute
	if remember {
		ttl = time.Duration(p.Cfg.RememberTTLDays) * 24 * time.Hour
	}
	tok, err := NewSessionToken(p.Cfg.SessionSecret, u.ID, u.EmployeeID, u.Role, ttl)
	if err != nil {
		return SessionToken{}, err
	}
	if err := p.Sessions.Store(ctx, u.ID, HashSessionID(tok.SID), tok.Exp); err != nil {
		return SessionToken{}, err
	}
	return tok, nil
}

// Authenticate resolves a session cookie value into an Identity. The token
// signature, expiry and the server-side session row must all be valid.
func (p *Provider) Authenticate(ctx context.Context, raw string) (Identity, error) {
	c, err := ParseSessionToken(p.Cfg.SessionSecret, raw)
	if err != nil {
		return Identity{}, ErrNoSession
	}
	if _, err := p.Sessions.Validate(ctx, HashSessionID(c.SID)); err != nil {
		return Identity{}, ErrNoSession
	}
	return Identity{UserID: c.UserID, EmployeeID: c.EmployeeID, Role: c.Role}, nil
}

// Terminate revokes the session behind a cookie value. An unparseable token
// or an already-terminated session is not an error; logout is idempotent.
func (p *Provider) Terminate(ctx context.Context, raw string) error {
	c, err := ParseSessionToken(p.Cfg.SessionSecret, raw)
	if err != nil {
		return nil
	}
	return p.Sessions.RevokeByHash(ctx, HashSessionID(c.SID))
}
