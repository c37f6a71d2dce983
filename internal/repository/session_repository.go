package repository

import (
	"context"
	"database/sql"
	"time"
)

// SessionRepo persists and validates server-side sessions (single
// 'token_hash' column holding a SHA-256 hex digest of the session id).
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

const (
	qInsertSession   = "INSERT INTO sessions (user_id, token_hash, expires_at) VALUES (?,?,?)"
	qSelectSession   = "SELECT user_id, expires_at, revoked_at FROM sessions WHERE token_hash=? LIMIT 1"
	qRevokeByHash    = "UPDATE sessions SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL"
	qRevokeAllOfUser = "UPDATE sessions SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL"
)

// Store inserts a session hash row.
func (r *SessionRepo) Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx, qInsertSession, userID, tokenHash, exp)
	return err
}

// Validate returns the owning userID if a non-revoked, non-expired session
// exists for the hash; ErrNotFound otherwise.
func (r *SessionRepo) Validate(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		userID    uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, qSelectSession, tokenHash).
		Scan(&userID, &expiresAt, &revokedAt)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	if revokedAt.Valid {
		return 0, ErrNotFound
	}
	if time.Now().UTC().After(expiresAt) {
		return 0, ErrNotFound
	}
	return userID, nil
}

// RevokeByHash marks a session as terminated. Revoking a hash that matches
// nothing is not an error; logout is idempotent.
func (r *SessionRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx, qRevokeByHash, tokenHash)
	return err
}

// RevokeAllForUser terminates every active session of the user.
func (r *SessionRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx, qRevokeAllOfUser, userID)
	return err
}
