package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRepo(t *testing.T) (*SessionRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSessionRepo(db), mock
}

func TestSessionStoreAndValidate(t *testing.T) {
	repo, mock := newSessionRepo(t)
	exp := time.Now().UTC().Add(time.Hour)

	mock.ExpectExec(qInsertSession).WithArgs(uint64(1), "hash", exp).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Store(context.Background(), 1, "hash", exp))

	rows := sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
		AddRow(1, exp, nil)
	mock.ExpectQuery(qSelectSession).WithArgs("hash").WillReturnRows(rows)

	userID, err := repo.Validate(context.Background(), "hash")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), userID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionValidateRejectsRevoked(t *testing.T) {
	repo, mock := newSessionRepo(t)

	rows := sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
		AddRow(1, time.Now().UTC().Add(time.Hour), time.Now().UTC())
	mock.ExpectQuery(qSelectSession).WithArgs("hash").WillReturnRows(rows)

	_, err := repo.Validate(context.Background(), "hash")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionValidateRejectsExpired(t *testing.T) {
	repo, mock := newSessionRepo(t)

	rows := sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
		AddRow(1, time.Now().UTC().Add(-time.Minute), nil)
	mock.ExpectQuery(qSelectSession).WithArgs("hash").WillReturnRows(rows)

	_, err := repo.Validate(context.Background(), "hash")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionValidateRejectsUnknown(t *testing.T) {
	repo, mock := newSessionRepo(t)

	mock.ExpectQuery(qSelectSession).WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}))

	_, err := repo.Validate(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRevoke(t *testing.T) {
	repo, mock := newSessionRepo(t)

	// Revoking a hash that matches nothing still succeeds.
	mock.ExpectExec(qRevokeByHash).WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.RevokeByHash(context.Background(), "missing"))

	mock.ExpectExec(qRevokeAllOfUser).WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, repo.RevokeAllForUser(context.Background(), 1))

	assert.NoError(t, mock.ExpectationsWereMet())
}
