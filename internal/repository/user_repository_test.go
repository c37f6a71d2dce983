package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarkov/restaurant-manager/internal/model"
)

func newMockDB(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepo(db), mock
}

func userColumns() []string {
	return []string{"id", "username", "email", "password_hash", "role", "employee_id",
		"failed_logins", "lockout_until", "is_active", "created_at", "updated_at"}
}

func TestGetByUsername(t *testing.T) {
	repo, mock := newMockDB(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(userColumns()).
		AddRow(1, "alice", "a@x.com", "hash", "customer", 9, 0, nil, true, now, now)
	mock.ExpectQuery(qUserByUsername).WithArgs("alice").WillReturnRows(rows)

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, uint64(9), u.EmployeeID)
	assert.Nil(t, u.LockoutUntil)
	assert.True(t, u.IsActive)
}

func TestGetByUsernameNotFound(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(qUserByUsername).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByUsernameScansLockout(t *testing.T) {
	repo, mock := newMockDB(t)
	now := time.Now().UTC()
	until := now.Add(10 * time.Minute)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(1, "alice", "a@x.com", "hash", "customer", 9, 3, until, true, now, now)
	mock.ExpectQuery(qUserByUsername).WithArgs("alice").WillReturnRows(rows)

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, u.LockoutUntil)
	assert.WithinDuration(t, until, *u.LockoutUntil, time.Second)
	assert.Equal(t, uint32(3), u.FailedLogins)
}

func TestExistsChecks(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(qUsernameExists).WithArgs("ALICE").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	taken, err := repo.UsernameExists(context.Background(), "ALICE")
	require.NoError(t, err)
	assert.True(t, taken)

	mock.ExpectQuery(qEmailExists).WithArgs("new@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	taken, err = repo.EmailExists(context.Background(), "new@x.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestCreateInsertsEmployeeAndUser(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(qInsertEmployee).
		WithArgs("Alice", "Smith", "", "", "", "a@x.com").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(qInsertUser).
		WithArgs("alice", "a@x.com", "hash", "customer", uint64(7)).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	emp := model.Employee{FirstName: "Alice", Surname: "Smith", Email: "a@x.com"}
	u := model.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash", Role: model.RoleCustomer}
	require.NoError(t, repo.Create(context.Background(), &emp, &u))

	assert.Equal(t, uint64(7), emp.ID)
	assert.Equal(t, uint64(3), u.ID)
	assert.Equal(t, uint64(7), u.EmployeeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMapsDuplicateKey(t *testing.T) {
	tests := []struct {
		name    string
		errText string
		want    error
	}{
		{
			name:    "duplicate username",
			errText: "Error 1062 (23000): Duplicate entry 'alice' for key 'users.uq_users_username'",
			want:    ErrUsernameExists,
		},
		{
			name:    "duplicate email",
			errText: "Error 1062 (23000): Duplicate entry 'a@x.com' for key 'users.uq_users_email'",
			want:    ErrEmailExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockDB(t)

			mock.ExpectBegin()
			mock.ExpectExec(qInsertEmployee).
				WithArgs("Alice", "Smith", "", "", "", "a@x.com").
				WillReturnResult(sqlmock.NewResult(7, 1))
			mock.ExpectExec(qInsertUser).
				WithArgs("alice", "a@x.com", "hash", "customer", uint64(7)).
				WillReturnError(errors.New(tt.errText))
			mock.ExpectRollback()

			emp := model.Employee{FirstName: "Alice", Surname: "Smith", Email: "a@x.com"}
			u := model.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash", Role: model.RoleCustomer}
			err := repo.Create(context.Background(), &emp, &u)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateUnrelatedErrorPassesThrough(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(qInsertEmployee).
		WithArgs("Alice", "Smith", "", "", "", "a@x.com").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	emp := model.Employee{FirstName: "Alice", Surname: "Smith", Email: "a@x.com"}
	u := model.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash", Role: model.RoleCustomer}
	err := repo.Create(context.Background(), &emp, &u)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUsernameExists)
	assert.NotErrorIs(t, err, ErrEmailExists)
}

func TestSetLockoutState(t *testing.T) {
	repo, mock := newMockDB(t)
	until := time.Now().UTC().Add(15 * time.Minute)

	mock.ExpectExec(qSetLockout).WithArgs(uint32(3), until, uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetLockoutState(context.Background(), 1, 3, &until))

	mock.ExpectExec(qResetFailed).WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.ResetFailedLogins(context.Background(), 1))

	assert.NoError(t, mock.ExpectationsWereMet())
}
