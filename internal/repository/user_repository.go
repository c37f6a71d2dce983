package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/tmarkov/restaurant-manager/internal/model"
)

// UserRepo provides access to user accounts and their linked employee
// profiles. Account creation inserts both rows in one transaction so a
// user never exists without its profile.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const (
	qUserByUsername = "SELECT id,username,email,password_hash,role,employee_id,failed_logins,lockout_until,is_active,created_at,updated_at FROM users WHERE BINARY username=? LIMIT 1"
	qUserByID       = "SELECT id,username,email,password_hash,role,employee_id,failed_logins,lockout_until,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1"
	qUsernameExists = "SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username)=LOWER(?))"
	qEmailExists    = "SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email)=LOWER(?))"
	qInsertEmployee = "INSERT INTO employees (first_name, surname, address, city, phone, email) VALUES (?,?,?,?,?,?)"
	qInsertUser     = "INSERT INTO users (username, email, password_hash, role, employee_id) VALUES (?,?,?,?,?)"
	qSetLockout     = "UPDATE users SET failed_logins=?, lockout_until=? WHERE id=?"
	qResetFailed    = "UPDATE users SET failed_logins=0, lockout_until=NULL WHERE id=?"
)

// GetByUsername fetches a user by exact, case-sensitive username match.
// Returns ErrNotFound when no such user exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, qUserByUsername, username))
}

// GetByID fetches a user by id. Returns ErrNotFound when no such user exists.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx, qUserByID, id))
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var (
		u       model.User
		lockout sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.EmployeeID, &u.FailedLogins, &lockout, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	if lockout.Valid {
		t := lockout.Time
		u.LockoutUntil = &t
	}
	return u, nil
}

// UsernameExists reports whether any user already holds the username,
// compared case-insensitively.
func (r *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, qUsernameExists, username).Scan(&exists)
	return exists, err
}

// EmailExists reports whether any user already holds the email, compared
// case-insensitively.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, qEmailExists, email).Scan(&exists)
	return exists, err
}

// Create inserts the employee profile and its user account in a single
// transaction and populates both generated IDs. The unique indexes on
// username and email are the authoritative uniqueness check: a duplicate
// that races past the Exists pre-checks surfaces here as ErrUsernameExists
// or ErrEmailExists and nothing is persisted.
func (r *UserRepo) Create(ctx context.Context, emp *model.Employee, u *model.User) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, qInsertEmployee,
		emp.FirstName, emp.Surname, emp.Address, emp.City, emp.Phone, emp.Email)
	if err != nil {
		return err
	}
	empID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	emp.ID = uint64(empID)

	res, err = tx.ExecContext(ctx, qInsertUser,
		u.Username, u.Email, u.PasswordHash, u.Role, emp.ID)
	if err != nil {
		return mapDuplicate(err)
	}
	uid, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(uid)
	u.EmployeeID = emp.ID

	return tx.Commit()
}

// mapDuplicate translates a MySQL duplicate-key failure (error 1062) on one
// of the users unique indexes into the matching sentinel error.
func mapDuplicate(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	if strings.Contains(msg, "uq_users_email") {
		return ErrEmailExists
	}
	return ErrUsernameExists
}

// SetLockoutState records a failed-login count and an optional lockout
// deadline for the user.
func (r *UserRepo) SetLockoutState(ctx context.Context, id uint64, failed uint32, until *time.Time) error {
	_, err := r.DB.ExecContext(ctx, qSetLockout, failed, until, id)
	return err
}

// ResetFailedLogins clears the failed-login counter and any lockout deadline.
func (r *UserRepo) ResetFailedLogins(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, qResetFailed, id)
	return err
}
