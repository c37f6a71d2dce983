package model

import "time"

// Role names stored in users.role. New registrations always receive
// RoleCustomer; RoleAdmin accounts are provisioned out of band.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents an application account as stored in the `users` table.
// Credentials and lockout counters live here; profile data lives on the
// linked Employee record (one-to-one, created together at registration).
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name (case-insensitive uniqueness).
//  Email        – unique email address (case-insensitive uniqueness).
//  PasswordHash – bcrypt hashed password.
//  Role         – role name (customer or admin).
//  EmployeeID   – foreign key into the employees table.
//  FailedLogins – consecutive failed password checks.
//  LockoutUntil – account is locked while this is in the future (nullable).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64     // users.id
	Username     string     // users.username
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	Role         string     // users.role
	EmployeeID   uint64     // users.employee_id
	FailedLogins uint32     // users.failed_logins
	LockoutUntil *time.Time // users.lockout_until (nullable)
	IsActive     bool       // users.is_active
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
}

// Session models a row in the `sessions` table. The raw session identifier
// handed to the browser is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the session.
//  TokenHash – SHA-256 hex digest of the session identifier.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the session was terminated (null while active).
//  CreatedAt – timestamp of creation.
type Session struct {
	ID        uint64     // sessions.id
	UserID    uint64     // sessions.user_id
	TokenHash string     // sessions.token_hash
	ExpiresAt time.Time  // sessions.expires_at
	RevokedAt *time.Time // sessions.revoked_at (nullable)
	CreatedAt time.Time  // sessions.created_at
}
