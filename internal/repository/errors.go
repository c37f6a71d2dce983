// Package repository defines sentinel error values shared across
// repositories so handlers can branch on failure cause with errors.Is
// instead of inspecting driver error strings.
package repository

import "errors"

// ErrUsernameExists is returned when a user insert or pre-check collides
// with an existing username (case-insensitive).
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when a user insert or pre-check collides with
// an existing email (case-insensitive).
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")
