package auth

import "errors"

// UserRepository defines operations for account storage and retrieval.
// The single-process dig server ships with an in-memory implementation;
// the interface keeps the door open for a database-backed one without
// touching the handlers.
type UserRepository interface {
	// GetUserByUsername returns a user by username (case-insensitive).
	// Returns (nil, ErrUserNotFound) when absent.
	GetUserByUsername(username string) (*User, error)

	// CreateUser stores a new user. The caller passes a bcrypt-hashed
	// password. Implementations must enforce unique usernames and return
	// ErrUserExists on conflict.
	CreateUser(username string, passwordHash string, isAdmin bool) (*User, error)

	// GetUserByID returns a user by ID, or (nil, ErrUserNotFound).
	GetUserByID(id uint64) (*User, error)

	// ValidateCredentials checks username and password, returning the user
	// when both match.
	ValidateCredentials(username, password string) (*User, error)
}

// Domain-level errors returned by the repository.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)
