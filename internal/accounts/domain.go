// Package accounts implements the user-account service: registration, login,
// profile update, deletion and listing, backed by an injectable store.
package accounts

import (
	"context"
	"errors"
	"time"
)

// Account represents a registered user.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	RegisteredAt time.Time
}

var (
	// ErrDuplicate indicates the email (or username, in-memory store) is taken.
	ErrDuplicate = errors.New("account already exists")
	// ErrNotFound indicates no account matches the given id or email.
	ErrNotFound = errors.New("account not found")
	// ErrInvalidCredentials indicates a password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository defines persistence operations for accounts. Both stores
// implement the same contract; only the duplicate rule differs (the
// in-memory store checks username and email, postgres checks email only).
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id int64) (*Account, error)
	Exists(ctx context.Context, username, email string) (bool, error)
	Insert(ctx context.Context, account *Account) (int64, error)
	UpdateCredentials(ctx context.Context, id int64, username, passwordHash string) error
	DeleteByID(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]Account, error)
}
