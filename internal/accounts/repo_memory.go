package accounts

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps accounts in an ordered in-process slice. Identifiers
// grow monotonically and are never reused, even after deletions. All methods
// are safe for concurrent use; in particular Exists and Insert observe a
// consistent view, so two racing registrations cannot both pass the
// duplicate check.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts []Account
	nextID   int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.accounts {
		if r.accounts[i].Email == email {
			a := r.accounts[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			a := r.accounts[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

// Exists reports whether any account already uses the username or the email.
func (r *MemoryRepository) Exists(_ context.Context, username, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.accounts {
		if r.accounts[i].Username == username || r.accounts[i].Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) Insert(_ context.Context, account *Account) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := *account
	// This store does not track registration time.
	a.RegisteredAt = time.Time{}
	a.ID = r.nextID
	r.nextID++
	r.accounts = append(r.accounts, a)
	return a.ID, nil
}

func (r *MemoryRepository) UpdateCredentials(_ context.Context, id int64, username, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			r.accounts[i].Username = username
			r.accounts[i].PasswordHash = passwordHash
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListAll returns all accounts in insertion order.
func (r *MemoryRepository) ListAll(_ context.Context) ([]Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Account, len(r.accounts))
	copy(out, r.accounts)
	return out, nil
}

var _ Repository = (*MemoryRepository)(nil)
