package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veloria/accountd/internal/events"
)

// Service orchestrates validation, lookups, hashing and store mutations for
// every account operation. Each observable outcome is reported to the event
// recorder; recording is a side effect and never changes the result seen by
// the caller.
type Service struct {
	repo   Repository
	hasher PasswordHasher
	events events.Recorder
}

func NewService(repo Repository, hasher PasswordHasher, recorder events.Recorder) *Service {
	return &Service{repo: repo, hasher: hasher, events: recorder}
}

// Register creates a new account. It fails with ErrDuplicate when the email
// (or username, depending on the store) is already taken. The created record
// is not returned.
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	exists, err := s.repo.Exists(ctx, username, email)
	if err != nil {
		s.events.Record(nil, events.RegistrationError,
			fmt.Sprintf("duplicate check for %s failed: %v", email, err))
		return fmt.Errorf("accounts: register: %w", err)
	}
	if exists {
		s.events.Record(nil, events.FailedRegistrationAttempt,
			fmt.Sprintf("email %s or username already registered", email))
		return ErrDuplicate
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.events.Record(nil, events.RegistrationError,
			fmt.Sprintf("hashing password for %s failed: %v", email, err))
		return fmt.Errorf("accounts: register: %w", err)
	}

	account := &Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		RegisteredAt: time.Now().UTC(),
	}
	id, err := s.repo.Insert(ctx, account)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			s.events.Record(nil, events.FailedRegistrationAttempt,
				fmt.Sprintf("email %s already registered", email))
			return ErrDuplicate
		}
		s.events.Record(nil, events.RegistrationError,
			fmt.Sprintf("inserting account for %s failed: %v", email, err))
		return fmt.Errorf("accounts: register: %w", err)
	}

	s.events.Record(&id, events.Registration, fmt.Sprintf("account %s registered", email))
	return nil
}

// Login verifies email/password credentials and returns the account on
// success. The password hash is never part of the result exposed upstream.
func (s *Service) Login(ctx context.Context, email, password string) (*Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.events.Record(nil, events.FailedLoginAttempt,
				fmt.Sprintf("login attempt for unknown email %s", email))
			return nil, ErrNotFound
		}
		s.events.Record(nil, events.LoginError,
			fmt.Sprintf("login lookup for %s failed: %v", email, err))
		return nil, fmt.Errorf("accounts: login: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.events.Record(&account.ID, events.FailedLoginAttempt,
			fmt.Sprintf("wrong password for %s", email))
		return nil, ErrInvalidCredentials
	}

	s.events.Record(&account.ID, events.Login, fmt.Sprintf("user %s logged in", email))
	return account, nil
}

// UpdateProfile overwrites the username and, when newPassword is non-empty,
// replaces the stored password hash. The old password must verify first.
// The username is applied unconditionally, even when unchanged or empty.
func (s *Service) UpdateProfile(ctx context.Context, id int64, username, oldPassword, newPassword string) error {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.events.Record(nil, events.FailedProfileUpdate,
				fmt.Sprintf("profile update for unknown id %d", id))
			return ErrNotFound
		}
		s.events.Record(&id, events.ProfileUpdateError,
			fmt.Sprintf("profile lookup for id %d failed: %v", id, err))
		return fmt.Errorf("accounts: update profile: %w", err)
	}

	if !s.hasher.Verify(oldPassword, account.PasswordHash) {
		s.events.Record(&id, events.FailedProfileUpdate,
			fmt.Sprintf("wrong old password for id %d", id))
		return ErrInvalidCredentials
	}

	hash := account.PasswordHash
	if newPassword != "" {
		if hash, err = s.hasher.Hash(newPassword); err != nil {
			s.events.Record(&id, events.ProfileUpdateError,
				fmt.Sprintf("hashing new password for id %d failed: %v", id, err))
			return fmt.Errorf("accounts: update profile: %w", err)
		}
	}

	if err := s.repo.UpdateCredentials(ctx, id, username, hash); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.events.Record(nil, events.FailedProfileUpdate,
				fmt.Sprintf("profile update for unknown id %d", id))
			return ErrNotFound
		}
		s.events.Record(&id, events.ProfileUpdateError,
			fmt.Sprintf("updating profile for id %d failed: %v", id, err))
		return fmt.Errorf("accounts: update profile: %w", err)
	}

	s.events.Record(&id, events.ProfileUpdate, fmt.Sprintf("profile for id %d updated", id))
	return nil
}

// DeleteAccount removes the account with the given id.
func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.events.Record(nil, events.FailedAccountDeletion,
				fmt.Sprintf("deletion of unknown id %d", id))
			return ErrNotFound
		}
		s.events.Record(&id, events.AccountDeletionError,
			fmt.Sprintf("deleting account %d failed: %v", id, err))
		return fmt.Errorf("accounts: delete account: %w", err)
	}

	s.events.Record(&id, events.AccountDeletion, fmt.Sprintf("account %d deleted", id))
	return nil
}

// ListAccounts returns all accounts in store order with password hashes
// stripped.
func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	accounts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("accounts: list: %w", err)
	}
	for i := range accounts {
		accounts[i].PasswordHash = ""
	}
	return accounts, nil
}
