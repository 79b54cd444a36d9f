// Package events records account lifecycle events into an append-only audit
// log. Recording is best-effort: it never blocks and never fails the caller.
package events

import "time"

// Kind identifies an account lifecycle event.
type Kind string

const (
	Registration              Kind = "Registration"
	RegistrationError         Kind = "RegistrationError"
	FailedRegistrationAttempt Kind = "FailedRegistrationAttempt"
	Login                     Kind = "Login"
	FailedLoginAttempt        Kind = "FailedLoginAttempt"
	LoginError                Kind = "LoginError"
	ProfileUpdate             Kind = "ProfileUpdate"
	FailedProfileUpdate       Kind = "FailedProfileUpdate"
	ProfileUpdateError        Kind = "ProfileUpdateError"
	AccountDeletion           Kind = "AccountDeletion"
	FailedAccountDeletion     Kind = "FailedAccountDeletion"
	AccountDeletionError      Kind = "AccountDeletionError"
)

// Event is a single audit record. AccountID is nil when the event precedes
// account resolution, e.g. a login attempt against an unknown email.
type Event struct {
	AccountID   *int64
	Kind        Kind
	Description string
	At          time.Time
}

// Recorder accepts lifecycle events. Implementations must not block the
// caller and must swallow their own failures.
type Recorder interface {
	Record(accountID *int64, kind Kind, description string)
}

// NopRecorder discards all events. Used with the in-memory store, which has
// no audit table.
type NopRecorder struct{}

func (NopRecorder) Record(*int64, Kind, string) {}

var _ Recorder = NopRecorder{}
