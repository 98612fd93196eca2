// Package session holds the client's single source of truth for "is there a
// valid session, and as whom". It owns all transitions of that state; every
// other component is a read-only observer.
package session

import "github.com/itswijay/feedhub/internal/client/models"

// Status is the client's belief about the current session.
type Status int

const (
	// StatusUnknown means validity has not been determined yet. It is the
	// initial state, held only while the first identity check is in flight,
	// and is never re-entered.
	StatusUnknown Status = iota

	// StatusAnonymous means the client has confirmed there is no valid session.
	StatusAnonymous

	// StatusAuthenticated means the backend confirmed the session and
	// identified the user.
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "invalid"
	}
}

// Snapshot is an immutable view of the session state. User is non-nil if and
// only if Status is StatusAuthenticated.
type Snapshot struct {
	Status Status
	User   *models.User
}

// IsAuthenticated reports whether the session is confirmed valid.
func (s Snapshot) IsAuthenticated() bool { return s.Status == StatusAuthenticated }

// IsLoading reports whether the first identity check is still outstanding.
func (s Snapshot) IsLoading() bool { return s.Status == StatusUnknown }
