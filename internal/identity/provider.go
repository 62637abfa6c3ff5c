// Package identity resolves the signed-in principal whose profile the
// synchronized store binds read cursors and unread counts to.
package identity

import "errors"

// ErrSignedOut is returned when no principal is signed in
var ErrSignedOut = errors.New("no user signed in")

// Provider exposes the current principal and auth state transitions.
// Listeners receive the user id on sign-in and "" on sign-out.
type Provider interface {
	CurrentUserID() (string, error)
	OnChange(fn func(userID string))
	SignOut()
}

// Static is a fixed-principal provider for tests and single-user setups
type Static struct {
	userID string
}

// NewStatic creates a provider bound to one user id
func NewStatic(userID string) *Static {
	return &Static{userID: userID}
}

func (s *Static) CurrentUserID() (string, error) {
	if s.userID == "" {
		return "", ErrSignedOut
	}
	return s.userID, nil
}

func (s *Static) OnChange(fn func(userID string)) {}

func (s *Static) SignOut() {
	s.userID = ""
}
