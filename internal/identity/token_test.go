package identity

import (
	"errors"
	"testing"
	"time"
)

func TestTokenProviderRoundTrip(t *testing.T) {
	p := NewTokenProvider("test-secret")

	if _, err := p.CurrentUserID(); !errors.Is(err, ErrSignedOut) {
		t.Fatalf("CurrentUserID() before sign-in error = %v, want ErrSignedOut", err)
	}

	token, err := p.IssueToken("user-1", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	var changes []string
	p.OnChange(func(userID string) { changes = append(changes, userID) })

	if err := p.SignIn(token); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	userID, err := p.CurrentUserID()
	if err != nil {
		t.Fatalf("CurrentUserID() error = %v", err)
	}
	if userID != "user-1" {
		t.Errorf("CurrentUserID() = %q, want user-1", userID)
	}

	p.SignOut()
	if _, err := p.CurrentUserID(); !errors.Is(err, ErrSignedOut) {
		t.Errorf("CurrentUserID() after sign-out error = %v, want ErrSignedOut", err)
	}

	if len(changes) != 2 || changes[0] != "user-1" || changes[1] != "" {
		t.Errorf("auth change notifications = %v, want [user-1 \"\"]", changes)
	}
}

func TestTokenProviderRejectsBadTokens(t *testing.T) {
	p := NewTokenProvider("test-secret")

	other := NewTokenProvider("other-secret")
	forged, err := other.IssueToken("user-1", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if err := p.SignIn(forged); err == nil {
		t.Error("SignIn() accepted token signed with wrong secret")
	}

	expired, err := p.IssueToken("user-1", -time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if err := p.SignIn(expired); err == nil {
		t.Error("SignIn() accepted expired token")
	}

	if err := p.SignIn("not-a-token"); err == nil {
		t.Error("SignIn() accepted malformed token")
	}
}

func TestStaticProvider(t *testing.T) {
	p := NewStatic("user-9")
	userID, err := p.CurrentUserID()
	if err != nil {
		t.Fatalf("CurrentUserID() error = %v", err)
	}
	if userID != "user-9" {
		t.Errorf("CurrentUserID() = %q, want user-9", userID)
	}

	p.SignOut()
	if _, err := p.CurrentUserID(); !errors.Is(err, ErrSignedOut) {
		t.Errorf("CurrentUserID() after sign-out error = %v, want ErrSignedOut", err)
	}
}
