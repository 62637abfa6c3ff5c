package identity

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenProvider derives the current principal from a signed session
// token. SignIn validates the token and notifies listeners; SignOut
// clears the session and notifies with an empty id.
type TokenProvider struct {
	secret []byte

	mu        sync.Mutex
	userID    string
	listeners []func(userID string)
}

// NewTokenProvider creates a provider validating tokens with secret
func NewTokenProvider(secret string) *TokenProvider {
	return &TokenProvider{secret: []byte(secret)}
}

// SignIn validates a session token and installs its subject as the
// current principal
func (p *TokenProvider) SignIn(tokenString string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return fmt.Errorf("failed to validate session token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return fmt.Errorf("session token has no subject")
	}

	p.mu.Lock()
	p.userID = claims.Subject
	listeners := make([]func(string), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(claims.Subject)
	}
	return nil
}

func (p *TokenProvider) CurrentUserID() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.userID == "" {
		return "", ErrSignedOut
	}
	return p.userID, nil
}

func (p *TokenProvider) OnChange(fn func(userID string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

func (p *TokenProvider) SignOut() {
	p.mu.Lock()
	p.userID = ""
	listeners := make([]func(string), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn("")
	}
}

// IssueToken mints a session token for a user id, used at sign-in
func (p *TokenProvider) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}
