package gallery

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samvad-hq/gallery-client/internal/logger"
)

// TokenStore persists the bearer credential between runs.
type TokenStore interface {
	Credential(ctx context.Context) (string, error)
	SaveCredential(token string) error
	ClearCredential() error
}

// Session tracks the logged-in state backed by a TokenStore.
type Session struct {
	auth  *AuthService
	store TokenStore
	log   logger.Logger

	mu            sync.RWMutex
	authenticated bool
	user          string
}

// NewSession returns a logged-out session.
func NewSession(auth *AuthService, store TokenStore, log logger.Logger) *Session {
	return &Session{auth: auth, store: store, log: logger.Ensure(log)}
}

// Login authenticates and stores the token. Any failure leaves the session
// logged out with nothing stored.
func (s *Session) Login(ctx context.Context, name, password string) error {
	res, err := s.auth.Login(ctx, name, password)
	if err != nil {
		s.reset()
		return err
	}
	if err := s.store.SaveCredential(res.Token); err != nil {
		s.reset()
		return fmt.Errorf("save credential: %w", err)
	}

	s.mu.Lock()
	s.authenticated = true
	s.user = name
	s.mu.Unlock()
	s.log.InfoObj("user logged in", "session_login", map[string]any{"user": name})
	return nil
}

// Register creates an account. It does not log in.
func (s *Session) Register(ctx context.Context, name, password string) (string, error) {
	res, err := s.auth.Register(ctx, name, password)
	if err != nil {
		return "", err
	}
	s.log.InfoObj("user registered", "session_register", map[string]any{"user": name})
	return res.Message, nil
}

// Logout clears the stored token and the in-memory state.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.authenticated = false
	s.user = ""
	s.mu.Unlock()

	if err := s.store.ClearCredential(); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	s.log.InfoObj("user logged out", "session_logout", nil)
	return nil
}

// CheckStatus restores the session from the stored token. An invalid token
// or a failed verification logs out; the verification error is returned.
func (s *Session) CheckStatus(ctx context.Context) (bool, error) {
	token, err := s.store.Credential(ctx)
	if err != nil {
		return false, fmt.Errorf("read credential: %w", err)
	}
	if token == "" {
		if s.Authenticated() {
			return false, s.Logout()
		}
		return false, nil
	}

	valid, verr := s.auth.VerifyToken(ctx)
	if verr != nil || !valid {
		s.log.WarnObj("stored credential rejected", "session_verify", map[string]any{"error": errString(verr)})
		if lerr := s.Logout(); lerr != nil {
			return false, errors.Join(verr, lerr)
		}
		return false, verr
	}

	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()
	return true, nil
}

// Authenticated reports whether the session holds a verified credential.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// User returns the name used to log in, if known.
func (s *Session) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) reset() {
	s.mu.Lock()
	s.authenticated = false
	s.user = ""
	s.mu.Unlock()
	if err := s.store.ClearCredential(); err != nil {
		s.log.WarnObj("clear credential failed", "session_reset", map[string]any{"error": err.Error()})
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
