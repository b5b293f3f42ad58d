// Package session owns the process-wide identity: the bearer credential,
// its decoded identity, and the two mirrored storage locations it lives in.
// It is written only by login and logout; every guarded view reads it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"ceria/internal/api"
	"ceria/internal/token"
)

var ErrNotAuthenticated = errors.New("no authenticated identity")

// AuthAPI is the slice of the backend client the session needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	LoginChild(ctx context.Context, childID, pin string) (*api.LoginResult, error)
}

// Session holds the resolved identity and keeps the durable store and the
// cookie mirror in sync. Last write wins; login and logout are the only
// writers.
type Session struct {
	auth   AuthAPI
	store  CredentialStore
	mirror CredentialStore
	logger *slog.Logger

	mu         sync.RWMutex
	credential string
	identity   *token.Identity
	resolved   bool
}

// New creates a session over the two credential locations. mirror may be
// nil when no cookie layer exists (tests, CLI one-shots).
func New(auth AuthAPI, store, mirror CredentialStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{auth: auth, store: store, mirror: mirror, logger: logger}
}

// Resume initializes the session from whichever location still holds a
// credential, preferring the durable store. A credential that no longer
// decodes is cleared from both locations; the session resolves to anonymous
// rather than failing.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.resolved = true }()

	credential, err := s.store.Credential()
	if err != nil {
		return fmt.Errorf("resume session: %w", err)
	}
	if credential == "" && s.mirror != nil {
		if credential, err = s.mirror.Credential(); err != nil {
			return fmt.Errorf("resume session: %w", err)
		}
	}
	if credential == "" {
		return nil
	}

	identity, err := token.Decode(credential)
	if err != nil {
		s.logger.Warn("discarding undecodable credential", "err", err)
		s.clearLocked()
		return nil
	}

	return s.adoptLocked(credential, identity)
}

// Login authenticates a parent (or super-admin) and adopts the minted
// credential. Returns the role the backend reported, which decides the
// post-login home screen.
func (s *Session) Login(ctx context.Context, email, password string) (token.Role, error) {
	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.adopt(result)
}

// LoginChild runs the standalone child PIN login, minting a child-role
// credential and switching the session to it.
func (s *Session) LoginChild(ctx context.Context, childID, pin string) (token.Role, error) {
	result, err := s.auth.LoginChild(ctx, childID, pin)
	if err != nil {
		return "", err
	}
	return s.adopt(result)
}

func (s *Session) adopt(result *api.LoginResult) (token.Role, error) {
	identity, err := token.Decode(result.Token)
	if err != nil {
		return "", fmt.Errorf("backend issued undecodable credential: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolved = true
	if err := s.adoptLocked(result.Token, identity); err != nil {
		return "", err
	}
	return token.Role(result.Role), nil
}

// adoptLocked mirrors the credential into both locations and records the
// identity.
func (s *Session) adoptLocked(credential string, identity *token.Identity) error {
	if err := s.store.SetCredential(credential); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	if s.mirror != nil {
		if err := s.mirror.SetCredential(credential); err != nil {
			return fmt.Errorf("mirror credential: %w", err)
		}
	}
	s.credential = credential
	s.identity = identity
	return nil
}

// Logout clears both credential locations and drops the identity. The
// caller lands on the public landing page.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.resolved = true
}

func (s *Session) clearLocked() {
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("failed to clear credential store", "err", err)
	}
	if s.mirror != nil {
		if err := s.mirror.Clear(); err != nil {
			s.logger.Warn("failed to clear credential mirror", "err", err)
		}
	}
	s.credential = ""
	s.identity = nil
}

// Identity returns the resolved identity, or nil when anonymous.
func (s *Session) Identity() *token.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Resolved reports whether initialization has finished; guards stay in
// their loading state until it has.
func (s *Session) Resolved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved
}

// Credential exposes the active bearer credential for the HTTP client.
func (s *Session) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}
