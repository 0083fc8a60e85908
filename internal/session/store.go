package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/storefront-sync/pkg/logger"
)

// Session is the in-memory auth state. DisplayName is non-empty only while
// Token is non-empty.
type Session struct {
	Token       string
	DisplayName string
}

// Active reports whether a token is present.
func (s Session) Active() bool {
	return s.Token != ""
}

// Store owns the auth token and display name for the process. Every other
// store reads the current token through Token() at call time, so login and
// logout are visible to calls issued afterwards without reconstruction.
type Store struct {
	storage Storage
	log     *logger.Logger

	mu          sync.RWMutex
	current     Session
	subscribers []func(Session)
}

// NewStore builds a session store over the given storage backend.
func NewStore(storage Storage, log *logger.Logger) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("session storage is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Store{storage: storage, log: log}, nil
}

// Restore loads persisted credentials into memory. It never touches the
// network and is idempotent: the in-memory session always mirrors whatever
// storage holds at the time of the call.
func (s *Store) Restore(ctx context.Context) error {
	creds, err := s.storage.Load(ctx)
	if err != nil {
		// An unreadable session database means starting signed out, not
		// failing the application.
		s.log.Warn(ctx, "session restore failed, starting signed out")
		creds = Credentials{}
	}
	if creds.Token == "" {
		creds.DisplayName = ""
	}

	s.setAndNotify(Session{Token: creds.Token, DisplayName: creds.DisplayName})
	return nil
}

// Login records the authenticated session in memory and persists it. A
// storage write failure is logged and swallowed: the session stays valid for
// this process, it just will not survive a restart.
func (s *Store) Login(ctx context.Context, token, displayName string) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}

	s.setAndNotify(Session{Token: token, DisplayName: displayName})

	if err := s.storage.Save(ctx, Credentials{Token: token, DisplayName: displayName}); err != nil {
		s.log.Warn(ctx, "persisting session failed; session will not survive a restart")
	}
	return nil
}

// Logout clears the session from memory and storage. The collaborator is not
// called; server-side invalidation is its own concern.
func (s *Store) Logout(ctx context.Context) {
	s.setAndNotify(Session{})
	if err := s.storage.Clear(ctx); err != nil {
		s.log.Warn(ctx, "clearing persisted session failed")
	}
}

// HandleAuthFailure clears the session after the collaborator rejected the
// token. Subscribers observe the cleared session; the view layer treats that
// as the redirect-to-login signal.
func (s *Store) HandleAuthFailure(ctx context.Context) {
	s.mu.RLock()
	active := s.current.Active()
	s.mu.RUnlock()
	if !active {
		return
	}
	s.log.Warn(ctx, "collaborator rejected auth token, clearing session")
	s.Logout(ctx)
}

// Token returns the current token, empty when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Current returns a copy of the in-memory session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// OnChange registers fn to run after every session transition. Registration
// is not synchronized with in-flight notifications and is expected at
// composition time.
func (s *Store) OnChange(fn func(Session)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) setAndNotify(next Session) {
	s.mu.Lock()
	s.current = next
	subscribers := make([]func(Session), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(next)
	}
}
