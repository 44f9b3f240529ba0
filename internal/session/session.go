// Package session owns the authenticated identity and its credential. It is
// the credential's single writer: the in-memory session, the persisted
// token, and the token attached to outgoing requests change together under
// one lock, so no window exists where one reflects logged-in and another
// does not.
package session

import (
	"context"
	"strings"
	"sync"

	"jobdesk-cli/internal/api"
	"jobdesk-cli/internal/model"
	"jobdesk-cli/internal/store"
)

type Store struct {
	client *api.Client

	mu      sync.Mutex
	current *model.Session
	epoch   uint64
}

func NewStore(client *api.Client) *Store {
	return &Store{client: client}
}

// Current returns the active session, or nil when anonymous.
func (s *Store) Current() *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Epoch increases on every session change (login, logout, restore). Async
// work captures it at dispatch time and drops completions from an older
// epoch instead of clobbering newer state.
func (s *Store) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Restore establishes a session from the persisted credential, if any.
// No credential is not an error: it yields an anonymous session. An invalid
// or expired credential is discarded and likewise yields anonymous.
func (s *Store) Restore(ctx context.Context) (*model.Session, error) {
	token, err := store.LoadCredential()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}

	s.client.SetToken(token)
	user, err := s.client.Me(ctx)
	if err != nil {
		if api.IsAuthRequired(err) {
			// Expired/invalid token: discard it everywhere.
			s.establish(nil, "")
			_ = store.ClearCredential()
			return nil, nil
		}
		// Network/server trouble: keep the credential for a later retry,
		// but do not pretend to be logged in.
		s.client.SetToken("")
		return nil, err
	}

	sess := &model.Session{Identity: &user, Token: token}
	s.establish(sess, token)
	return sess, nil
}

// Login exchanges credentials for a session and persists the token.
func (s *Store) Login(ctx context.Context, email, password string) (*model.Session, error) {
	token, user, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(token, user)
}

// Register creates an account and establishes the returned session.
func (s *Store) Register(ctx context.Context, name, email, password string) (*model.Session, error) {
	token, user, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(token, user)
}

func (s *Store) adopt(token string, user model.User) (*model.Session, error) {
	if err := store.SaveCredential(token); err != nil {
		return nil, err
	}
	sess := &model.Session{Identity: &user, Token: token}
	s.establish(sess, token)
	return sess, nil
}

// Logout clears the persisted credential and empties the session. It is
// local and synchronous; no network call is needed for it to succeed.
func (s *Store) Logout() error {
	s.establish(nil, "")
	return store.ClearCredential()
}

func (s *Store) establish(sess *model.Session, token string) {
	s.mu.Lock()
	s.current = sess
	s.epoch++
	// Swap the outgoing-request token inside the same critical section.
	s.client.SetToken(token)
	s.mu.Unlock()
}
