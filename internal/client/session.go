package client

import (
	"context"
	"sync"

	"github.com/periferia/periferia-social/internal/model"
)

// SessionState is the lifecycle of the session store: it starts in
// SessionLoading until Init resolves, then settles on authenticated or
// anonymous.
type SessionState int

const (
	SessionLoading SessionState = iota
	SessionAuthenticated
	SessionAnonymous
)

const loginErrorMessage = "No pudimos iniciar sesión. Revisa tus credenciales."

// SessionStore holds the auth session: token plus public profile, persisted
// across restarts. Login failures surface a single generic message without
// distinguishing whether the identifier or the password was wrong.
type SessionStore struct {
	mu      sync.Mutex
	api     *Client
	storage *SessionStorage

	state SessionState
	token string
	user  *model.UserResponse
	err   string
}

// NewSessionStore creates a SessionStore over the given API client and
// persisted storage.
func NewSessionStore(api *Client, storage *SessionStorage) *SessionStore {
	return &SessionStore{
		api:     api,
		storage: storage,
		state:   SessionLoading,
	}
}

// Init loads the persisted session and, when a token is present, validates
// it by re-fetching the profile. Any failure clears the session: the store
// always ends up in a ready state.
func (s *SessionStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	persisted, err := s.storage.Load()
	if err != nil {
		s.becomeAnonymousLocked()
		return err
	}

	if persisted.Token == "" {
		s.becomeAnonymousLocked()
		return nil
	}

	s.api.SetToken(persisted.Token)
	profile, err := s.api.Profile(ctx)
	if err != nil {
		s.storage.Clear()
		s.api.ClearToken()
		s.becomeAnonymousLocked()
		return nil
	}

	s.token = persisted.Token
	s.user = &profile
	s.state = SessionAuthenticated
	s.storage.Save(PersistedSession{Token: s.token, User: s.user})
	return nil
}

// Login authenticates and stores the resulting session. On failure the
// session is cleared and the error message recorded.
func (s *SessionStore) Login(ctx context.Context, identifier, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = ""

	resp, err := s.api.Login(ctx, identifier, password)
	if err != nil {
		s.err = errorMessage(err, loginErrorMessage)
		s.token = ""
		s.user = nil
		s.api.ClearToken()
		s.state = SessionAnonymous
		return err
	}

	s.token = resp.Token
	s.user = &resp.User
	s.api.SetToken(resp.Token)
	s.state = SessionAuthenticated
	s.storage.Save(PersistedSession{Token: s.token, User: s.user})
	return nil
}

// Logout clears the session, its persisted copy and any error.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.storage.Clear()
	s.api.ClearToken()
	s.token = ""
	s.user = nil
	s.err = ""
	s.state = SessionAnonymous
}

// ClearError discards the recorded error message.
func (s *SessionStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// State returns the current session state.
func (s *SessionStore) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the authenticated profile, or nil when anonymous.
func (s *SessionStore) User() *model.UserResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Error returns the recorded error message, empty when none.
func (s *SessionStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *SessionStore) becomeAnonymousLocked() {
	s.token = ""
	s.user = nil
	s.state = SessionAnonymous
}
