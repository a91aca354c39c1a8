package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/customerconnect/internal/client/models"
	"github.com/dmitrijs2005/customerconnect/internal/common"
	"github.com/dmitrijs2005/customerconnect/internal/logging"
)

// AuthAPI is the backend surface the manager authenticates against.
// *api.Client implements it.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthPayload, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthPayload, error)
	GoogleLogin(ctx context.Context, req models.GoogleTokenRequest) (*models.AuthPayload, error)
	GoogleCallback(ctx context.Context, req models.GoogleCodeRequest) (*models.AuthPayload, error)
}

// Store is the persisted key/value storage. SetMany and DeleteMany must be
// atomic. *storage.SQLiteRepository implements it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMany(ctx context.Context, values map[string][]byte) error
	DeleteMany(ctx context.Context, keys ...string) error
}

type State int

const (
	StateUninitialized State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "uninitialized"
	}
}

var errIncompletePayload = errors.New("auth response lacks user id or token")

// Manager is safe for concurrent use. Concurrent authentications are not
// fenced: the last one to finish wins.
type Manager struct {
	api    AuthAPI
	store  Store
	logger logging.Logger

	mu          sync.RWMutex
	current     *Session
	initialized bool
	observers   []func()
}

func NewManager(api AuthAPI, store Store, logger logging.Logger) *Manager {
	return &Manager{api: api, store: store, logger: logger.With("component", "session")}
}

// Initialize rehydrates the session from storage. It never fails: a
// missing key, a read error or an unreadable record all leave the manager
// anonymous with both keys wiped. No network call is made.
func (m *Manager) Initialize(ctx context.Context) {
	s, err := m.load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "discarding stored session", "error", err)
	}
	if s == nil {
		m.wipe(ctx)
	}

	m.mu.Lock()
	m.current = s
	m.initialized = true
	m.mu.Unlock()

	if s != nil {
		m.logger.Info(ctx, "session restored", "user_id", s.UserID, "role", s.Role)
	}
}

func (m *Manager) load(ctx context.Context) (*Session, error) {
	token, err := m.store.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return nil, err
	}
	record, err := m.store.Get(ctx, common.UserStorageKey)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 || len(record) == 0 {
		return nil, nil
	}
	return decodeRecord(record, string(token))
}

func decodeRecord(record []byte, token string) (*Session, error) {
	var s Session
	if err := json.Unmarshal(record, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptRecord, err)
	}
	s.Token = token
	if !s.complete() {
		return nil, fmt.Errorf("%w: missing user id", errCorruptRecord)
	}
	if s.Role != RoleAdmin {
		s.Role = RoleUser
	}
	if s.AvatarURL == "" {
		s.AvatarURL = Placeholder(s.DisplayName)
	}
	return &s, nil
}

func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	req := models.LoginRequest{Email: email, Password: password}
	if err := validateInput(req); err != nil {
		return nil, err
	}
	return m.authenticate(ctx, "login", msgLoginFailed, func() (*models.AuthPayload, error) {
		return m.api.Login(ctx, req)
	})
}

func (m *Manager) Register(ctx context.Context, email, password, name string) (*Session, error) {
	req := models.RegisterRequest{Email: email, Password: password, Name: name}
	if err := validateInput(req); err != nil {
		return nil, err
	}
	return m.authenticate(ctx, "register", msgRegisterFailed, func() (*models.AuthPayload, error) {
		return m.api.Register(ctx, req)
	})
}

// LoginWithGoogle exchanges an access token obtained by the implicit flow.
func (m *Manager) LoginWithGoogle(ctx context.Context, accessToken string) (*Session, error) {
	req := models.GoogleTokenRequest{AccessToken: accessToken}
	if err := validateInput(req); err != nil {
		return nil, err
	}
	return m.authenticate(ctx, "google", msgGoogleFailed, func() (*models.AuthPayload, error) {
		return m.api.GoogleLogin(ctx, req)
	})
}

// CompleteGoogleCallback exchanges the authorization code from the OAuth
// redirect.
func (m *Manager) CompleteGoogleCallback(ctx context.Context, code string) (*Session, error) {
	req := models.GoogleCodeRequest{Code: code}
	if err := validateInput(req); err != nil {
		return nil, err
	}
	return m.authenticate(ctx, "google_callback", msgGoogleFailed, func() (*models.AuthPayload, error) {
		return m.api.GoogleCallback(ctx, req)
	})
}

// authenticate is shared by every flow: call the backend, map, persist,
// then publish in memory. State is untouched on any failure.
func (m *Manager) authenticate(ctx context.Context, op, fallback string, call func() (*models.AuthPayload, error)) (*Session, error) {
	p, err := call()
	if err != nil {
		m.logger.Info(ctx, "authentication rejected", "op", op, "error", err)
		return nil, authError(op, fallback, err)
	}

	s := fromPayload(*p)
	if !s.complete() {
		return nil, &AuthenticationError{Op: op, Message: fallback, Err: errIncompletePayload}
	}

	if err := m.persist(ctx, s); err != nil {
		m.logger.Error(ctx, "persisting session failed", "op", op, "error", err)
		return nil, fmt.Errorf("%s: persist session: %w", op, err)
	}

	m.mu.Lock()
	m.current = s
	m.initialized = true
	m.mu.Unlock()

	m.logger.Info(ctx, "authenticated", "op", op, "user_id", s.UserID, "role", s.Role)
	cp := *s
	return &cp, nil
}

func (m *Manager) persist(ctx context.Context, s *Session) error {
	record, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return m.store.SetMany(ctx, map[string][]byte{
		common.TokenStorageKey: []byte(s.Token),
		common.UserStorageKey:  record,
	})
}

func (m *Manager) wipe(ctx context.Context) error {
	if err := m.store.DeleteMany(ctx, common.TokenStorageKey, common.UserStorageKey); err != nil {
		m.logger.Error(ctx, "clearing stored session failed", "error", err)
		return err
	}
	return nil
}

// Logout forgets the session in memory and in storage. Calling it without a
// session is a no-op. The returned error only reports a storage failure;
// the in-memory session is cleared regardless.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	had := m.current != nil
	m.current = nil
	m.mu.Unlock()

	if had {
		m.logger.Info(ctx, "logged out")
	}
	if err := m.wipe(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Expire is the forced logout applied after a 401. Observers registered
// with OnExpired run only if a session was actually current.
func (m *Manager) Expire(ctx context.Context) {
	m.mu.Lock()
	had := m.current != nil
	m.current = nil
	observers := append([]func(){}, m.observers...)
	m.mu.Unlock()

	_ = m.wipe(ctx)

	if !had {
		return
	}
	m.logger.Warn(ctx, "session expired")
	for _, fn := range observers {
		fn()
	}
}

// OnExpired registers fn to run after a forced logout.
func (m *Manager) OnExpired(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// Current returns a copy of the current session, or nil.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	cp := *m.current
	return &cp
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case m.current != nil:
		return StateAuthenticated
	case m.initialized:
		return StateAnonymous
	default:
		return StateUninitialized
	}
}

// BearerToken is the token attached to authenticated API requests.
func (m *Manager) BearerToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}
