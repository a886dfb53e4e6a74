// Package session keeps identity of logged in user and its persisted token.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Authenticator --filename authenticator.go
//go:generate mockery --name TokenStorage --filename tokenstorage.go

// Authenticator exchanges credentials for token and creates accounts.
type Authenticator interface {
	Login(ctx context.Context, credentials models.Credentials) (string, error)
	Register(ctx context.Context, registration models.Registration) error
}

// TokenStorage persists single token.
type TokenStorage interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Clock provides times.
type Clock interface {
	// Now returns current time.
	Now() time.Time
}

type systemClock struct{}

// Now returns current UTC time.
func (c systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Option is custom configuration of Store.
type Option func(s *Store)

// Store owns session state. Token is written to storage only after successful login
// and decoding, and removed on logout or when it can't be decoded.
type Store struct {
	auth     Authenticator
	storage  TokenStorage
	logger   *zerolog.Logger
	clock    Clock
	validate *validator.Validate

	mu      sync.RWMutex
	session *models.Session
	loading bool
}

// NewStore returns new Store. It is loading until Init is called.
func NewStore(auth Authenticator, storage TokenStorage, logger *zerolog.Logger, ops ...Option) *Store {
	s := &Store{
		auth:     auth,
		storage:  storage,
		logger:   logger,
		clock:    systemClock{},
		validate: NewValidator(),
		loading:  true,
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// Init restores session from persisted token. Token which can't be decoded is discarded
// and the store stays unauthenticated.
func (s *Store) Init() error {
	defer s.setLoading(false)

	token, err := s.storage.Load()
	if err != nil {
		return fmt.Errorf("can't restore session: %w", err)
	}
	if token == "" {
		return nil
	}

	session, err := decodeToken(token, s.clock.Now())
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("persisted token discarded")

		if err := s.storage.Clear(); err != nil {
			return fmt.Errorf("can't discard invalid token: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	return nil
}

// Login exchanges credentials for token, decodes it and only then persists it.
// Failed login leaves storage and current session untouched.
func (s *Store) Login(ctx context.Context, email, password string) (*models.Session, error) {
	credentials := models.Credentials{Email: email, Password: password}
	if err := validate(s.validate, credentials); err != nil {
		return nil, err
	}

	token, err := s.auth.Login(ctx, credentials)
	if err != nil {
		return nil, fmt.Errorf("can't log in: %w", err)
	}

	session, err := decodeToken(token, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("can't log in: %w", err)
	}

	if err := s.storage.Save(token); err != nil {
		return nil, fmt.Errorf("can't persist token: %w", err)
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.logger.Info().
		Str("email", session.User.Email).
		Msg("logged in")

	return copySession(session), nil
}

// Logout removes persisted token and identity.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		return fmt.Errorf("can't remove token: %w", err)
	}

	return nil
}

// Register validates registration form and creates new account.
// It doesn't log the new user in.
func (s *Store) Register(ctx context.Context, registration models.Registration) error {
	if err := validate(s.validate, registration); err != nil {
		return err
	}

	if err := s.auth.Register(ctx, registration); err != nil {
		return fmt.Errorf("can't register: %w", err)
	}

	return nil
}

// Token returns current token or empty string when nobody is logged in.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// Session returns copy of current session or nil when nobody is logged in.
func (s *Store) Session() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.session)
}

// Loading reports whether persisted session is still being restored.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

func copySession(session *models.Session) *models.Session {
	if session == nil {
		return nil
	}
	c := *session
	return &c
}

// WithClock sets Store's custom Clock.
func WithClock(c Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}
