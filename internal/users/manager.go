// Package users keeps CRM user list in sync with the API and push updates.
package users

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MichalMitros/crm-console/internal/api"
	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/MichalMitros/crm-console/internal/realtime"
	"github.com/MichalMitros/crm-console/internal/session"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Client --filename client.go
//go:generate mockery --name Subscriber --filename subscriber.go

// LoadErrorMessage is shown when users can't be loaded and the API sent no message.
const LoadErrorMessage = "Failed to load users"

// Client calls users API.
type Client interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, registration models.Registration) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
	UpdateUserStatus(ctx context.Context, id string, active bool) error
	UpdateUserRole(ctx context.Context, id string, role models.Role) error
}

// Subscriber registers push event handlers.
type Subscriber interface {
	Subscribe(event string, handler realtime.Handler) (func(), error)
}

// State is snapshot of users list.
type State struct {
	Users   []models.User `json:"users"`
	Loading bool          `json:"loading"`
	Error   string        `json:"error,omitempty"`
}

// Manager holds users list. Status and role changes are sent to the API,
// the list is updated when the server pushes userUpdated.
type Manager struct {
	client     Client
	subscriber Subscriber
	logger     *zerolog.Logger
	validate   *validator.Validate

	mu          sync.RWMutex
	users       []models.User
	loading     bool
	errMsg      string
	unsubscribe func()
}

// NewManager returns new Manager.
func NewManager(client Client, subscriber Subscriber, logger *zerolog.Logger) *Manager {
	return &Manager{
		client:     client,
		subscriber: subscriber,
		logger:     logger,
		validate:   session.NewValidator(),
		users:      []models.User{},
		loading:    true,
	}
}

// Start subscribes to user updates and loads users.
func (m *Manager) Start(ctx context.Context) error {
	unsubscribe, err := m.subscriber.Subscribe(realtime.EventUserUpdated, m.applyUpdate)
	if err != nil {
		return fmt.Errorf("can't subscribe to user updates: %w", err)
	}

	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()

	return m.Reload(ctx)
}

// Reload replaces users list with the one from the API. On failure previous list is kept.
func (m *Manager) Reload(ctx context.Context) error {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	users, err := m.client.ListUsers(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.loading = false
	if err != nil {
		m.errMsg = api.Message(err, LoadErrorMessage)
		return fmt.Errorf("can't load users: %w", err)
	}

	m.users = users
	m.errMsg = ""
	return nil
}

// ToggleStatus asks the API to activate inactive user or deactivate active one.
func (m *Manager) ToggleStatus(ctx context.Context, id string) error {
	user, ok := m.find(id)
	if !ok {
		return fmt.Errorf("can't toggle status of %s: %w", id, ErrUserNotFound)
	}

	if err := m.client.UpdateUserStatus(ctx, id, !user.Profile.IsActive); err != nil {
		return fmt.Errorf("can't toggle status of %s: %w", id, err)
	}

	return nil
}

// ChangeRole asks the API to change user's role.
func (m *Manager) ChangeRole(ctx context.Context, id string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("can't change role to %q: %w", role, ErrInvalidRole)
	}

	if _, ok := m.find(id); !ok {
		return fmt.Errorf("can't change role of %s: %w", id, ErrUserNotFound)
	}

	if err := m.client.UpdateUserRole(ctx, id, role); err != nil {
		return fmt.Errorf("can't change role of %s: %w", id, err)
	}

	return nil
}

// Create validates registration form and creates user as logged in administrator.
// Created user is added to the list unless a push update brought it first.
func (m *Manager) Create(ctx context.Context, registration models.Registration) (*models.User, error) {
	if err := session.ValidateRegistration(m.validate, registration); err != nil {
		return nil, fmt.Errorf("can't create user: %w", err)
	}

	user, err := m.client.CreateUser(ctx, registration)
	if err != nil {
		return nil, fmt.Errorf("can't create user: %w", err)
	}

	m.mu.Lock()
	if !lo.ContainsBy(m.users, func(u models.User) bool { return u.ID == user.ID }) {
		m.users = append(m.users, *user)
	}
	m.mu.Unlock()

	return user, nil
}

// Profile returns profile of logged in user.
func (m *Manager) Profile(ctx context.Context) (*models.User, error) {
	user, err := m.client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load profile: %w", err)
	}

	return user, nil
}

// State returns snapshot of users list.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := lo.Map(m.users, func(u models.User, _ int) models.User {
		return u.Clone()
	})

	return State{
		Users:   users,
		Loading: m.loading,
		Error:   m.errMsg,
	}
}

// Close releases push subscription.
func (m *Manager) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (m *Manager) find(id string) (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return lo.Find(m.users, func(u models.User) bool {
		return u.ID == id
	})
}

// applyUpdate replaces user with the pushed one. Users not on the list are ignored.
func (m *Manager) applyUpdate(_ context.Context, payload []byte) error {
	var updated models.User
	if err := json.Unmarshal(payload, &updated); err != nil {
		return fmt.Errorf("can't decode user update: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = lo.Map(m.users, func(u models.User, _ int) models.User {
		if u.ID == updated.ID {
			return updated
		}
		return u
	})

	m.logger.Debug().
		Str("userId", updated.ID).
		Msg("user updated")

	return nil
}
