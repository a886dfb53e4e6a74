package session_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/MichalMitros/crm-console/internal/api"
	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/MichalMitros/crm-console/internal/platform/models/modelstesting"
	"github.com/MichalMitros/crm-console/internal/session"
	"github.com/MichalMitros/crm-console/internal/session/mocks"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

// signToken returns token carrying user profile, signed with throwaway key.
func signToken(t *testing.T, user models.User, expiresAt time.Time) string {
	t.Helper()

	payload, err := json.Marshal(user)
	require.NoError(t, err, "can't marshal user")

	claims := jwt.MapClaims{}
	require.NoError(t, json.Unmarshal(payload, &claims), "can't build claims")
	if !expiresAt.IsZero() {
		claims["exp"] = expiresAt.Unix()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-server-key"))
	require.NoError(t, err, "can't sign token")

	return token
}

func newStore(t *testing.T) (*session.Store, *mocks.Authenticator, *mocks.TokenStorage) {
	t.Helper()

	logger := zerolog.Nop()
	auth := mocks.NewAuthenticator(t)
	storage := mocks.NewTokenStorage(t)

	return session.NewStore(auth, storage, &logger, session.WithClock(fakeClock{now: now})), auth, storage
}

func TestUnitInit(t *testing.T) {
	user := modelstesting.FakeUser()
	valid := signToken(t, user, now.Add(time.Hour))

	tests := map[string]struct {
		stored      string
		loadErr     error
		wantClear   bool
		clearErr    error
		wantSession bool
		wantErr     error
	}{
		"no token": {},
		"valid token": {
			stored:      valid,
			wantSession: true,
		},
		"token without expiry": {
			stored:      signToken(t, user, time.Time{}),
			wantSession: true,
		},
		"malformed token": {
			stored:    "not-a-jwt",
			wantClear: true,
		},
		"expired token": {
			stored:    signToken(t, user, now.Add(-time.Minute)),
			wantClear: true,
		},
		"load error": {
			loadErr: assert.AnError,
			wantErr: assert.AnError,
		},
		"clear error": {
			stored:    "not-a-jwt",
			wantClear: true,
			clearErr:  assert.AnError,
			wantErr:   assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store, _, storage := newStore(t)
			storage.On("Load").Return(tt.stored, tt.loadErr)
			if tt.wantClear {
				storage.On("Clear").Return(tt.clearErr)
			}

			assert.True(t, store.Loading(), "should be loading before init")

			err := store.Init()

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
			assert.False(t, store.Loading(), "should finish loading")

			if !tt.wantSession {
				assert.Nil(t, store.Session(), "should stay unauthenticated")
				assert.Empty(t, store.Token(), "shouldn't expose token")
				return
			}

			got := store.Session()
			require.NotNil(t, got, "should restore session")
			assert.Equal(t, user, got.User, "should decode user from token")
			assert.Equal(t, tt.stored, store.Token(), "should expose restored token")
		})
	}
}

func TestUnitLogin(t *testing.T) {
	user := modelstesting.FakeUser()
	expiresAt := now.Add(time.Hour)
	token := signToken(t, user, expiresAt)
	email, password := user.Email, "secret-password"
	credentials := models.Credentials{Email: email, Password: password}

	store, auth, storage := newStore(t)
	auth.On("Login", mock.Anything, credentials).Return(token, nil)
	storage.On("Save", token).Return(nil)

	got, err := store.Login(context.TODO(), email, password)

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, user, got.User, "should decode user from token")
	assert.Equal(t, token, got.Token, "should keep raw token")
	require.NotNil(t, got.ExpiresAt, "should decode expiry")
	assert.True(t, expiresAt.Equal(*got.ExpiresAt), "should decode expiry")
	assert.Equal(t, token, store.Token(), "should expose token to API client")
}

func TestUnitLoginFailureLeavesStorageUntouched(t *testing.T) {
	user := modelstesting.FakeUser()

	tests := map[string]struct {
		email     string
		password  string
		mockAuth  bool
		token     string
		authErr   error
		saveErr   error
		mockSave  bool
		wantErrIs error
	}{
		"invalid email": {
			email:     "not-an-email",
			password:  "secret-password",
			wantErrIs: session.ErrValidation,
		},
		"short password": {
			email:     user.Email,
			password:  "123",
			wantErrIs: session.ErrValidation,
		},
		"wrong credentials": {
			email:     user.Email,
			password:  "wrong-password",
			mockAuth:  true,
			authErr:   &api.Error{Kind: api.ErrServer, Status: 400, Message: "Invalid email or password"},
			wantErrIs: api.ErrServer,
		},
		"undecodable token": {
			email:     user.Email,
			password:  "secret-password",
			mockAuth:  true,
			token:     "garbage",
			wantErrIs: session.ErrInvalidToken,
		},
		"expired token": {
			email:     user.Email,
			password:  "secret-password",
			mockAuth:  true,
			token:     signToken(t, user, now.Add(-time.Hour)),
			wantErrIs: jwt.ErrTokenExpired,
		},
		"save error": {
			email:     user.Email,
			password:  "secret-password",
			mockAuth:  true,
			token:     signToken(t, user, now.Add(time.Hour)),
			mockSave:  true,
			saveErr:   assert.AnError,
			wantErrIs: assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			store, auth, storage := newStore(t)
			if tt.mockAuth {
				auth.On("Login", mock.Anything, models.Credentials{Email: tt.email, Password: tt.password}).
					Return(tt.token, tt.authErr)
			}
			if tt.mockSave {
				storage.On("Save", tt.token).Return(tt.saveErr)
			}

			got, err := store.Login(context.TODO(), tt.email, tt.password)

			require.ErrorIs(t, err, tt.wantErrIs, "should return correct error")
			assert.Nil(t, got, "shouldn't return session")
			assert.Nil(t, store.Session(), "shouldn't set identity")
			assert.Empty(t, store.Token(), "shouldn't expose token")
		})
	}
}

func TestUnitFailedLoginKeepsCurrentSession(t *testing.T) {
	user := modelstesting.FakeUser()
	token := signToken(t, user, now.Add(time.Hour))

	store, auth, storage := newStore(t)
	auth.On("Login", mock.Anything, models.Credentials{Email: user.Email, Password: "secret-password"}).Return(token, nil)
	auth.On("Login", mock.Anything, models.Credentials{Email: user.Email, Password: "wrong-password"}).Return("", assert.AnError)
	storage.On("Save", token).Return(nil).Once()

	_, err := store.Login(context.TODO(), user.Email, "secret-password")
	require.NoError(t, err, "shouldn't return any error")

	_, err = store.Login(context.TODO(), user.Email, "wrong-password")
	require.ErrorIs(t, err, assert.AnError, "should return login error")

	assert.Equal(t, token, store.Token(), "should keep current session")
}

func TestUnitLogout(t *testing.T) {
	user := modelstesting.FakeUser()
	token := signToken(t, user, now.Add(time.Hour))

	store, _, storage := newStore(t)
	storage.On("Load").Return(token, nil)
	storage.On("Clear").Return(nil)
	require.NoError(t, store.Init(), "shouldn't return any error")

	require.NoError(t, store.Logout(), "shouldn't return any error")

	assert.Nil(t, store.Session(), "should remove identity")
	assert.Empty(t, store.Token(), "should remove token")
}

func TestUnitLogoutStorageError(t *testing.T) {
	store, _, storage := newStore(t)
	storage.On("Clear").Return(assert.AnError)

	err := store.Logout()

	require.ErrorIs(t, err, assert.AnError, "should return storage error")
}

func TestUnitRegister(t *testing.T) {
	valid := models.Registration{
		Email:    "new.user@crm.test",
		Password: "long-enough",
		Profile: models.RegistrationProfile{
			FirstName: "Dana",
			LastName:  "Levi",
			Phone:     "050-1234567",
			Address: models.RegistrationAddress{
				City:   "Haifa",
				Street: "Herzl",
			},
			Role: models.RoleCustomer,
		},
	}

	tests := map[string]struct {
		edit    func(r *models.Registration)
		authErr error
		wantErr error
	}{
		"ok": {},
		"phone without dash": {
			edit: func(r *models.Registration) { r.Profile.Phone = "0501234567" },
		},
		"short password": {
			edit:    func(r *models.Registration) { r.Password = "1234567" },
			wantErr: session.ErrValidation,
		},
		"invalid phone": {
			edit:    func(r *models.Registration) { r.Profile.Phone = "12345" },
			wantErr: session.ErrValidation,
		},
		"unknown role": {
			edit:    func(r *models.Registration) { r.Profile.Role = "Sales Manager" },
			wantErr: session.ErrValidation,
		},
		"missing city": {
			edit:    func(r *models.Registration) { r.Profile.Address.City = "" },
			wantErr: session.ErrValidation,
		},
		"missing first name": {
			edit:    func(r *models.Registration) { r.Profile.FirstName = "" },
			wantErr: session.ErrValidation,
		},
		"api error": {
			authErr: assert.AnError,
			wantErr: assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			registration := valid
			if tt.edit != nil {
				tt.edit(&registration)
			}

			store, auth, _ := newStore(t)
			if tt.wantErr != session.ErrValidation {
				auth.On("Register", mock.Anything, registration).Return(tt.authErr)
			}

			err := store.Register(context.TODO(), registration)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUnitPhoneValidation(t *testing.T) {
	v := session.NewValidator()

	tests := map[string]bool{
		"050-1234567": true,
		"0501234567":  true,
		"04-1234567":  true,
		"041234567":   true,
		"50-1234567":  false,
		"050-123456":  false,
		"0501-234567": false,
		"050 1234567": false,
		"":            false,
	}

	for phone, want := range tests {
		t.Run(phone, func(t *testing.T) {
			err := v.Var(phone, "phone")
			assert.Equal(t, want, err == nil, "should validate phone %q", phone)
		})
	}
}

func TestUnitRoleValidation(t *testing.T) {
	var v *validator.Validate
	require.NotPanics(t, func() { v = session.NewValidator() }, "should register custom rules")

	require.NoError(t, v.Var(string(models.RoleSeller), "role"), "should accept known role")
	require.Error(t, v.Var("Sales Manager", "role"), "should reject unknown role")
}

func TestUnitValidateRegistration(t *testing.T) {
	err := session.ValidateRegistration(session.NewValidator(), models.Registration{Email: "not-an-email"})

	require.ErrorIs(t, err, session.ErrValidation, "should wrap validation errors")
}
