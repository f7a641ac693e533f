package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fitrek/fitrek-app/internal/auth"
	"fitrek/fitrek-app/internal/catalog"
	"fitrek/fitrek-app/internal/domain"
	"fitrek/fitrek-app/internal/prefs"
	"fitrek/fitrek-app/internal/repository"
	"fitrek/fitrek-app/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingGateway records how often the backend is hit so tests can prove a
// request was rejected before reaching it.
type countingGateway struct {
	mu           sync.Mutex
	session      *auth.Session
	signUpResult auth.SignUpResult
	signUpErr    error
	signInErr    error

	signUpCalls int
	signInCalls int
}

func (g *countingGateway) SignUp(ctx context.Context, email, password string) (auth.SignUpResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.signUpCalls++
	return g.signUpResult, g.signUpErr
}

func (g *countingGateway) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.signInCalls++
	if g.signInErr != nil {
		return nil, g.signInErr
	}
	return g.session, nil
}

func (g *countingGateway) SignOut(ctx context.Context) error { return nil }

func (g *countingGateway) ConfirmEmail(ctx context.Context, token string) error { return nil }

func (g *countingGateway) GetSession() *auth.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

func (g *countingGateway) CurrentUser() *auth.Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return nil
	}
	identity := g.session.Identity
	return &identity
}

func (g *countingGateway) ParseSessionToken(token string) (auth.Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session != nil && g.session.Token == token {
		return g.session.Identity, nil
	}
	return auth.Identity{}, auth.ErrInvalidToken
}

func (g *countingGateway) OnAuthStateChange(listener func(auth.Event)) func() {
	return func() {}
}

// Empty backing repositories, enough for the auth flows under test.
type nopProfiles struct{}

func (nopProfiles) Get(context.Context, string) (*domain.UserProfile, error) {
	return nil, repository.ErrNotFound
}
func (nopProfiles) Upsert(context.Context, *domain.UserProfile) error { return nil }

type nopExercises struct{}

func (nopExercises) Insert(context.Context, *domain.CustomExercise) (string, error) {
	return "", repository.ErrUpdateFailed
}
func (nopExercises) ListByUser(context.Context, string) ([]domain.CustomExercise, error) {
	return nil, nil
}
func (nopExercises) Update(context.Context, *domain.CustomExercise) error { return repository.ErrNotFound }
func (nopExercises) Delete(context.Context, string, string) error         { return repository.ErrNotFound }

type nopPrograms struct{}

func (nopPrograms) Insert(context.Context, *domain.WorkoutProgram) (string, error) {
	return "", repository.ErrUpdateFailed
}
func (nopPrograms) ListByUser(context.Context, string) ([]domain.WorkoutProgram, error) {
	return nil, nil
}
func (nopPrograms) Update(context.Context, *domain.WorkoutProgram) error { return repository.ErrNotFound }
func (nopPrograms) Delete(context.Context, string, string) error         { return repository.ErrNotFound }

type nopLogs struct{}

func (nopLogs) Insert(context.Context, *domain.WorkoutLog) error { return repository.ErrUpdateFailed }
func (nopLogs) ListByUser(context.Context, string) ([]domain.WorkoutLog, error) {
	return nil, nil
}
func (nopLogs) Delete(context.Context, string, string) error { return repository.ErrNotFound }

func newTestRouter(t *testing.T, gateway *countingGateway) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Load()
	require.NoError(t, err)
	p, err := prefs.Open(filepath.Join(t.TempDir(), "preferences.json"))
	require.NoError(t, err)

	s := store.New(store.Backend{
		Gateway:   gateway,
		Profiles:  nopProfiles{},
		Exercises: nopExercises{},
		Programs:  nopPrograms{},
		Logs:      nopLogs{},
	}, cat, p, true)
	router := gin.New()
	SetupRoutes(router, s, gateway, nil, true)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignupPasswordMismatchNeverReachesBackend(t *testing.T) {
	gateway := &countingGateway{}
	router := newTestRouter(t, gateway)

	w := postJSON(t, router, "/api/v1/auth/signup", SignupRequest{
		Email:           "user@example.com",
		Password:        "password123",
		ConfirmPassword: "password124",
		Username:        "Alice",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, gateway.signUpCalls)
}

func TestSignupPendingConfirmation(t *testing.T) {
	gateway := &countingGateway{
		signUpResult: auth.SignUpResult{
			Identity:     auth.Identity{ID: "user-1", Email: "user@example.com"},
			ConfirmToken: "confirm-token",
		},
	}
	router := newTestRouter(t, gateway)

	w := postJSON(t, router, "/api/v1/auth/signup", SignupRequest{
		Email:           "user@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.NeedsEmailConfirmation)
	assert.Empty(t, resp.Token)
	assert.Equal(t, 1, gateway.signUpCalls)
}

func TestLoginReturnsToken(t *testing.T) {
	gateway := &countingGateway{}
	router := newTestRouter(t, gateway)
	gateway.session = &auth.Session{
		Identity:  auth.Identity{ID: "user-1", Email: "user@example.com"},
		Token:     "session-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	w := postJSON(t, router, "/api/v1/auth/login", LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "session-token", resp.Token)
	assert.False(t, resp.NeedsEmailConfirmation)
}

func TestLoginInvalidCredentials(t *testing.T) {
	gateway := &countingGateway{signInErr: auth.ErrAuthenticationFailed}
	router := newTestRouter(t, gateway)

	w := postJSON(t, router, "/api/v1/auth/login", LoginRequest{
		Email:    "user@example.com",
		Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, gateway.signInCalls)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	gateway := &countingGateway{}
	router := newTestRouter(t, gateway)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteWithValidToken(t *testing.T) {
	gateway := &countingGateway{}
	router := newTestRouter(t, gateway)
	gateway.session = &auth.Session{
		Identity:  auth.Identity{ID: "user-1", Email: "user@example.com"},
		Token:     "session-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req.Header.Set("Authorization", "Bearer session-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestConfigEndpoint(t *testing.T) {
	router := newTestRouter(t, &countingGateway{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"backendConfigured":true`)
	assert.Contains(t, w.Body.String(), `"exportConfigured":false`)
}
