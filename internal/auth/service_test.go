package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"fitrek/fitrek-app/internal/domain"
	"fitrek/fitrek-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccountRepo keeps accounts in memory, mirroring the mongo repository's
// error behavior.
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*domain.Account{}}
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return repository.ErrDuplicate
		}
	}
	copied := *account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) ConfirmByToken(ctx context.Context, token string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ConfirmToken == token && token != "" {
			now := time.Now().UTC()
			a.ConfirmedAt = &now
			a.ConfirmToken = ""
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newTestGateway(t *testing.T, requireConfirmation bool) (Gateway, *fakeAccountRepo) {
	t.Helper()
	repo := newFakeAccountRepo()
	gateway, err := NewService(repo, "test-secret", time.Hour, requireConfirmation)
	require.NoError(t, err)
	return gateway, repo
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService(newFakeAccountRepo(), "", time.Hour, false)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSignUpAndConfirmFlow(t *testing.T) {
	gateway, _ := newTestGateway(t, true)
	ctx := context.Background()

	result, err := gateway.SignUp(ctx, "user@example.com", "password123")
	require.NoError(t, err)
	assert.False(t, result.Confirmed)
	assert.Nil(t, result.Session)
	require.NotEmpty(t, result.ConfirmToken)
	assert.Nil(t, gateway.GetSession())

	// Signing in before confirming is the distinguished outcome.
	_, err = gateway.SignIn(ctx, "user@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailNotConfirmed)

	require.NoError(t, gateway.ConfirmEmail(ctx, result.ConfirmToken))

	// The token is single use.
	assert.ErrorIs(t, gateway.ConfirmEmail(ctx, result.ConfirmToken), ErrInvalidToken)

	session, err := gateway.SignIn(ctx, "user@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, result.Identity, session.Identity)
	assert.NotEmpty(t, session.Token)
}

func TestSignUpWithoutConfirmationRequirement(t *testing.T) {
	gateway, _ := newTestGateway(t, false)

	result, err := gateway.SignUp(context.Background(), "user@example.com", "password123")
	require.NoError(t, err)
	assert.True(t, result.Confirmed)
	require.NotNil(t, result.Session)
	assert.Empty(t, result.ConfirmToken)

	current := gateway.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, result.Identity, *current)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	gateway, _ := newTestGateway(t, false)
	ctx := context.Background()

	_, err := gateway.SignUp(ctx, "user@example.com", "password123")
	require.NoError(t, err)

	_, err = gateway.SignUp(ctx, "user@example.com", "different")
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)
}

func TestSignInWrongPassword(t *testing.T) {
	gateway, _ := newTestGateway(t, false)
	ctx := context.Background()

	_, err := gateway.SignUp(ctx, "user@example.com", "password123")
	require.NoError(t, err)

	_, err = gateway.SignIn(ctx, "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, err = gateway.SignIn(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestSignOutClearsSession(t *testing.T) {
	gateway, _ := newTestGateway(t, false)
	ctx := context.Background()

	_, err := gateway.SignUp(ctx, "user@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, gateway.GetSession())

	require.NoError(t, gateway.SignOut(ctx))
	assert.Nil(t, gateway.GetSession())
	assert.Nil(t, gateway.CurrentUser())

	// Signing out while signed out stays quiet.
	require.NoError(t, gateway.SignOut(ctx))
}

func TestSessionTokenRoundTrip(t *testing.T) {
	gateway, _ := newTestGateway(t, false)

	result, err := gateway.SignUp(context.Background(), "user@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, result.Session)

	identity, err := gateway.ParseSessionToken(result.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Identity, identity)

	_, err = gateway.ParseSessionToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token signed with a different secret is rejected.
	other, err := NewService(newFakeAccountRepo(), "other-secret", time.Hour, false)
	require.NoError(t, err)
	_, err = other.ParseSessionToken(result.Session.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthStateEvents(t *testing.T) {
	gateway, _ := newTestGateway(t, false)
	ctx := context.Background()

	events := make(chan Event, 4)
	unsubscribe := gateway.OnAuthStateChange(func(e Event) {
		events <- e
	})
	defer unsubscribe()

	_, err := gateway.SignUp(ctx, "user@example.com", "password123")
	require.NoError(t, err)

	select {
	case e := <-events:
		assert.Equal(t, EventSignedIn, e.Kind)
		require.NotNil(t, e.Session)
	case <-time.After(time.Second):
		t.Fatal("no signed-in event delivered")
	}

	require.NoError(t, gateway.SignOut(ctx))

	select {
	case e := <-events:
		assert.Equal(t, EventSignedOut, e.Kind)
		assert.Nil(t, e.Session)
	case <-time.After(time.Second):
		t.Fatal("no signed-out event delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	gateway, _ := newTestGateway(t, false)
	ctx := context.Background()

	var mu sync.Mutex
	count := 0
	unsubscribe := gateway.OnAuthStateChange(func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	unsubscribe()

	_, err := gateway.SignUp(ctx, "user@example.com", "password123")
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, count)
}
