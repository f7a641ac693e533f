package auth

import (
	"context"
	"errors"
	"time"
)

// --- Error Definitions ---
var (
	ErrNotConfigured        = errors.New("backend configuration is missing")
	ErrAccountAlreadyExists = errors.New("account with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrEmailNotConfirmed    = errors.New("email not confirmed")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate session token")
)

// Identity is the authenticated user's unique reference. It scopes every
// row-level backend operation.
type Identity struct {
	ID    string
	Email string
}

// Session is an established sign-in: an identity plus its bearer token.
type Session struct {
	Identity  Identity
	Token     string
	ExpiresAt time.Time
}

// EventKind distinguishes auth-state transitions.
type EventKind string

const (
	EventSignedIn  EventKind = "SIGNED_IN"
	EventSignedOut EventKind = "SIGNED_OUT"
)

// Event is one auth-state transition, delivered asynchronously to
// subscribed listeners. Session is set for SIGNED_IN events only.
type Event struct {
	Kind    EventKind
	Session *Session
}

// SignUpResult reports the outcome of account creation. When email
// confirmation is required, Confirmed is false, Session is nil and the user
// must redeem ConfirmToken before signing in.
type SignUpResult struct {
	Identity     Identity
	Confirmed    bool
	Session      *Session
	ConfirmToken string
}

// Gateway is the session/auth surface of the backend: credential
// verification, session management and the auth-state event stream.
type Gateway interface {
	SignUp(ctx context.Context, email, password string) (SignUpResult, error)
	// SignIn returns ErrEmailNotConfirmed when the credentials are valid but
	// the address has not been confirmed yet.
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	ConfirmEmail(ctx context.Context, token string) error

	// GetSession returns the current session, or nil when signed out.
	GetSession() *Session
	// CurrentUser returns the identity of the current session, or nil.
	CurrentUser() *Identity

	// ParseSessionToken validates a bearer token and extracts its identity.
	ParseSessionToken(token string) (Identity, error)

	// OnAuthStateChange registers a listener for sign-in/sign-out events.
	// Events are delivered on a separate goroutine. The returned function
	// unsubscribes the listener.
	OnAuthStateChange(listener func(Event)) (unsubscribe func())
}
