package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fitrek/fitrek-app/internal/domain"
	"fitrek/fitrek-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// service implements the Gateway interface on top of the account repository.
// The current session and the listener set are process-wide state guarded by
// one mutex; event delivery happens off the caller's goroutine.
type service struct {
	accounts            repository.AccountRepository
	jwtSecret           string
	jwtExpiration       time.Duration
	requireConfirmation bool

	mu           sync.Mutex
	session      *Session
	listeners    map[int]func(Event)
	nextListener int
}

// NewService creates a Gateway backed by the given account repository.
func NewService(accounts repository.AccountRepository, jwtSecret string, jwtExpiration time.Duration, requireConfirmation bool) (Gateway, error) {
	if jwtSecret == "" {
		return nil, ErrNotConfigured
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &service{
		accounts:            accounts,
		jwtSecret:           jwtSecret,
		jwtExpiration:       jwtExpiration,
		requireConfirmation: requireConfirmation,
		listeners:           map[int]func(Event){},
	}, nil
}

// SignUp creates a new account. When email confirmation is required the
// result carries the confirmation token and no session is established; the
// account stays unusable until the token is redeemed.
func (s *service) SignUp(ctx context.Context, email, password string) (SignUpResult, error) {
	if email == "" || password == "" {
		return SignUpResult{}, errors.New("email and password cannot be empty")
	}

	_, err := s.accounts.GetByEmail(ctx, email)
	if err == nil {
		return SignUpResult{}, ErrAccountAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return SignUpResult{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return SignUpResult{}, ErrHashingFailed
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if s.requireConfirmation {
		account.ConfirmToken = uuid.NewString()
		// There is no mail sender; the token reaches the user out of band.
		logrus.WithField("email", email).Info("confirmation token issued")
	} else {
		now := time.Now().UTC()
		account.ConfirmedAt = &now
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return SignUpResult{}, ErrAccountAlreadyExists
		}
		return SignUpResult{}, err
	}

	identity := Identity{ID: account.ID, Email: account.Email}
	result := SignUpResult{
		Identity:     identity,
		Confirmed:    account.Confirmed(),
		ConfirmToken: account.ConfirmToken,
	}

	if result.Confirmed {
		session, err := s.establishSession(identity)
		if err != nil {
			return SignUpResult{}, err
		}
		result.Session = session
	}

	return result, nil
}

// SignIn verifies credentials and establishes a session. Valid credentials
// on an unconfirmed account yield ErrEmailNotConfirmed, a distinguished
// outcome rather than a plain authentication failure.
func (s *service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password cannot be empty")
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthenticationFailed
	}

	if !account.Confirmed() {
		return nil, ErrEmailNotConfirmed
	}

	return s.establishSession(Identity{ID: account.ID, Email: account.Email})
}

// SignOut drops the current session and notifies listeners. Signing out
// while already signed out is a no-op.
func (s *service) SignOut(_ context.Context) error {
	s.mu.Lock()
	hadSession := s.session != nil
	s.session = nil
	s.mu.Unlock()

	if hadSession {
		s.emit(Event{Kind: EventSignedOut})
	}
	return nil
}

// ConfirmEmail redeems a confirmation token issued at sign-up.
func (s *service) ConfirmEmail(ctx context.Context, token string) error {
	account, err := s.accounts.ConfirmByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	logrus.WithField("email", account.Email).Info("email confirmed")
	return nil
}

// GetSession returns a copy of the current session, or nil when signed out.
func (s *service) GetSession() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	session := *s.session
	return &session
}

// CurrentUser returns the identity of the current session, or nil.
func (s *service) CurrentUser() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	identity := s.session.Identity
	return &identity
}

// OnAuthStateChange registers a listener for auth transitions.
func (s *service) OnAuthStateChange(listener func(Event)) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// establishSession generates a token, stores the session as current and
// notifies listeners.
func (s *service) establishSession(identity Identity) (*Session, error) {
	token, expiresAt, err := s.generateToken(identity)
	if err != nil {
		return nil, ErrTokenGeneration
	}

	session := &Session{Identity: identity, Token: token, ExpiresAt: expiresAt}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	copied := *session
	s.emit(Event{Kind: EventSignedIn, Session: &copied})
	return session, nil
}

// emit delivers an event to every listener, each on its own goroutine so a
// slow listener cannot block auth actions.
func (s *service) emit(event Event) {
	s.mu.Lock()
	listeners := make([]func(Event), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		go l(event)
	}
}

// --- JWT helpers ---

// sessionClaims defines the JWT payload of a session token.
type sessionClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (s *service) generateToken(identity Identity) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.jwtExpiration)
	claims := &sessionClaims{
		UserID: identity.ID,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fitrek",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseSessionToken validates a bearer token and extracts its identity.
func (s *service) ParseSessionToken(tokenString string) (Identity, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{ID: claims.UserID, Email: claims.Email}, nil
}
