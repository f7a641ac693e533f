package store

import (
	"context"
	"errors"

	"fitrek/fitrek-app/internal/auth"
	"fitrek/fitrek-app/internal/domain"
	"fitrek/fitrek-app/internal/repository"
)

// AuthResult reports the outcome of login/signup. NeedsEmailConfirmation is
// a distinguished non-error outcome: the credentials were fine but the
// address has to be confirmed before a session can exist.
type AuthResult struct {
	NeedsEmailConfirmation bool `json:"needsEmailConfirmation"`
}

// Login authenticates with the backend and, on success, transitions to
// authenticated and hydrates user data before returning. Exactly one of
// three things happens: the state machine reaches ready, the result flags
// needed email confirmation without a transition, or an error is returned.
func (s *Store) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if email == "" || password == "" {
		return AuthResult{}, ErrEmptyCredentials
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if !s.configured {
		return AuthResult{}, auth.ErrNotConfigured
	}

	s.setState(StateAuthenticating)

	_, err := s.backend.Gateway.SignIn(ctx, email, password)
	if errors.Is(err, auth.ErrEmailNotConfirmed) {
		s.setState(StateAnonymous)
		return AuthResult{NeedsEmailConfirmation: true}, nil
	}
	if err != nil {
		s.setState(StateAnonymous)
		s.log.WithError(err).Error("login failed")
		return AuthResult{}, err
	}

	s.setState(StateAuthenticated)
	// Hydration failures are logged per query and do not fail the login.
	if err := s.hydrate(ctx); err != nil {
		s.log.WithError(err).Error("post-login hydration")
	}
	return AuthResult{}, nil
}

// Signup creates an account. When confirmation is pending no session exists
// and no transition happens. On immediate confirmation the store becomes
// authenticated but deliberately does NOT create a profile: the onboarding
// gate (profile exists and has a name) must trigger for first-time users.
func (s *Store) Signup(ctx context.Context, email, password, username string) (AuthResult, error) {
	if email == "" || password == "" {
		return AuthResult{}, ErrEmptyCredentials
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if !s.configured {
		return AuthResult{}, auth.ErrNotConfigured
	}

	s.setState(StateAuthenticating)

	result, err := s.backend.Gateway.SignUp(ctx, email, password)
	if err != nil {
		s.setState(StateAnonymous)
		s.log.WithError(err).Error("signup failed")
		return AuthResult{}, err
	}

	if !result.Confirmed {
		s.setState(StateAnonymous)
		return AuthResult{NeedsEmailConfirmation: true}, nil
	}

	s.setState(StateAuthenticated)
	if username != "" {
		s.ShowToastMessage("Welcome, " + username + "!")
	}
	return AuthResult{}, nil
}

// Logout signs out of the backend and unconditionally clears all user state,
// regardless of the backend outcome.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.backend.Gateway.SignOut(ctx); err != nil {
		s.log.WithError(err).Error("backend sign-out failed")
	}
	s.clearUserState()
	return nil
}

// Bootstrap restores an existing session at process start. When a session
// is present it hydrates and reports whether onboarding is required (no
// profile, or a profile without a name).
func (s *Store) Bootstrap(ctx context.Context) (onboardingRequired bool, err error) {
	session := s.backend.Gateway.GetSession()
	if session == nil {
		s.setState(StateAnonymous)
		return false, nil
	}

	s.setState(StateAuthenticated)
	if err := s.hydrate(ctx); err != nil {
		s.log.WithError(err).Error("bootstrap hydration")
	}

	s.mu.Lock()
	onboardingRequired = !s.profile.Onboarded()
	s.mu.Unlock()
	return onboardingRequired, nil
}

// LoadUserData refreshes all in-memory collections from the backend. It is
// idempotent: two loads against an unchanged backend yield identical state.
func (s *Store) LoadUserData(ctx context.Context) error {
	return s.hydrate(ctx)
}

// handleAuthEvent is the listener registered by Start. It and Bootstrap can
// race; both converge because hydration is guarded and idempotent.
func (s *Store) handleAuthEvent(event auth.Event) {
	switch event.Kind {
	case auth.EventSignedIn:
		s.mu.Lock()
		if s.state == StateAnonymous || s.state == StateAuthenticating {
			s.state = StateAuthenticated
		}
		s.mu.Unlock()
		if err := s.hydrate(context.Background()); err != nil && !errors.Is(err, ErrNoIdentity) {
			s.log.WithError(err).Error("hydration after sign-in event")
		}
	case auth.EventSignedOut:
		s.clearUserState()
	}
}

// hydrate issues the four independent read queries and overwrites each
// collection with its result. Partial failure of one query does not roll
// back the others; the loading flag clears on every exit path. A single
// in-flight flag prevents both entry paths from hydrating concurrently.
func (s *Store) hydrate(ctx context.Context) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.hydrating {
		s.mu.Unlock()
		return nil
	}
	s.hydrating = true
	s.loadingData = true
	s.state = StateHydrating
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.hydrating = false
		s.loadingData = false
		if s.state == StateHydrating {
			s.state = StateReady
		}
		s.mu.Unlock()
	}()

	profile, err := s.backend.Profiles.Get(ctx, identity.ID)
	switch {
	case err == nil:
		s.mu.Lock()
		s.profile = profile
		s.mu.Unlock()
	case errors.Is(err, repository.ErrNotFound):
		// First-time user: no profile row yet.
		s.mu.Lock()
		s.profile = nil
		s.mu.Unlock()
	default:
		s.log.WithError(err).Error("loading user profile")
	}

	if exercises, err := s.backend.Exercises.ListByUser(ctx, identity.ID); err != nil {
		s.log.WithError(err).Error("loading custom exercises")
	} else {
		s.mu.Lock()
		s.customExercises = exercises
		s.mu.Unlock()
	}

	if programs, err := s.backend.Programs.ListByUser(ctx, identity.ID); err != nil {
		s.log.WithError(err).Error("loading workout programs")
	} else {
		s.mu.Lock()
		s.programs = programs
		s.mu.Unlock()
	}

	if logs, err := s.backend.Logs.ListByUser(ctx, identity.ID); err != nil {
		s.log.WithError(err).Error("loading workout logs")
	} else {
		s.mu.Lock()
		s.workoutLogs = logs
		s.mu.Unlock()
	}

	return nil
}

// clearUserState drops everything tied to the session and returns to
// anonymous. Called on logout and on the SIGNED_OUT event; running it twice
// is harmless.
func (s *Store) clearUserState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	s.customExercises = []domain.CustomExercise{}
	s.programs = []domain.WorkoutProgram{}
	s.workoutLogs = []domain.WorkoutLog{}
	s.state = StateAnonymous
}
