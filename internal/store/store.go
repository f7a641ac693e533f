// Package store holds the application state for the authenticated user: the
// profile, programs, custom exercises and workout logs, plus the transient
// UI flags. It is the only mutation surface; every action round-trips to the
// backend before touching in-memory state, so state never reflects an
// unconfirmed write. All access is serialized through one mutex; callers
// may come from any goroutine.
package store

import (
	"errors"
	"sync"
	"time"

	"fitrek/fitrek-app/internal/auth"
	"fitrek/fitrek-app/internal/catalog"
	"fitrek/fitrek-app/internal/domain"
	"fitrek/fitrek-app/internal/prefs"
	"fitrek/fitrek-app/internal/repository"

	"github.com/sirupsen/logrus"
)

// State names the phases of the auth/data lifecycle. Both entry paths
// (explicit bootstrap and the auth-event listener) funnel through the same
// transitions.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateHydrating      State = "hydrating"
	StateReady          State = "ready"
)

// --- Error Definitions ---
var (
	// ErrNoIdentity marks a mutating action skipped because no authenticated
	// identity was resolvable. Callers can tell "skipped" apart from
	// "rejected by backend".
	ErrNoIdentity = errors.New("no authenticated identity")

	ErrEmptyCredentials = errors.New("email and password are required")
	ErrInvalidLog       = errors.New("set weight and reps must not be negative")
	ErrUnknownTemplate  = errors.New("unknown workout template")
)

const toastDuration = 3 * time.Second

// Backend bundles the remote collaborators the store mediates.
type Backend struct {
	Gateway   auth.Gateway
	Profiles  repository.ProfileRepository
	Exercises repository.CustomExerciseRepository
	Programs  repository.ProgramRepository
	Logs      repository.WorkoutLogRepository
}

// Store is the process-wide state container.
type Store struct {
	backend    Backend
	catalog    *catalog.Catalog
	prefs      *prefs.Prefs
	configured bool
	log        *logrus.Entry

	mu              sync.Mutex
	state           State
	profile         *domain.UserProfile
	customExercises []domain.CustomExercise
	programs        []domain.WorkoutProgram
	workoutLogs     []domain.WorkoutLog

	loading     bool
	loadingData bool
	hydrating   bool

	showToast    bool
	toastMessage string
	toastTimer   *time.Timer
	darkMode     bool

	unsubscribe func()
}

// New creates a store. configured mirrors whether the backend endpoint and
// credentials are present; when false, auth actions fail fast with
// auth.ErrNotConfigured instead of attempting network calls.
func New(backend Backend, cat *catalog.Catalog, p *prefs.Prefs, configured bool) *Store {
	s := &Store{
		backend:         backend,
		catalog:         cat,
		prefs:           p,
		configured:      configured,
		log:             logrus.WithField("component", "store"),
		state:           StateAnonymous,
		customExercises: []domain.CustomExercise{},
		programs:        []domain.WorkoutProgram{},
		workoutLogs:     []domain.WorkoutLog{},
	}
	if p != nil {
		s.darkMode = p.DarkMode()
	}
	return s
}

// Start subscribes the store to backend auth events. SIGNED_IN triggers
// hydration, SIGNED_OUT clears all entity state; both converge with the
// explicit bootstrap path.
func (s *Store) Start() {
	s.unsubscribe = s.backend.Gateway.OnAuthStateChange(s.handleAuthEvent)
}

// Close unsubscribes from auth events and stops the toast timer.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.mu.Lock()
	if s.toastTimer != nil {
		s.toastTimer.Stop()
		s.toastTimer = nil
	}
	s.mu.Unlock()
}

// Snapshot is a read-only copy of the store's state. Mutating a snapshot
// never affects the store.
type Snapshot struct {
	State              State
	Authenticated      bool
	OnboardingRequired bool
	Profile            *domain.UserProfile
	Programs           []domain.WorkoutProgram
	CustomExercises    []domain.CustomExercise
	WorkoutLogs        []domain.WorkoutLog
	Loading            bool
	LoadingData        bool
	ShowToast          bool
	ToastMessage       string
	DarkMode           bool
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	authenticated := s.state == StateAuthenticated || s.state == StateHydrating || s.state == StateReady

	var profile *domain.UserProfile
	if s.profile != nil {
		copied := *s.profile
		profile = &copied
	}

	return Snapshot{
		State:              s.state,
		Authenticated:      authenticated,
		OnboardingRequired: authenticated && !s.profile.Onboarded(),
		Profile:            profile,
		Programs:           copyPrograms(s.programs),
		CustomExercises:    append([]domain.CustomExercise(nil), s.customExercises...),
		WorkoutLogs:        copyLogs(s.workoutLogs),
		Loading:            s.loading,
		LoadingData:        s.loadingData,
		ShowToast:          s.showToast,
		ToastMessage:       s.toastMessage,
		DarkMode:           s.darkMode,
	}
}

// ShowToastMessage sets the toast and schedules the automatic hide.
// Showing a new toast resets the window.
func (s *Store) ShowToastMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showToast = true
	s.toastMessage = message
	if s.toastTimer != nil {
		s.toastTimer.Stop()
	}
	s.toastTimer = time.AfterFunc(toastDuration, s.HideToast)
}

// HideToast clears the toast immediately.
func (s *Store) HideToast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showToast = false
	s.toastMessage = ""
}

// DarkMode returns the current dark-mode flag.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// ToggleDarkMode flips the dark-mode flag and persists it locally. This is
// the only state that survives restarts outside the backend.
func (s *Store) ToggleDarkMode() (bool, error) {
	s.mu.Lock()
	s.darkMode = !s.darkMode
	enabled := s.darkMode
	s.mu.Unlock()

	if s.prefs != nil {
		if err := s.prefs.SetDarkMode(enabled); err != nil {
			s.log.WithError(err).Error("persisting dark mode preference")
			return enabled, err
		}
	}
	return enabled, nil
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// identity resolves the authenticated identity, the precondition of every
// mutating data action.
func (s *Store) identity() (auth.Identity, error) {
	current := s.backend.Gateway.CurrentUser()
	if current == nil {
		return auth.Identity{}, ErrNoIdentity
	}
	return *current, nil
}

func copyPrograms(in []domain.WorkoutProgram) []domain.WorkoutProgram {
	out := make([]domain.WorkoutProgram, len(in))
	copy(out, in)
	for i := range out {
		out[i].Exercises = append([]domain.ExerciseRef(nil), out[i].Exercises...)
	}
	return out
}

func copyLogs(in []domain.WorkoutLog) []domain.WorkoutLog {
	out := make([]domain.WorkoutLog, len(in))
	copy(out, in)
	for i := range out {
		exercises := make([]domain.LoggedExercise, len(out[i].Exercises))
		copy(exercises, out[i].Exercises)
		for j := range exercises {
			exercises[j].Sets = append([]domain.ExerciseSet(nil), exercises[j].Sets...)
		}
		out[i].Exercises = exercises
	}
	return out
}
