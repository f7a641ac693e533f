package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fitrek/fitrek-app/internal/auth"
	"fitrek/fitrek-app/internal/domain"
	"fitrek/fitrek-app/internal/repository"
)

// fakeGateway is an in-memory auth.Gateway. Tests drive its outcomes through
// the exported fields and inspect call counters afterwards.
type fakeGateway struct {
	mu        sync.Mutex
	session   *auth.Session
	listeners []func(auth.Event)

	signInSession *auth.Session
	signInErr     error
	signUpResult  auth.SignUpResult
	signUpErr     error
	signOutErr    error

	signInCalls  int
	signUpCalls  int
	signOutCalls int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{}
}

func testSession(userID, email string) *auth.Session {
	return &auth.Session{
		Identity:  auth.Identity{ID: userID, Email: email},
		Token:     "token-" + userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func (g *fakeGateway) SignUp(ctx context.Context, email, password string) (auth.SignUpResult, error) {
	g.mu.Lock()
	g.signUpCalls++
	result, err := g.signUpResult, g.signUpErr
	if err == nil && result.Confirmed && result.Session != nil {
		g.session = result.Session
	}
	g.mu.Unlock()
	return result, err
}

func (g *fakeGateway) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	g.mu.Lock()
	g.signInCalls++
	session, err := g.signInSession, g.signInErr
	if err == nil {
		g.session = session
	}
	g.mu.Unlock()
	return session, err
}

func (g *fakeGateway) SignOut(ctx context.Context) error {
	g.mu.Lock()
	g.signOutCalls++
	err := g.signOutErr
	g.session = nil
	g.mu.Unlock()
	return err
}

func (g *fakeGateway) ConfirmEmail(ctx context.Context, token string) error {
	return nil
}

func (g *fakeGateway) GetSession() *auth.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

func (g *fakeGateway) CurrentUser() *auth.Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return nil
	}
	identity := g.session.Identity
	return &identity
}

func (g *fakeGateway) ParseSessionToken(token string) (auth.Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session != nil && g.session.Token == token {
		return g.session.Identity, nil
	}
	return auth.Identity{}, auth.ErrInvalidToken
}

func (g *fakeGateway) OnAuthStateChange(listener func(auth.Event)) func() {
	g.mu.Lock()
	g.listeners = append(g.listeners, listener)
	g.mu.Unlock()
	return func() {}
}

// emit delivers an event synchronously, so tests need no sleeps.
func (g *fakeGateway) emit(event auth.Event) {
	g.mu.Lock()
	listeners := append(([]func(auth.Event))(nil), g.listeners...)
	g.mu.Unlock()
	for _, l := range listeners {
		l(event)
	}
}

// fakeProfileRepo holds at most one profile per user.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]domain.UserProfile
	getErr   error
	putErr   error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]domain.UserProfile{}}
}

func (r *fakeProfileRepo) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &profile, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.putErr != nil {
		return r.putErr
	}
	r.profiles[profile.UserID] = *profile
	return nil
}

// fakeExerciseRepo stores custom exercises in insertion order.
type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises []domain.CustomExercise
	nextID    int
	insertErr error
	listErr   error
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{}
}

func (r *fakeExerciseRepo) Insert(ctx context.Context, exercise *domain.CustomExercise) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return "", r.insertErr
	}
	r.nextID++
	ex := *exercise
	ex.ID = fmt.Sprintf("custom-%d", r.nextID)
	r.exercises = append(r.exercises, ex)
	return ex.ID, nil
}

func (r *fakeExerciseRepo) ListByUser(ctx context.Context, userID string) ([]domain.CustomExercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []domain.CustomExercise{}
	for _, ex := range r.exercises {
		if ex.UserID == userID {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) Update(ctx context.Context, exercise *domain.CustomExercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ex := range r.exercises {
		if ex.ID == exercise.ID && ex.UserID == exercise.UserID {
			r.exercises[i] = *exercise
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeExerciseRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ex := range r.exercises {
		if ex.ID == id && ex.UserID == userID {
			r.exercises = append(r.exercises[:i], r.exercises[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeProgramRepo stores workout programs in insertion order.
type fakeProgramRepo struct {
	mu        sync.Mutex
	programs  []domain.WorkoutProgram
	nextID    int
	insertErr error
	listErr   error
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{}
}

func (r *fakeProgramRepo) Insert(ctx context.Context, program *domain.WorkoutProgram) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return "", r.insertErr
	}
	r.nextID++
	p := *program
	p.ID = fmt.Sprintf("program-%d", r.nextID)
	r.programs = append(r.programs, p)
	return p.ID, nil
}

func (r *fakeProgramRepo) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutProgram, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []domain.WorkoutProgram{}
	for _, p := range r.programs {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProgramRepo) Update(ctx context.Context, program *domain.WorkoutProgram) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.programs {
		if p.ID == program.ID && p.UserID == program.UserID {
			r.programs[i] = *program
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeProgramRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.programs {
		if p.ID == id && p.UserID == userID {
			r.programs = append(r.programs[:i], r.programs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeLogRepo stores workout logs and lists them newest first.
type fakeLogRepo struct {
	mu        sync.Mutex
	logs      []domain.WorkoutLog
	insertErr error
	listErr   error
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{}
}

func (r *fakeLogRepo) Insert(ctx context.Context, log *domain.WorkoutLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeLogRepo) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []domain.WorkoutLog{}
	for _, l := range r.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Date.After(out[i].Date) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakeLogRepo) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.logs {
		if l.ID == id && l.UserID == userID {
			r.logs = append(r.logs[:i], r.logs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
