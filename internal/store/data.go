package store

import (
	"context"
	"time"

	"fitrek/fitrek-app/internal/catalog"
	"fitrek/fitrek-app/internal/domain"
	"fitrek/fitrek-app/internal/stats"

	"github.com/google/uuid"
)

// Every mutating action below follows the same contract: resolve the
// identity (ErrNoIdentity when absent), confirm the write with the backend,
// and only then update in-memory state. On backend failure the error is
// logged and returned with local state untouched, so there is no optimistic
// update and nothing to roll back.

// SetUserData upserts the profile row keyed by the identity. The first call
// during onboarding creates it; later calls update it. The account email
// fills in when the caller left it empty.
func (s *Store) SetUserData(ctx context.Context, profile domain.UserProfile) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}

	profile.UserID = identity.ID
	if profile.Email == "" {
		profile.Email = identity.Email
	}

	if err := s.backend.Profiles.Upsert(ctx, &profile); err != nil {
		s.log.WithError(err).Error("updating user profile")
		return err
	}

	s.mu.Lock()
	s.profile = &profile
	s.mu.Unlock()
	return nil
}

// AddCustomExercise stores a new user-authored exercise and appends it to
// the in-memory catalog extension.
func (s *Store) AddCustomExercise(ctx context.Context, exercise domain.CustomExercise) (domain.CustomExercise, error) {
	identity, err := s.identity()
	if err != nil {
		return domain.CustomExercise{}, err
	}

	exercise.UserID = identity.ID
	id, err := s.backend.Exercises.Insert(ctx, &exercise)
	if err != nil {
		s.log.WithError(err).Error("adding custom exercise")
		return domain.CustomExercise{}, err
	}
	exercise.ID = id

	s.mu.Lock()
	s.customExercises = append(s.customExercises, exercise)
	s.mu.Unlock()
	return exercise, nil
}

// EditCustomExercise updates an exercise by id. An id absent from the
// current collection alters nothing.
func (s *Store) EditCustomExercise(ctx context.Context, exercise domain.CustomExercise) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}

	exercise.UserID = identity.ID
	if err := s.backend.Exercises.Update(ctx, &exercise); err != nil {
		s.log.WithError(err).Error("editing custom exercise")
		return err
	}

	s.mu.Lock()
	for i := range s.customExercises {
		if s.customExercises[i].ID == exercise.ID {
			s.customExercises[i] = exercise
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// DeleteCustomExercise removes an exercise by id.
func (s *Store) DeleteCustomExercise(ctx context.Context, id string) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}

	if err := s.backend.Exercises.Delete(ctx, id, identity.ID); err != nil {
		s.log.WithError(err).Error("deleting custom exercise")
		return err
	}

	s.mu.Lock()
	kept := s.customExercises[:0]
	for _, ex := range s.customExercises {
		if ex.ID != id {
			kept = append(kept, ex)
		}
	}
	s.customExercises = kept
	s.mu.Unlock()
	return nil
}

// AddProgram stores a new workout program and appends it to the in-memory
// list (display order is append-at-end).
func (s *Store) AddProgram(ctx context.Context, program domain.WorkoutProgram) (domain.WorkoutProgram, error) {
	identity, err := s.identity()
	if err != nil {
		return domain.WorkoutProgram{}, err
	}

	program.UserID = identity.ID
	id, err := s.backend.Programs.Insert(ctx, &program)
	if err != nil {
		s.log.WithError(err).Error("adding program")
		return domain.WorkoutProgram{}, err
	}
	program.ID = id

	s.mu.Lock()
	s.programs = append(s.programs, program)
	s.mu.Unlock()
	return program, nil
}

// EditProgram replaces a program's name and exercise list by id.
func (s *Store) EditProgram(ctx context.Context, program domain.WorkoutProgram) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}

	program.UserID = identity.ID
	if err := s.backend.Programs.Update(ctx, &program); err != nil {
		s.log.WithError(err).Error("editing program")
		return err
	}

	s.mu.Lock()
	for i := range s.programs {
		if s.programs[i].ID == program.ID {
			s.programs[i] = program
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// DeleteProgram removes a program by id. Logs referencing it stay in
// storage and become orphaned; rendering filters them out.
func (s *Store) DeleteProgram(ctx context.Context, id string) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}

	if err := s.backend.Programs.Delete(ctx, id, identity.ID); err != nil {
		s.log.WithError(err).Error("deleting program")
		return err
	}

	s.mu.Lock()
	kept := s.programs[:0]
	for _, p := range s.programs {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.programs = kept
	s.mu.Unlock()
	return nil
}

// ApplyTemplate instantiates every program of a bundled template in
// sequence. It stops at the first failure and returns what was created.
func (s *Store) ApplyTemplate(ctx context.Context, templateID string) ([]domain.WorkoutProgram, error) {
	tmpl, ok := s.catalog.Template(templateID)
	if !ok {
		return nil, ErrUnknownTemplate
	}

	created := make([]domain.WorkoutProgram, 0, len(tmpl.Programs))
	for _, tp := range tmpl.Programs {
		program, err := s.AddProgram(ctx, domain.WorkoutProgram{
			Name:      tp.Name,
			Exercises: append([]domain.ExerciseRef(nil), tp.Exercises...),
		})
		if err != nil {
			return created, err
		}
		created = append(created, program)
	}
	return created, nil
}

// AddWorkoutLog stores a completed session. The id is client-generated when
// absent and the date defaults to now; new logs are prepended so the
// in-memory list keeps its descending-date display order. Logs are immutable
// once stored.
func (s *Store) AddWorkoutLog(ctx context.Context, log domain.WorkoutLog) (domain.WorkoutLog, error) {
	identity, err := s.identity()
	if err != nil {
		return domain.WorkoutLog{}, err
	}

	for _, ex := range log.Exercises {
		for _, set := range ex.Sets {
			if set.Weight < 0 || set.Reps < 0 {
				return domain.WorkoutLog{}, ErrInvalidLog
			}
		}
	}

	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Date.IsZero() {
		log.Date = time.Now().UTC()
	}
	log.UserID = identity.ID

	if err := s.backend.Logs.Insert(ctx, &log); err != nil {
		s.log.WithError(err).Error("adding workout log")
		return domain.WorkoutLog{}, err
	}

	s.mu.Lock()
	s.workoutLogs = append([]domain.WorkoutLog{log}, s.workoutLogs...)
	s.mu.Unlock()
	return log, nil
}

// DeleteWorkoutLog removes a log by id.
func (s *Store) DeleteWorkoutLog(ctx context.Context, id string) error {
	identity, err := s.identity()
	if err != nil {
		return err
	}

	if err := s.backend.Logs.Delete(ctx, id, identity.ID); err != nil {
		s.log.WithError(err).Error("deleting workout log")
		return err
	}

	s.mu.Lock()
	kept := s.workoutLogs[:0]
	for _, l := range s.workoutLogs {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.workoutLogs = kept
	s.mu.Unlock()
	return nil
}

// --- Read-side helpers over the merged catalog and history ---

// AllExercises returns the merged catalog: built-ins plus the user's custom
// exercises.
func (s *Store) AllExercises() []domain.Exercise {
	s.mu.Lock()
	custom := append([]domain.CustomExercise(nil), s.customExercises...)
	s.mu.Unlock()
	return s.catalog.Merge(custom)
}

// MuscleGroups returns the muscle groups across the merged catalog.
func (s *Store) MuscleGroups() []string {
	s.mu.Lock()
	custom := append([]domain.CustomExercise(nil), s.customExercises...)
	s.mu.Unlock()
	return s.catalog.MuscleGroups(custom)
}

// FindExercise resolves a reference against the merged catalog.
func (s *Store) FindExercise(ref domain.ExerciseRef) (domain.Exercise, bool) {
	s.mu.Lock()
	custom := append([]domain.CustomExercise(nil), s.customExercises...)
	s.mu.Unlock()
	return s.catalog.Find(ref, custom)
}

// Templates returns the bundled workout templates.
func (s *Store) Templates() []catalog.Template {
	return s.catalog.Templates()
}

// VisibleLogs returns the logs whose originating program still exists, in
// display order. Orphaned logs are excluded, not purged.
func (s *Store) VisibleLogs() []domain.WorkoutLog {
	s.mu.Lock()
	logs := copyLogs(s.workoutLogs)
	programs := copyPrograms(s.programs)
	s.mu.Unlock()
	return stats.FilterOrphanLogs(logs, programs)
}

// WeeklyProgress summarizes the current week against the profile's goal.
func (s *Store) WeeklyProgress(now time.Time) stats.WeeklyProgress {
	s.mu.Lock()
	logs := copyLogs(s.workoutLogs)
	goal := 0
	if s.profile != nil {
		goal = s.profile.WeeklyWorkoutGoal
	}
	s.mu.Unlock()
	return stats.WeekSummary(logs, goal, now)
}

// Progression builds the per-exercise weight progression series over
// non-orphaned logs.
func (s *Store) Progression() map[domain.ExerciseRef][]stats.ProgressionPoint {
	s.mu.Lock()
	logs := copyLogs(s.workoutLogs)
	programs := copyPrograms(s.programs)
	s.mu.Unlock()
	return stats.Progression(logs, programs)
}
