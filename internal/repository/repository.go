package repository

import (
	"context"

	"fitrek/fitrek-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = Error("not found")
	ErrDuplicate    = Error("already exists")
	ErrUpdateFailed = Error("update failed")
	ErrDeleteFailed = Error("delete failed")
)

// Error helps distinguish repository errors from everything else.
type Error string

func (e Error) Error() string {
	return string(e)
}

// AccountRepository stores authentication records.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// ConfirmByToken marks the matching account's email as confirmed and
	// invalidates the token. Returns ErrNotFound for unknown tokens.
	ConfirmByToken(ctx context.Context, token string) (*domain.Account, error)
}

// ProfileRepository stores the per-user profile singleton.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	// Upsert inserts the profile on first write and replaces it afterwards;
	// the row may or may not exist when onboarding completes.
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}

// CustomExerciseRepository stores user-authored catalog additions.
// Update and Delete filter by id AND owner, so a user can never touch
// another user's rows even with a guessed id.
type CustomExerciseRepository interface {
	Insert(ctx context.Context, exercise *domain.CustomExercise) (string, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CustomExercise, error)
	Update(ctx context.Context, exercise *domain.CustomExercise) error
	Delete(ctx context.Context, id, userID string) error
}

// ProgramRepository stores workout programs.
type ProgramRepository interface {
	Insert(ctx context.Context, program *domain.WorkoutProgram) (string, error)
	ListByUser(ctx context.Context, userID string) ([]domain.WorkoutProgram, error)
	Update(ctx context.Context, program *domain.WorkoutProgram) error
	Delete(ctx context.Context, id, userID string) error
}

// WorkoutLogRepository stores immutable session logs. There is no Update:
// logs are only ever inserted and deleted.
type WorkoutLogRepository interface {
	Insert(ctx context.Context, log *domain.WorkoutLog) error
	// ListByUser returns the user's logs ordered by date descending.
	ListByUser(ctx context.Context, userID string) ([]domain.WorkoutLog, error)
	Delete(ctx context.Context, id, userID string) error
}
