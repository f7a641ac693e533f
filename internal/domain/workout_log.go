package domain

import "time"

// ExerciseSet is one performed set. Weight and reps are never negative.
type ExerciseSet struct {
	Weight float64 `bson:"weight" json:"weight"`
	Reps   int     `bson:"reps" json:"reps"`
}

// LoggedExercise is the recorded breakdown for one exercise of the program
// as it stood at logging time.
type LoggedExercise struct {
	ExerciseID ExerciseRef   `bson:"exerciseId" json:"exerciseId"`
	Sets       []ExerciseSet `bson:"sets" json:"sets"`
}

// WorkoutLog is an immutable record of one completed session. Its id is
// generated client-side; after creation a log is only ever deleted, never
// edited. If the originating program is deleted later, the log stays in
// storage but is filtered out of rendered history.
type WorkoutLog struct {
	ID        string           `bson:"_id" json:"id"`
	UserID    string           `bson:"userId" json:"-"`
	WorkoutID string           `bson:"workoutId" json:"workoutId"`
	Date      time.Time        `bson:"date" json:"date"`
	Exercises []LoggedExercise `bson:"exercises" json:"exercises"`
}

// TotalVolume is the sum of weight times reps across every set of the log.
func (l *WorkoutLog) TotalVolume() float64 {
	var total float64
	for _, ex := range l.Exercises {
		total += SetVolume(ex.Sets)
	}
	return total
}

// SetVolume is the sum of weight times reps for one set list.
func SetVolume(sets []ExerciseSet) float64 {
	var total float64
	for _, s := range sets {
		total += s.Weight * float64(s.Reps)
	}
	return total
}
