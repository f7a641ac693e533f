package domain

import "time"

// WorkoutProgram is a named, ordered list of exercise references the user
// intends to perform together. Order is meaningful (display order) and
// duplicates are allowed.
type WorkoutProgram struct {
	ID        string        `bson:"_id,omitempty" json:"id"`
	UserID    string        `bson:"userId" json:"-"`
	Name      string        `bson:"name" json:"name"`
	Exercises []ExerciseRef `bson:"exercises" json:"exercises"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
