package domain

import "time"

// Exercise is one entry of the merged catalog: either a built-in from the
// bundled dataset or a custom exercise projected into catalog shape.
// Built-in entries are never mutated.
type Exercise struct {
	ID          ExerciseRef `json:"id"`
	Name        string      `json:"name"`
	MuscleGroup string      `json:"muscle_group"`
	Equipment   string      `json:"equipment"`
	Difficulty  string      `json:"difficulty"`
	IsCustom    bool        `json:"isCustom,omitempty"`
}

// CustomExercise is a user-authored addition to the exercise catalog, owned
// exclusively by the creating user.
type CustomExercise struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"userId" json:"-"`
	Name        string    `bson:"name" json:"name"`
	MuscleGroup string    `bson:"muscleGroup" json:"muscle_group"`
	Equipment   string    `bson:"equipment" json:"equipment"`
	Difficulty  string    `bson:"difficulty" json:"difficulty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AsExercise projects the custom exercise into the merged catalog.
func (e CustomExercise) AsExercise() Exercise {
	return Exercise{
		ID:          CustomRef(e.ID),
		Name:        e.Name,
		MuscleGroup: e.MuscleGroup,
		Equipment:   e.Equipment,
		Difficulty:  e.Difficulty,
		IsCustom:    true,
	}
}
