package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"fitrek/fitrek-app/internal/domain"
)

//go:embed fitness_exercises.json
var exercisesJSON []byte

// Catalog holds the bundled read-only exercise dataset. Custom exercises are
// merged in at read time; the built-in entries themselves are never mutated.
type Catalog struct {
	exercises []domain.Exercise
	byRef     map[domain.ExerciseRef]domain.Exercise
	templates []Template
}

// Load parses the embedded dataset and wires up the bundled templates.
func Load() (*Catalog, error) {
	var exercises []domain.Exercise
	if err := json.Unmarshal(exercisesJSON, &exercises); err != nil {
		return nil, fmt.Errorf("parse bundled exercise dataset: %w", err)
	}

	byRef := make(map[domain.ExerciseRef]domain.Exercise, len(exercises))
	for _, ex := range exercises {
		byRef[ex.ID] = ex
	}

	c := &Catalog{
		exercises: exercises,
		byRef:     byRef,
		templates: builtinTemplates(),
	}

	// A template referencing an unknown exercise is a packaging bug.
	for _, t := range c.templates {
		for _, p := range t.Programs {
			for _, ref := range p.Exercises {
				if _, ok := byRef[ref]; !ok {
					return nil, fmt.Errorf("template %q references unknown exercise %s", t.ID, ref)
				}
			}
		}
	}

	return c, nil
}

// Exercises returns a copy of the built-in entries.
func (c *Catalog) Exercises() []domain.Exercise {
	out := make([]domain.Exercise, len(c.exercises))
	copy(out, c.exercises)
	return out
}

// Merge returns the full logical catalog: built-ins followed by the user's
// custom exercises.
func (c *Catalog) Merge(custom []domain.CustomExercise) []domain.Exercise {
	merged := make([]domain.Exercise, 0, len(c.exercises)+len(custom))
	merged = append(merged, c.exercises...)
	for _, ex := range custom {
		merged = append(merged, ex.AsExercise())
	}
	return merged
}

// Find resolves a reference against built-ins first, then the given custom
// exercises.
func (c *Catalog) Find(ref domain.ExerciseRef, custom []domain.CustomExercise) (domain.Exercise, bool) {
	if ex, ok := c.byRef[ref]; ok {
		return ex, true
	}
	if ref.IsCustom() {
		for _, ce := range custom {
			if ce.ID == ref.Custom {
				return ce.AsExercise(), true
			}
		}
	}
	return domain.Exercise{}, false
}

// MuscleGroups returns the sorted set of muscle groups across built-ins and
// the given custom exercises.
func (c *Catalog) MuscleGroups(custom []domain.CustomExercise) []string {
	seen := map[string]struct{}{}
	for _, ex := range c.exercises {
		seen[ex.MuscleGroup] = struct{}{}
	}
	for _, ex := range custom {
		seen[ex.MuscleGroup] = struct{}{}
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}
