package catalog

import "fitrek/fitrek-app/internal/domain"

// Template is a bundled workout split. Applying a template instantiates all
// of its programs, in order, as regular user-owned programs.
type Template struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Level       string            `json:"level"`
	Programs    []TemplateProgram `json:"programs"`
}

// TemplateProgram is the blueprint for one program of a template.
type TemplateProgram struct {
	Name      string               `json:"name"`
	Exercises []domain.ExerciseRef `json:"exercises"`
}

// Templates returns a copy of the bundled templates.
func (c *Catalog) Templates() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Template looks up a bundled template by id.
func (c *Catalog) Template(id string) (Template, bool) {
	for _, t := range c.templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

func refs(ids ...int64) []domain.ExerciseRef {
	out := make([]domain.ExerciseRef, len(ids))
	for i, id := range ids {
		out[i] = domain.CatalogRef(id)
	}
	return out
}

func builtinTemplates() []Template {
	return []Template{
		{
			ID:          "full-body",
			Name:        "Full Body",
			Description: "One program covering all major muscle groups, three sessions a week.",
			Level:       "Beginner",
			Programs: []TemplateProgram{
				{Name: "Full Body", Exercises: refs(12, 1, 8, 22, 28, 35)},
			},
		},
		{
			ID:          "upper-lower",
			Name:        "Upper / Lower",
			Description: "Classic four-day split alternating upper and lower body sessions.",
			Level:       "Intermediate",
			Programs: []TemplateProgram{
				{Name: "Upper Body", Exercises: refs(1, 8, 22, 9, 28, 32)},
				{Name: "Lower Body", Exercises: refs(12, 14, 15, 18, 19)},
			},
		},
		{
			ID:          "push-pull-legs",
			Name:        "Push / Pull / Legs",
			Description: "Six-day split grouping pressing, pulling and leg work.",
			Level:       "Intermediate",
			Programs: []TemplateProgram{
				{Name: "Push Day", Exercises: refs(1, 2, 22, 24, 32)},
				{Name: "Pull Day", Exercises: refs(6, 7, 10, 25, 28)},
				{Name: "Leg Day", Exercises: refs(12, 14, 16, 17, 19)},
			},
		},
		{
			ID:          "starting-strength",
			Name:        "Starting Strength",
			Description: "Barbell-focused novice program built around two alternating days.",
			Level:       "Beginner",
			Programs: []TemplateProgram{
				{Name: "Workout A", Exercises: refs(12, 1, 6)},
				{Name: "Workout B", Exercises: refs(12, 22, 8)},
			},
		},
	}
}
