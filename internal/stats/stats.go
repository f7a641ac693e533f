// Package stats computes the aggregates shown on the home screen: weekly
// goal progress and per-exercise weight progression. All functions are pure
// and operate on snapshots, never on live store state.
package stats

import (
	"sort"
	"time"

	"fitrek/fitrek-app/internal/domain"
)

// WeeklyProgress summarizes the current week against the user's goal.
type WeeklyProgress struct {
	Completed int `json:"completed"`
	Goal      int `json:"goal"`
	Percent   int `json:"percent"`
	Remaining int `json:"remaining"`
}

// StartOfWeek returns the preceding Sunday at 00:00 in t's location.
func StartOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// WorkoutsInWeek counts logs dated within the week containing now.
func WorkoutsInWeek(logs []domain.WorkoutLog, now time.Time) int {
	start := StartOfWeek(now)
	count := 0
	for _, log := range logs {
		if !log.Date.Before(start) && !log.Date.After(now) {
			count++
		}
	}
	return count
}

// ProgressPercent computes floor(min(done/goal*100, 100)). A goal of zero or
// less is treated as one, so the percentage is always defined.
func ProgressPercent(done, goal int) int {
	if goal <= 0 {
		goal = 1
	}
	if done < 0 {
		done = 0
	}
	percent := done * 100 / goal
	if percent > 100 {
		return 100
	}
	return percent
}

// WeekSummary builds the full weekly progress view.
func WeekSummary(logs []domain.WorkoutLog, goal int, now time.Time) WeeklyProgress {
	done := WorkoutsInWeek(logs, now)
	remaining := goal - done
	if remaining < 0 {
		remaining = 0
	}
	return WeeklyProgress{
		Completed: done,
		Goal:      goal,
		Percent:   ProgressPercent(done, goal),
		Remaining: remaining,
	}
}

// FilterOrphanLogs drops logs whose originating program no longer exists.
// Orphaned logs stay in storage; they are only excluded from rendering.
func FilterOrphanLogs(logs []domain.WorkoutLog, programs []domain.WorkoutProgram) []domain.WorkoutLog {
	known := make(map[string]struct{}, len(programs))
	for _, p := range programs {
		known[p.ID] = struct{}{}
	}

	kept := make([]domain.WorkoutLog, 0, len(logs))
	for _, log := range logs {
		if _, ok := known[log.WorkoutID]; ok {
			kept = append(kept, log)
		}
	}
	return kept
}

// ProgressionPoint is one session's worth of data for a single exercise.
type ProgressionPoint struct {
	Date      time.Time `json:"date"`
	MaxWeight float64   `json:"maxWeight"`
	Volume    float64   `json:"volume"`
}

// Progression builds a per-exercise time series (ascending by date) of max
// set weight and session volume. Orphaned logs are excluded, matching the
// rendered history.
func Progression(logs []domain.WorkoutLog, programs []domain.WorkoutProgram) map[domain.ExerciseRef][]ProgressionPoint {
	visible := FilterOrphanLogs(logs, programs)

	series := map[domain.ExerciseRef][]ProgressionPoint{}
	for _, log := range visible {
		for _, ex := range log.Exercises {
			if len(ex.Sets) == 0 {
				continue
			}
			point := ProgressionPoint{
				Date:   log.Date,
				Volume: domain.SetVolume(ex.Sets),
			}
			for _, set := range ex.Sets {
				if set.Weight > point.MaxWeight {
					point.MaxWeight = set.Weight
				}
			}
			series[ex.ExerciseID] = append(series[ex.ExerciseID], point)
		}
	}

	for ref := range series {
		points := series[ref]
		sort.Slice(points, func(i, j int) bool {
			return points[i].Date.Before(points[j].Date)
		})
	}
	return series
}
