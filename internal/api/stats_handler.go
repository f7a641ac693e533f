package api

import (
	"net/http"
	"time"

	"fitrek/fitrek-app/internal/store"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the derived progress views: the weekly goal summary
// and per-exercise weight progression.
type StatsHandler struct {
	store *store.Store
}

func NewStatsHandler(s *store.Store) *StatsHandler {
	return &StatsHandler{store: s}
}

// WeeklyProgress summarizes the current calendar week against the profile's
// weekly workout goal.
func (h *StatsHandler) WeeklyProgress(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.WeeklyProgress(time.Now()))
}

// Progression returns the per-exercise max-weight series over time. Keys
// are the string form of the exercise reference.
func (h *StatsHandler) Progression(c *gin.Context) {
	progression := h.store.Progression()

	out := make(map[string]interface{}, len(progression))
	for ref, points := range progression {
		out[ref.String()] = points
	}
	c.JSON(http.StatusOK, gin.H{"progression": out})
}
