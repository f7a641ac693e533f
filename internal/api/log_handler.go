package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitrek/fitrek-app/internal/domain"
	"fitrek/fitrek-app/internal/repository"
	"fitrek/fitrek-app/internal/store"

	"github.com/gin-gonic/gin"
)

// LogHandler serves the workout history. Logs are append-and-delete only.
type LogHandler struct {
	store *store.Store
}

func NewLogHandler(s *store.Store) *LogHandler {
	return &LogHandler{store: s}
}

type WorkoutLogRequest struct {
	WorkoutID string                  `json:"workoutId" binding:"required"`
	Date      *time.Time              `json:"date"`
	Exercises []domain.LoggedExercise `json:"exercises" binding:"required"`
}

// ListLogs returns the history in newest-first order. Orphaned logs (their
// program was deleted) are filtered out unless includeOrphans is set.
func (h *LogHandler) ListLogs(c *gin.Context) {
	if c.Query("includeOrphans") == "true" {
		c.JSON(http.StatusOK, gin.H{"logs": h.store.Snapshot().WorkoutLogs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": h.store.VisibleLogs()})
}

// CreateLog records a completed workout session.
func (h *LogHandler) CreateLog(c *gin.Context) {
	var req WorkoutLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	log := domain.WorkoutLog{
		WorkoutID: req.WorkoutID,
		Exercises: req.Exercises,
	}
	if req.Date != nil {
		log.Date = *req.Date
	}

	created, err := h.store.AddWorkoutLog(c.Request.Context(), log)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidLog):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNoIdentity):
			abortWithError(c, http.StatusUnauthorized, "No active session")
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not record workout")
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// DeleteLog removes a log entry by id.
func (h *LogHandler) DeleteLog(c *gin.Context) {
	if err := h.store.DeleteWorkoutLog(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, store.ErrNoIdentity):
			abortWithError(c, http.StatusUnauthorized, "No active session")
		case errors.Is(err, repository.ErrNotFound):
			abortWithError(c, http.StatusNotFound, "Workout log not found")
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not delete workout log")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
