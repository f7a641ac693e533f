package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitrek/fitrek-app/internal/domain"
	"fitrek/fitrek-app/internal/repository"
	"fitrek/fitrek-app/internal/store"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the merged exercise catalog and the custom
// exercise CRUD.
type ExerciseHandler struct {
	store *store.Store
}

func NewExerciseHandler(s *store.Store) *ExerciseHandler {
	return &ExerciseHandler{store: s}
}

type CustomExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	MuscleGroup string `json:"muscleGroup" binding:"required"`
	Equipment   string `json:"equipment"`
	Difficulty  string `json:"difficulty"`
}

// ListExercises returns built-in plus custom exercises, optionally filtered
// by muscle group.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises := h.store.AllExercises()

	if group := c.Query("muscleGroup"); group != "" {
		filtered := exercises[:0]
		for _, ex := range exercises {
			if ex.MuscleGroup == group {
				filtered = append(filtered, ex)
			}
		}
		exercises = filtered
	}

	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

// ListMuscleGroups returns the distinct muscle groups of the merged catalog.
func (h *ExerciseHandler) ListMuscleGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"muscleGroups": h.store.MuscleGroups()})
}

// CreateExercise adds a custom exercise.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CustomExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.store.AddCustomExercise(c.Request.Context(), domain.CustomExercise{
		Name:        req.Name,
		MuscleGroup: req.MuscleGroup,
		Equipment:   req.Equipment,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		h.handleMutationError(c, err, "Could not create exercise")
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

// UpdateExercise edits a custom exercise by id.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req CustomExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err := h.store.EditCustomExercise(c.Request.Context(), domain.CustomExercise{
		ID:          c.Param("id"),
		Name:        req.Name,
		MuscleGroup: req.MuscleGroup,
		Equipment:   req.Equipment,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		h.handleMutationError(c, err, "Could not update exercise")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteExercise removes a custom exercise by id.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	if err := h.store.DeleteCustomExercise(c.Request.Context(), c.Param("id")); err != nil {
		h.handleMutationError(c, err, "Could not delete exercise")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *ExerciseHandler) handleMutationError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNoIdentity):
		abortWithError(c, http.StatusUnauthorized, "No active session")
	case errors.Is(err, repository.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "Exercise not found")
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
