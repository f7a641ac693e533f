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

// ProgramHandler serves workout program CRUD and the bundled templates.
type ProgramHandler struct {
	store *store.Store
}

func NewProgramHandler(s *store.Store) *ProgramHandler {
	return &ProgramHandler{store: s}
}

type ProgramRequest struct {
	Name      string               `json:"name" binding:"required"`
	Exercises []domain.ExerciseRef `json:"exercises"`
}

// ListPrograms returns the user's programs in display order.
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"programs": h.store.Snapshot().Programs})
}

// CreateProgram adds a workout program. Duplicate exercise references are
// allowed and order is preserved.
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	program, err := h.store.AddProgram(c.Request.Context(), domain.WorkoutProgram{
		Name:      req.Name,
		Exercises: req.Exercises,
	})
	if err != nil {
		h.handleMutationError(c, err, "Could not create program")
		return
	}

	c.JSON(http.StatusCreated, program)
}

// UpdateProgram replaces a program's name and exercise list.
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err := h.store.EditProgram(c.Request.Context(), domain.WorkoutProgram{
		ID:        c.Param("id"),
		Name:      req.Name,
		Exercises: req.Exercises,
	})
	if err != nil {
		h.handleMutationError(c, err, "Could not update program")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteProgram removes a program. Logs that referenced it become orphaned
// and disappear from history views without being deleted.
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	if err := h.store.DeleteProgram(c.Request.Context(), c.Param("id")); err != nil {
		h.handleMutationError(c, err, "Could not delete program")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListTemplates returns the bundled workout templates.
func (h *ProgramHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.store.Templates()})
}

// ApplyTemplate instantiates a template's programs for the user.
func (h *ProgramHandler) ApplyTemplate(c *gin.Context) {
	created, err := h.store.ApplyTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrUnknownTemplate) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		// Partial creation is possible; report what exists alongside the error.
		if errors.Is(err, store.ErrNoIdentity) {
			abortWithError(c, http.StatusUnauthorized, "No active session")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Template was only partially applied",
			"programs": created,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"programs": created})
}

func (h *ProgramHandler) handleMutationError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNoIdentity):
		abortWithError(c, http.StatusUnauthorized, "No active session")
	case errors.Is(err, repository.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "Program not found")
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
