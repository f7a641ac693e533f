package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitrek/fitrek-app/internal/domain"
	"fitrek/fitrek-app/internal/store"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the user profile and the local UI preferences.
type ProfileHandler struct {
	store *store.Store
}

func NewProfileHandler(s *store.Store) *ProfileHandler {
	return &ProfileHandler{store: s}
}

type ProfileRequest struct {
	Name              string                   `json:"name" binding:"required"`
	Height            float64                  `json:"height"`
	Sex               domain.Sex               `json:"sex" binding:"omitempty,oneof=male female other"`
	WeightUnit        domain.WeightUnit        `json:"weightUnit" binding:"omitempty,oneof=Kgs Pounds"`
	Notifications     domain.NotificationPrefs `json:"notifications"`
	WeeklyWorkoutGoal int                      `json:"weeklyWorkoutGoal"`
	PaymentMethod     *domain.PaymentMethod    `json:"paymentMethod,omitempty"`
}

// GetProfile returns the hydrated profile plus the onboarding flag. A 404
// means onboarding has not happened yet.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	snapshot := h.store.Snapshot()
	if snapshot.Profile == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":              "Profile not created yet",
			"onboardingRequired": true,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":            snapshot.Profile,
		"onboardingRequired": snapshot.OnboardingRequired,
	})
}

// PutProfile creates or updates the profile. The first successful call with
// a non-empty name completes onboarding.
func (h *ProfileHandler) PutProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile := domain.UserProfile{
		Name:              req.Name,
		Height:            req.Height,
		Sex:               req.Sex,
		WeightUnit:        req.WeightUnit,
		Notifications:     req.Notifications,
		WeeklyWorkoutGoal: req.WeeklyWorkoutGoal,
		PaymentMethod:     req.PaymentMethod,
	}
	if profile.WeightUnit == "" {
		profile.WeightUnit = domain.WeightUnitKgs
	}

	if err := h.store.SetUserData(c.Request.Context(), profile); err != nil {
		if errors.Is(err, store.ErrNoIdentity) {
			abortWithError(c, http.StatusUnauthorized, "No active session")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not save profile")
		return
	}

	snapshot := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"profile":            snapshot.Profile,
		"onboardingRequired": snapshot.OnboardingRequired,
	})
}

// ToggleDarkMode flips and persists the dark-mode preference.
func (h *ProfileHandler) ToggleDarkMode(c *gin.Context) {
	enabled, err := h.store.ToggleDarkMode()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not persist preference")
		return
	}
	c.JSON(http.StatusOK, gin.H{"darkMode": enabled})
}
