package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitrek/fitrek-app/internal/auth"
	"fitrek/fitrek-app/internal/store"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes signup, login, logout and email confirmation over the
// state store.
type AuthHandler struct {
	store   *store.Store
	gateway auth.Gateway
}

func NewAuthHandler(s *store.Store, gateway auth.Gateway) *AuthHandler {
	return &AuthHandler{store: s, gateway: gateway}
}

// --- Request/Response Structs ---

type SignupRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	Username        string `json:"username"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token                  string `json:"token,omitempty"`
	NeedsEmailConfirmation bool   `json:"needsEmailConfirmation"`
	State                  string `json:"state"`
}

// Signup creates an account. Mismatched password confirmation is rejected
// here, before anything reaches the backend.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if req.Password != req.ConfirmPassword {
		abortWithError(c, http.StatusBadRequest, "Passwords do not match")
		return
	}

	result, err := h.store.Signup(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAccountAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, store.ErrEmptyCredentials):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrNotConfigured):
			abortWithError(c, http.StatusServiceUnavailable, "Backend is not configured")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during signup")
		}
		return
	}

	c.JSON(http.StatusCreated, h.authResponse(result))
}

// Login authenticates and establishes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.store.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, store.ErrEmptyCredentials):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrNotConfigured):
			abortWithError(c, http.StatusServiceUnavailable, "Backend is not configured")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, h.authResponse(result))
}

// Logout clears the session and all user state.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.store.Logout(c.Request.Context()); err != nil {
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during logout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": string(h.store.State())})
}

// ConfirmEmail redeems a confirmation token sent at signup.
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		abortWithError(c, http.StatusBadRequest, "Confirmation token is missing")
		return
	}

	if err := h.gateway.ConfirmEmail(c.Request.Context(), token); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			abortWithError(c, http.StatusNotFound, "Unknown or already used confirmation token")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during confirmation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"confirmed": true})
}

// Session reports the current session, if any.
func (h *AuthHandler) Session(c *gin.Context) {
	session := h.gateway.GetSession()
	if session == nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	snapshot := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"authenticated":      true,
		"userId":             session.Identity.ID,
		"email":              session.Identity.Email,
		"expiresAt":          session.ExpiresAt,
		"state":              string(snapshot.State),
		"onboardingRequired": snapshot.OnboardingRequired,
	})
}

func (h *AuthHandler) authResponse(result store.AuthResult) AuthResponse {
	resp := AuthResponse{
		NeedsEmailConfirmation: result.NeedsEmailConfirmation,
		State:                  string(h.store.State()),
	}
	if session := h.gateway.GetSession(); session != nil {
		resp.Token = session.Token
	}
	return resp
}
