package api

import (
	"errors"
	"net/http"

	"egym/plan-service/internal/domain"
	"egym/plan-service/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the user's training profile.
type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileResponse carries both what the user stored and what the planner
// will actually use after defaulting.
type ProfileResponse struct {
	Stored    map[string]interface{} `json:"stored"`
	Effective domain.UserProfile     `json:"effective"`
}

// GetProfile returns the caller's stored and effective profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identity")
		return
	}

	stored, effective, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{Stored: stored, Effective: effective})
}

// UpdateProfile replaces the caller's stored preferences. Unknown fields
// are silently dropped; invalid values are replaced by defaults at
// generation time, never rejected here.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identity")
		return
	}

	var prefs map[string]interface{}
	if err := c.ShouldBindJSON(&prefs); err != nil {
		abortWithError(c, http.StatusBadRequest, "Request body must be a JSON object")
		return
	}

	effective, err := h.profileService.UpdatePreferences(c.Request.Context(), userID, prefs)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"effective": effective})
}
