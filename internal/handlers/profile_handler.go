package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vantagefin/vantage/internal/logger"
	"github.com/vantagefin/vantage/internal/middleware"
	"github.com/vantagefin/vantage/internal/models"
	"github.com/vantagefin/vantage/internal/service"
)

type ProfileHandler struct {
	users      *service.UserService
	cookieName string
	log        *logger.Logger
}

func NewProfileHandler(users *service.UserService, cookieName string) *ProfileHandler {
	return &ProfileHandler{
		users:      users,
		cookieName: cookieName,
		log:        logger.New("profile-handler"),
	}
}

// Dashboard is the SPA's session probe: reaching it at all means the gate
// accepted the cookie.
func (h *ProfileHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, "Authenticated")
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// The token outlived the account; drop the stale session.
			clearSessionCookie(w, h.cookieName)
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("Profile fetch failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error fetching profile")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID := middleware.GetUserID(r.Context())

	user, err := h.users.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("Profile update failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Update failed.")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *ProfileHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		h.log.Error("Settings fetch failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Error fetching settings")
		return
	}

	respondJSON(w, http.StatusOK, models.SettingsResponse{
		User: models.SettingsUser{
			Name:  user.Name,
			Email: user.Email,
		},
		Preferences: models.Preferences{
			Notifications: true,
			DarkMode:      false,
			Language:      "en",
		},
	})
}

// UpdateSettings echoes the submitted preferences; there is no preferences
// store behind it yet.
func (h *ProfileHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Preferences models.Preferences `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Settings updated successfully",
		"preferences": req.Preferences,
	})
}
