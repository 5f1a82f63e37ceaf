package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vantagefin/vantage/internal/auth"
	"github.com/vantagefin/vantage/internal/logger"
	"github.com/vantagefin/vantage/internal/models"
	"github.com/vantagefin/vantage/internal/service"
)

type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler owns credential issuance: signup and login both end with the
// session token in an http-only cookie and a plain-text body, the contract
// the SPA's auth flow expects.
type AuthHandler struct {
	users      *service.UserService
	jwtManager *auth.JWTManager
	cookie     CookieConfig
	log        *logger.Logger
}

func NewAuthHandler(users *service.UserService, jwtManager *auth.JWTManager, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtManager: jwtManager,
		cookie:     cookie,
		log:        logger.New("auth-handler"),
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.Signup(r.Context(), &req)
	if err != nil {
		h.handleSignupError(w, err)
		return
	}

	if err := h.setSessionCookie(w, user); err != nil {
		h.log.Error("Failed to issue token: %v", err)
		http.Error(w, "Server error during signup", http.StatusInternalServerError)
		return
	}

	h.log.Info("Signup successful for %s", user.Email)
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("Signup successful"))
}

func (h *AuthHandler) handleSignupError(w http.ResponseWriter, err error) {
	var ve service.ValidationError
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		http.Error(w, "User already exists", http.StatusBadRequest)
	case errors.Is(err, service.ErrPasswordMismatch):
		http.Error(w, "Passwords do not match", http.StatusBadRequest)
	case errors.As(err, &ve):
		http.Error(w, ve.Error(), http.StatusBadRequest)
	default:
		h.log.Error("Signup failed: %v", err)
		http.Error(w, "Server error during signup", http.StatusInternalServerError)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.Login(r.Context(), &req)
	if err != nil {
		h.handleLoginError(w, err)
		return
	}

	if err := h.setSessionCookie(w, user); err != nil {
		h.log.Error("Failed to issue token: %v", err)
		http.Error(w, "Server error during login", http.StatusInternalServerError)
		return
	}

	h.log.Info("Login successful for %s", user.Email)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Login successful"))
}

func (h *AuthHandler) handleLoginError(w http.ResponseWriter, err error) {
	var ve service.ValidationError
	switch {
	case errors.Is(err, service.ErrUnknownEmail):
		http.Error(w, "User does not exist", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
	case errors.As(err, &ve):
		http.Error(w, ve.Error(), http.StatusBadRequest)
	default:
		h.log.Error("Login failed: %v", err)
		http.Error(w, "Server error during login", http.StatusInternalServerError)
	}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, user *models.User) error {
	token, expiresAt, err := h.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookie.Secure,
	})
	return nil
}

func clearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
