package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jterhune/watchvault/internal/api/middleware"
	"github.com/jterhune/watchvault/internal/api/request"
	"github.com/jterhune/watchvault/internal/api/response"
	"github.com/jterhune/watchvault/internal/services/auth"
	"github.com/jterhune/watchvault/internal/storage"
)

// AuthHandler handles registration and login endpoints
type AuthHandler struct {
	authService *auth.Service
	storage     storage.Storage
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, storage storage.Storage) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		storage:     storage,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.UserFromModel(user))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponse{
		Token:    token,
		Username: user.Username,
	})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())

	user, err := h.storage.GetUser(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}
