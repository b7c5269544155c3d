package handlers

import (
	"errors"
	"log"
	"net/http"

	"yogastudio/internal/models"
	"yogastudio/internal/service"
	"yogastudio/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login exchanges credentials for session information and a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	if err := validation.Struct(req); err != nil {
		respondServiceError(w, "Error validating login", err)
		return
	}

	info, err := h.authService.Login(req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		log.Printf("Failed login for %s from %s", req.Email, r.RemoteAddr)
		respondWithError(w, http.StatusUnauthorized, MsgBadCredentials, "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error logging in", err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// Register creates a member account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}
	if err := validation.Struct(req); err != nil {
		respondServiceError(w, "Error validating registration", err)
		return
	}

	_, err := h.authService.Register(r.Context(), req)
	if errors.Is(err, service.ErrEmailTaken) {
		respondWithError(w, http.StatusBadRequest, MsgEmailTaken, "", nil)
		return
	}
	if err != nil {
		respondServiceError(w, "Error registering user", err)
		return
	}

	respondJSON(w, http.StatusOK, models.MessageResponse{Message: MsgRegistered})
}
