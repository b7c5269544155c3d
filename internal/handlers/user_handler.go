package handlers

import (
	"net/http"

	"yogastudio/internal/service"
)

// UserHandler serves account details and self-deletion
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Get returns a user; the password hash is never serialized
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		respondServiceError(w, "Error getting user", err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Delete removes the caller's own account
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	claims := GetClaimsFromContext(r.Context())
	if claims == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}

	if err := h.userService.Delete(claims.Subject, id); err != nil {
		respondServiceError(w, "Error deleting user", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
