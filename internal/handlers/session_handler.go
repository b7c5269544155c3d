package handlers

import (
	"net/http"
	"strconv"

	"yogastudio/internal/models"
	"yogastudio/internal/service"
)

// SessionHandler serves the yoga session endpoints
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// List returns every session
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionService.List()
	if err != nil {
		respondServiceError(w, "Error listing sessions", err)
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

// Get returns one session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.Get(id)
	if err != nil {
		respondServiceError(w, "Error getting session", err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// Create stores a new session (admin only)
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Session
	if err := decodeJSON(w, r, &in); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	session, err := h.sessionService.Create(in)
	if err != nil {
		respondServiceError(w, "Error creating session", err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// Update rewrites a session (admin only)
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in models.Session
	if err := decodeJSON(w, r, &in); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return
	}

	session, err := h.sessionService.Update(id, in)
	if err != nil {
		respondServiceError(w, "Error updating session", err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// Delete removes a session (admin only)
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sessionService.Delete(id); err != nil {
		respondServiceError(w, "Error deleting session", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Participate adds a user to a session
func (h *SessionHandler) Participate(w http.ResponseWriter, r *http.Request) {
	id, userID, ok := h.participation(w, r)
	if !ok {
		return
	}

	if err := h.sessionService.Participate(id, userID); err != nil {
		respondServiceError(w, "Error adding participant", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// NoLongerParticipate removes a user from a session
func (h *SessionHandler) NoLongerParticipate(w http.ResponseWriter, r *http.Request) {
	id, userID, ok := h.participation(w, r)
	if !ok {
		return
	}

	if err := h.sessionService.NoLongerParticipate(id, userID); err != nil {
		respondServiceError(w, "Error removing participant", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// participation parses both path IDs and checks the caller may act for userId
func (h *SessionHandler) participation(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return 0, 0, false
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return 0, 0, false
	}

	claims := GetClaimsFromContext(r.Context())
	if claims == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return 0, 0, false
	}
	if err := service.CanActFor(claims.UserID, userID, claims.Admin); err != nil {
		respondServiceError(w, "", err)
		return 0, 0, false
	}
	return id, userID, true
}

// pathID parses a numeric path parameter, answering 400 when it is not one
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidID, "", nil)
		return 0, false
	}
	return id, true
}
