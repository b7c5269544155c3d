package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"yogastudio/internal/models"
	"yogastudio/internal/service"
	"yogastudio/internal/validation"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, models.MessageResponse{Message: userMsg})
}

// respondServiceError maps service sentinels onto status codes. Anything
// unrecognised is logged and reported as a 500.
func respondServiceError(w http.ResponseWriter, logMsg string, err error) {
	var verrs validation.Errors
	var verr validation.ValidationError
	switch {
	case errors.As(err, &verrs):
		respondWithError(w, http.StatusBadRequest, verrs.Error(), "", nil)
	case errors.As(err, &verr):
		respondWithError(w, http.StatusBadRequest, verr.Error(), "", nil)
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, ErrNotFound, "", nil)
	case errors.Is(err, service.ErrTeacherNotFound):
		respondWithError(w, http.StatusBadRequest, ErrUnknownTeacher, "", nil)
	case errors.Is(err, service.ErrAlreadyParticipating),
		errors.Is(err, service.ErrNotParticipating):
		respondWithError(w, http.StatusBadRequest, ErrBadRequest, "", nil)
	case errors.Is(err, service.ErrNotAccountOwner):
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
	case errors.Is(err, service.ErrForbidden):
		respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(dst)
}
