package handlers

import (
	"net/http"

	"yogastudio/internal/service"
)

// TeacherHandler serves the read-only teacher endpoints
type TeacherHandler struct {
	teacherService *service.TeacherService
}

// NewTeacherHandler creates a new teacher handler
func NewTeacherHandler(teacherService *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService}
}

func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.teacherService.List()
	if err != nil {
		respondServiceError(w, "Error listing teachers", err)
		return
	}
	respondJSON(w, http.StatusOK, teachers)
}

func (h *TeacherHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	teacher, err := h.teacherService.Get(id)
	if err != nil {
		respondServiceError(w, "Error getting teacher", err)
		return
	}
	respondJSON(w, http.StatusOK, teacher)
}
