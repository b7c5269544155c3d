package client

import (
	"context"
	"net/http"

	"yogastudio/internal/models"
)

// TeacherService wraps /api/teacher (read-only)
type TeacherService struct {
	client *Client
}

// All lists every teacher
func (s *TeacherService) All(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := s.client.do(ctx, http.MethodGet, "api/teacher", nil, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// Detail fetches one teacher
func (s *TeacherService) Detail(ctx context.Context, id int64) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := s.client.do(ctx, http.MethodGet, "api/teacher/"+itoa(id), nil, &teacher); err != nil {
		return nil, err
	}
	return &teacher, nil
}
