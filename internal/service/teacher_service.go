package service

import (
	"yogastudio/internal/models"
	"yogastudio/internal/repository"
)

// TeacherService exposes the read-only teacher directory
type TeacherService struct {
	teacherRepo *repository.TeacherRepository
}

// NewTeacherService creates a new teacher service
func NewTeacherService(teacherRepo *repository.TeacherRepository) *TeacherService {
	return &TeacherService{teacherRepo: teacherRepo}
}

// List returns every teacher
func (s *TeacherService) List() ([]models.Teacher, error) {
	return s.teacherRepo.GetAllTeachers()
}

// Get returns one teacher or ErrNotFound
func (s *TeacherService) Get(id int64) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetTeacherByID(id)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, ErrNotFound
	}
	return teacher, nil
}
