package repository

import (
	"database/sql"
	"fmt"
	"time"

	"yogastudio/internal/database"
	"yogastudio/internal/models"
)

// TeacherRepository handles database operations for teachers
type TeacherRepository struct {
	db database.DBTX
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db database.DBTX) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// CreateTeacher inserts a teacher
func (r *TeacherRepository) CreateTeacher(firstName, lastName string) (*models.Teacher, error) {
	now := time.Now().UTC()
	query := "INSERT INTO teachers (first_name, last_name, created_at, updated_at) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, firstName, lastName, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	return &models.Teacher{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetTeacherByID retrieves a teacher by ID
func (r *TeacherRepository) GetTeacherByID(id int64) (*models.Teacher, error) {
	query := "SELECT id, first_name, last_name, created_at, updated_at FROM teachers WHERE id = ?"

	teacher := &models.Teacher{}
	err := r.db.QueryRow(query, id).Scan(
		&teacher.ID,
		&teacher.FirstName,
		&teacher.LastName,
		&teacher.CreatedAt,
		&teacher.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}

	return teacher, nil
}

// GetAllTeachers returns every teacher ordered by ID
func (r *TeacherRepository) GetAllTeachers() ([]models.Teacher, error) {
	rows, err := r.db.Query("SELECT id, first_name, last_name, created_at, updated_at FROM teachers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get teachers: %w", err)
	}
	defer rows.Close()

	teachers := []models.Teacher{}
	for rows.Next() {
		var teacher models.Teacher
		if err := rows.Scan(&teacher.ID, &teacher.FirstName, &teacher.LastName, &teacher.CreatedAt, &teacher.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	return teachers, rows.Err()
}

// CountTeachers returns the number of teachers
func (r *TeacherRepository) CountTeachers() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM teachers").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count teachers: %w", err)
	}
	return count, nil
}
