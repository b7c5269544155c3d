package repository

import (
	"database/sql"
	"fmt"
	"time"

	"yogastudio/internal/database"
	"yogastudio/internal/models"
)

// SessionRepository handles database operations for yoga sessions and
// their participants
type SessionRepository struct {
	db database.DBTX
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db database.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = "id, name, description, date, teacher_id, created_at, updated_at"

// CreateSession inserts a session with no participants
func (r *SessionRepository) CreateSession(name, description string, date time.Time, teacherID int64) (*models.Session, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO sessions (name, description, date, teacher_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, name, description, date.UTC(), teacherID, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.Session{
		ID:          id,
		Name:        name,
		Description: description,
		Date:        date.UTC(),
		TeacherID:   teacherID,
		Users:       []int64{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetSessionByID retrieves a session and its participants
func (r *SessionRepository) GetSessionByID(id int64) (*models.Session, error) {
	query := "SELECT " + sessionColumns + " FROM sessions WHERE id = ?"

	session := &models.Session{}
	err := r.db.QueryRow(query, id).Scan(
		&session.ID,
		&session.Name,
		&session.Description,
		&session.Date,
		&session.TeacherID,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Users, err = r.GetParticipants(id)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// GetAllSessions returns every session ordered by date, with participants
func (r *SessionRepository) GetAllSessions() ([]models.Session, error) {
	rows, err := r.db.Query("SELECT " + sessionColumns + " FROM sessions ORDER BY date, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions := []models.Session{}
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(
			&session.ID,
			&session.Name,
			&session.Description,
			&session.Date,
			&session.TeacherID,
			&session.CreatedAt,
			&session.UpdatedAt,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		session.Users = []int64{}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	rows.Close()

	participants, err := r.allParticipants()
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if users, ok := participants[sessions[i].ID]; ok {
			sessions[i].Users = users
		}
	}

	return sessions, nil
}

// UpdateSession rewrites a session's fields. Participants are untouched.
func (r *SessionRepository) UpdateSession(id int64, name, description string, date time.Time, teacherID int64) error {
	query := `
		UPDATE sessions
		SET name = ?, description = ?, date = ?, teacher_id = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, name, description, date.UTC(), teacherID, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// DeleteSession removes a session; participations cascade
func (r *SessionRepository) DeleteSession(id int64) error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// AddParticipant records userID in the session. ErrDuplicate if already there.
func (r *SessionRepository) AddParticipant(sessionID, userID int64) error {
	_, err := r.db.Exec("INSERT INTO participate (session_id, user_id) VALUES (?, ?)", sessionID, userID)
	if err != nil {
		if r.db.GetDialect().IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to add participant: %w", err)
	}
	return nil
}

// RemoveParticipant deletes userID from the session and reports whether a
// row was removed
func (r *SessionRepository) RemoveParticipant(sessionID, userID int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM participate WHERE session_id = ? AND user_id = ?", sessionID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove participant: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove participant: %w", err)
	}
	return n > 0, nil
}

// GetParticipants returns the user IDs in join order
func (r *SessionRepository) GetParticipants(sessionID int64) ([]int64, error) {
	rows, err := r.db.Query("SELECT user_id FROM participate WHERE session_id = ? ORDER BY id", sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	users := []int64{}
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		users = append(users, userID)
	}

	return users, rows.Err()
}

func (r *SessionRepository) allParticipants() (map[int64][]int64, error) {
	rows, err := r.db.Query("SELECT session_id, user_id FROM participate ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]int64)
	for rows.Next() {
		var sessionID, userID int64
		if err := rows.Scan(&sessionID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		out[sessionID] = append(out[sessionID], userID)
	}

	return out, rows.Err()
}
