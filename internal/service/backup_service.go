package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"yogastudio/internal/database"
)

const backupVersion = "1.0"

// BackupData is the portable JSON snapshot of the studio database
type BackupData struct {
	Version        string              `json:"version"`
	ExportedAt     time.Time           `json:"exported_at"`
	Users          []UserBackup        `json:"users"`
	Teachers       []TeacherBackup     `json:"teachers"`
	Sessions       []SessionBackup     `json:"sessions"`
	Participations []ParticipateBackup `json:"participations"`
}

// UserBackup is a user row, password hash included
type UserBackup struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"password_hash"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TeacherBackup is a teacher row
type TeacherBackup struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionBackup is a session row without participants
type SessionBackup struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	TeacherID   int64     `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ParticipateBackup is one participation, in join order
type ParticipateBackup struct {
	SessionID int64 `json:"session_id"`
	UserID    int64 `json:"user_id"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a snapshot of the database to outputPath
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes a snapshot of the database as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup, err := s.snapshot()
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d teachers, %d sessions, %d participations",
		len(backup.Users), len(backup.Teachers), len(backup.Sessions), len(backup.Participations))
	return nil
}

// Import restores a snapshot from inputPath
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a snapshot into an empty database. Rows keep
// their IDs; everything is written in one transaction.
func (s *BackupService) ImportFromReader(r io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	err := s.db.WithTx(func(tx *database.Tx) error {
		for _, u := range backup.Users {
			_, err := tx.Exec(
				"INSERT INTO users (id, email, first_name, last_name, password, admin, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
				u.ID, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.Admin, u.CreatedAt, u.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to import user %d: %w", u.ID, err)
			}
		}

		for _, t := range backup.Teachers {
			_, err := tx.Exec(
				"INSERT INTO teachers (id, first_name, last_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
				t.ID, t.FirstName, t.LastName, t.CreatedAt, t.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to import teacher %d: %w", t.ID, err)
			}
		}

		for _, ss := range backup.Sessions {
			_, err := tx.Exec(
				"INSERT INTO sessions (id, name, description, date, teacher_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
				ss.ID, ss.Name, ss.Description, ss.Date, ss.TeacherID, ss.CreatedAt, ss.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to import session %d: %w", ss.ID, err)
			}
		}

		for _, p := range backup.Participations {
			_, err := tx.Exec("INSERT INTO participate (session_id, user_id) VALUES (?, ?)", p.SessionID, p.UserID)
			if err != nil {
				return fmt.Errorf("failed to import participation %d/%d: %w", p.SessionID, p.UserID, err)
			}
		}

		return resetSequences(tx)
	})
	if err != nil {
		return err
	}

	log.Println("Database import completed successfully")
	return nil
}

// Clear deletes every row, children first, so a backup can be imported
// over an existing database
func (s *BackupService) Clear() error {
	return s.db.WithTx(func(tx *database.Tx) error {
		for _, table := range []string{"participate", "sessions", "teachers", "users"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
			log.Printf("Cleared table: %s", table)
		}
		return nil
	})
}

// resetSequences moves PostgreSQL's serial counters past imported IDs.
// SQLite and MySQL track this from the inserted rows.
func resetSequences(tx *database.Tx) error {
	if _, ok := tx.GetDialect().(*database.PostgresDialect); !ok {
		return nil
	}
	for _, table := range []string{"users", "teachers", "sessions", "participate"} {
		query := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s", table, table)
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to reset %s sequence: %w", table, err)
		}
	}
	return nil
}

func (s *BackupService) snapshot() (*BackupData, error) {
	backup := &BackupData{
		Version:        backupVersion,
		ExportedAt:     time.Now().UTC(),
		Users:          []UserBackup{},
		Teachers:       []TeacherBackup{},
		Sessions:       []SessionBackup{},
		Participations: []ParticipateBackup{},
	}

	rows, err := s.db.Query("SELECT id, email, first_name, last_name, password, admin, created_at, updated_at FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.Admin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to export users: %w", err)
		}
		backup.Users = append(backup.Users, u)
	}
	rows.Close()

	rows, err = s.db.Query("SELECT id, first_name, last_name, created_at, updated_at FROM teachers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to export teachers: %w", err)
	}
	for rows.Next() {
		var t TeacherBackup
		if err := rows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.CreatedAt, &t.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to export teachers: %w", err)
		}
		backup.Teachers = append(backup.Teachers, t)
	}
	rows.Close()

	rows, err = s.db.Query("SELECT id, name, description, date, teacher_id, created_at, updated_at FROM sessions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to export sessions: %w", err)
	}
	for rows.Next() {
		var ss SessionBackup
		if err := rows.Scan(&ss.ID, &ss.Name, &ss.Description, &ss.Date, &ss.TeacherID, &ss.CreatedAt, &ss.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to export sessions: %w", err)
		}
		backup.Sessions = append(backup.Sessions, ss)
	}
	rows.Close()

	rows, err = s.db.Query("SELECT session_id, user_id FROM participate ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to export participations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p ParticipateBackup
		if err := rows.Scan(&p.SessionID, &p.UserID); err != nil {
			return nil, fmt.Errorf("failed to export participations: %w", err)
		}
		backup.Participations = append(backup.Participations, p)
	}

	return backup, rows.Err()
}
