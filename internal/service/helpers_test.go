package service

import (
	"path/filepath"
	"testing"
	"time"

	"yogastudio/internal/database"
	"yogastudio/internal/repository"
	"yogastudio/internal/security"
)

// testEnv is a migrated SQLite database with every repository and service
type testEnv struct {
	db       *database.DB
	users    *repository.UserRepository
	teachers *repository.TeacherRepository
	sessions *repository.SessionRepository
	tokens   *security.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "studio.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		teachers: repository.NewTeacherRepository(db),
		sessions: repository.NewSessionRepository(db),
		tokens:   security.NewTokenManager("test-secret", time.Hour),
	}
}

func (e *testEnv) mustUser(t *testing.T, email string, admin bool) int64 {
	t.Helper()
	hash, err := security.HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	u, err := e.users.CreateUser(email, hash, "First", "Last", admin)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return u.ID
}

func (e *testEnv) mustTeacher(t *testing.T) int64 {
	t.Helper()
	teacher, err := e.teachers.CreateTeacher("Margot", "DELAHAYE")
	if err != nil {
		t.Fatalf("Failed to create teacher: %v", err)
	}
	return teacher.ID
}
