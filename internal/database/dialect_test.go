package database

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestDialectBasics(t *testing.T) {
	tests := []struct {
		dialect          Dialect
		driver           string
		lastInsertID     bool
		migrationsSubdir string
		trueValue        string
	}{
		{NewSQLiteDialect(), "sqlite3", true, "sqlite", "1"},
		{NewPostgresDialect(), "postgres", false, "postgres", "TRUE"},
		{NewMySQLDialect(), "mysql", true, "mysql", "TRUE"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.lastInsertID {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.lastInsertID)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.migrationsSubdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.migrationsSubdir)
			}
			if got := tt.dialect.BoolValue(true); got != tt.trueValue {
				t.Errorf("BoolValue(true) = %v, want %v", got, tt.trueValue)
			}
			if !strings.Contains(tt.dialect.CreateMigrationsTableQuery(), "migrations") {
				t.Error("CreateMigrationsTableQuery() does not create the migrations table")
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM sessions WHERE id = ?",
			expected: "SELECT * FROM sessions WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM sessions WHERE id = ?",
			expected: "SELECT * FROM sessions WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO participate (session_id, user_id) VALUES (?, ?)",
			expected: "INSERT INTO participate (session_id, user_id) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE sessions SET name = ?, description = ? WHERE id = ?",
			expected: "UPDATE sessions SET name = ?, description = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMySQLDSNEnablesParseTime(t *testing.T) {
	dsn := NewMySQLDialect().DSN(DialectConfig{URL: "yoga:secret@tcp(localhost:3306)/studio"})

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("generated DSN does not parse: %v", err)
	}
	if !cfg.ParseTime {
		t.Error("parseTime not enabled")
	}
	if !cfg.MultiStatements {
		t.Error("multiStatements not enabled")
	}
	if cfg.DBName != "studio" {
		t.Errorf("DBName = %q, want studio", cfg.DBName)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		err     error
		want    bool
	}{
		{"sqlite unique", NewSQLiteDialect(), sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, true},
		{"sqlite primary key", NewSQLiteDialect(), sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, true},
		{"sqlite foreign key", NewSQLiteDialect(), sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, false},
		{"postgres unique", NewPostgresDialect(), &pq.Error{Code: "23505"}, true},
		{"postgres wrapped", NewPostgresDialect(), fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"postgres not null", NewPostgresDialect(), &pq.Error{Code: "23502"}, false},
		{"mysql duplicate", NewMySQLDialect(), &mysql.MySQLError{Number: 1062}, true},
		{"mysql other", NewMySQLDialect(), &mysql.MySQLError{Number: 1452}, false},
		{"plain error", NewSQLiteDialect(), errors.New("boom"), false},
		{"nil", NewMySQLDialect(), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"./yogastudio.db", "./yogastudio.db?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"},
		{"file:test.db?cache=shared", "file:test.db?cache=shared&_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"},
	}
	for _, tt := range tests {
		if got := NewSQLiteDialect().DSN(DialectConfig{Path: tt.path}); got != tt.want {
			t.Errorf("DSN(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
