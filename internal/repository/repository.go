// Package repository holds the SQL for users, teachers and sessions.
// Lookups return nil, nil when no row matches.
package repository

import "errors"

// ErrDuplicate is returned when an insert hits a unique constraint
var ErrDuplicate = errors.New("duplicate record")
