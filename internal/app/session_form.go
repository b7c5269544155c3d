package app

import (
	"context"
	"fmt"

	"yogastudio/internal/models"
	"yogastudio/internal/state"
)

// SessionForm is the admin create/update form. Non-admins are sent back to
// the session list before anything is fetched.
type SessionForm struct {
	sessions SessionAPI
	teachers TeacherAPI
	store    *state.Store

	// id is zero when creating
	id int64
}

// NewSessionForm creates a form; id is zero for a new session
func NewSessionForm(sessions SessionAPI, teachers TeacherAPI, store *state.Store, id int64) *SessionForm {
	return &SessionForm{sessions: sessions, teachers: teachers, store: store, id: id}
}

// IsUpdate reports whether the form edits an existing session
func (f *SessionForm) IsUpdate() bool {
	return f.id != 0
}

// Open checks the admin gate and returns the values to prefill the form
// with, plus the teachers to choose from.
func (f *SessionForm) Open(ctx context.Context) (models.Session, []models.Teacher, Route, error) {
	info, ok := f.store.SessionInformation()
	if !ok || !info.Admin {
		return models.Session{}, nil, RouteSessions, nil
	}

	teachers, err := f.teachers.All(ctx)
	if err != nil {
		return models.Session{}, nil, RouteStay, fmt.Errorf("failed to fetch teachers: %w", err)
	}

	if !f.IsUpdate() {
		return models.Session{}, teachers, RouteStay, nil
	}

	session, err := f.sessions.Detail(ctx, f.id)
	if err != nil {
		return models.Session{}, nil, RouteStay, fmt.Errorf("failed to fetch session %d: %w", f.id, err)
	}
	return *session, teachers, RouteStay, nil
}

// Submit creates or updates the session and routes back to the list
func (f *SessionForm) Submit(ctx context.Context, session models.Session) (Route, error) {
	var err error
	if f.IsUpdate() {
		_, err = f.sessions.Update(ctx, f.id, session)
	} else {
		_, err = f.sessions.Create(ctx, session)
	}
	if err != nil {
		return RouteStay, err
	}
	return RouteSessions, nil
}
