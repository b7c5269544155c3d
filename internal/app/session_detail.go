package app

import (
	"context"
	"fmt"
	"sync"

	"yogastudio/internal/models"
	"yogastudio/internal/state"
)

// SessionDetail is the detail page of one session. Participation is always
// derived from the last server copy: Participate and Unparticipate re-fetch
// the session instead of editing its user list locally.
type SessionDetail struct {
	sessions SessionAPI
	teachers TeacherAPI
	store    *state.Store
	id       int64

	mu            sync.Mutex
	session       *models.Session
	teacher       *models.Teacher
	participating bool
}

// NewSessionDetail creates the page for session id
func NewSessionDetail(sessions SessionAPI, teachers TeacherAPI, store *state.Store, id int64) *SessionDetail {
	return &SessionDetail{sessions: sessions, teachers: teachers, store: store, id: id}
}

// Load fetches the session and its teacher
func (d *SessionDetail) Load(ctx context.Context) error {
	info, ok := d.store.SessionInformation()
	if !ok {
		return state.ErrNotLogged
	}

	session, err := d.sessions.Detail(ctx, d.id)
	if err != nil {
		return fmt.Errorf("failed to fetch session %d: %w", d.id, err)
	}

	teacher, err := d.teachers.Detail(ctx, session.TeacherID)
	if err != nil {
		return fmt.Errorf("failed to fetch teacher %d: %w", session.TeacherID, err)
	}

	d.mu.Lock()
	d.session = session
	d.teacher = teacher
	d.participating = session.HasParticipant(info.ID)
	d.mu.Unlock()
	return nil
}

// Participate joins the current user to the session, then re-fetches
func (d *SessionDetail) Participate(ctx context.Context) error {
	info, ok := d.store.SessionInformation()
	if !ok {
		return state.ErrNotLogged
	}
	if err := d.sessions.Participate(ctx, d.id, info.ID); err != nil {
		return err
	}
	return d.Load(ctx)
}

// Unparticipate removes the current user from the session, then re-fetches
func (d *SessionDetail) Unparticipate(ctx context.Context) error {
	info, ok := d.store.SessionInformation()
	if !ok {
		return state.ErrNotLogged
	}
	if err := d.sessions.UnParticipate(ctx, d.id, info.ID); err != nil {
		return err
	}
	return d.Load(ctx)
}

// Delete removes the session and routes back to the list
func (d *SessionDetail) Delete(ctx context.Context) (Route, error) {
	if err := d.sessions.Delete(ctx, d.id); err != nil {
		return RouteStay, err
	}
	return RouteSessions, nil
}

// Session returns a copy of the last fetched session
func (d *SessionDetail) Session() (models.Session, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return models.Session{}, false
	}
	s := *d.session
	s.Users = append([]int64(nil), d.session.Users...)
	return s, true
}

// Teacher returns the last fetched teacher
func (d *SessionDetail) Teacher() (models.Teacher, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.teacher == nil {
		return models.Teacher{}, false
	}
	return *d.teacher, true
}

// IsParticipating reports whether the current user was in the last fetch
func (d *SessionDetail) IsParticipating() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.participating
}

// IsAdmin reports whether the logged in user may edit or delete
func (d *SessionDetail) IsAdmin() bool {
	info, ok := d.store.SessionInformation()
	return ok && info.Admin
}
