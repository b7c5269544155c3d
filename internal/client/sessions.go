package client

import (
	"context"
	"net/http"
	"strconv"

	"yogastudio/internal/models"
	"yogastudio/internal/validation"
)

const sessionPath = "api/session"

// SessionService wraps /api/session.
//
// Participate and UnParticipate do not return the updated session: callers
// re-fetch with Detail so the participant list always reflects the server.
type SessionService struct {
	client *Client
}

// All lists every session
func (s *SessionService) All(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := s.client.do(ctx, http.MethodGet, sessionPath, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Detail fetches one session
func (s *SessionService) Detail(ctx context.Context, id int64) (*models.Session, error) {
	var session models.Session
	if err := s.client.do(ctx, http.MethodGet, sessionPath+"/"+itoa(id), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Create adds a session
func (s *SessionService) Create(ctx context.Context, session models.Session) (*models.Session, error) {
	if err := validation.Struct(session); err != nil {
		return nil, err
	}

	var created models.Session
	if err := s.client.do(ctx, http.MethodPost, sessionPath, session, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the session with the given id
func (s *SessionService) Update(ctx context.Context, id int64, session models.Session) (*models.Session, error) {
	if err := validation.Struct(session); err != nil {
		return nil, err
	}

	var updated models.Session
	if err := s.client.do(ctx, http.MethodPut, sessionPath+"/"+itoa(id), session, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a session
func (s *SessionService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, sessionPath+"/"+itoa(id), nil, nil)
}

// Participate adds userID to the session's participants
func (s *SessionService) Participate(ctx context.Context, id, userID int64) error {
	return s.client.do(ctx, http.MethodPost, participatePath(id, userID), nil, nil)
}

// UnParticipate removes userID from the session's participants
func (s *SessionService) UnParticipate(ctx context.Context, id, userID int64) error {
	return s.client.do(ctx, http.MethodDelete, participatePath(id, userID), nil, nil)
}

func participatePath(id, userID int64) string {
	return sessionPath + "/" + itoa(id) + "/participate/" + itoa(userID)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
