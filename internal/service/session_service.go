package service

import (
	"errors"
	"fmt"
	"log"

	"yogastudio/internal/events"
	"yogastudio/internal/models"
	"yogastudio/internal/repository"
	"yogastudio/internal/validation"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrTeacherNotFound      = errors.New("teacher not found")
	ErrAlreadyParticipating = errors.New("user already participates in session")
	ErrNotParticipating     = errors.New("user does not participate in session")
	ErrForbidden            = errors.New("forbidden")
)

// CanActFor reports whether actorID may change userID's participation.
// Members act for themselves; admins act for anyone.
func CanActFor(actorID, userID int64, admin bool) error {
	if admin || actorID == userID {
		return nil
	}
	return ErrForbidden
}

// SessionService handles yoga session business logic
type SessionService struct {
	sessionRepo *repository.SessionRepository
	userRepo    *repository.UserRepository
	teacherRepo *repository.TeacherRepository
	events      events.EventPublisher
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo *repository.SessionRepository,
	userRepo *repository.UserRepository,
	teacherRepo *repository.TeacherRepository,
	publisher events.EventPublisher,
) *SessionService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &SessionService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		teacherRepo: teacherRepo,
		events:      publisher,
	}
}

// List returns every session
func (s *SessionService) List() ([]models.Session, error) {
	return s.sessionRepo.GetAllSessions()
}

// Get returns one session or ErrNotFound
func (s *SessionService) Get(id int64) (*models.Session, error) {
	session, err := s.sessionRepo.GetSessionByID(id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}
	return session, nil
}

// Create validates and stores a new session. Any users in the payload are
// ignored; participants join through Participate.
func (s *SessionService) Create(in models.Session) (*models.Session, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.CreateSession(in.Name, in.Description, in.Date, in.TeacherID)
	if err != nil {
		return nil, err
	}

	if err := s.events.PublishSessionCreated(session); err != nil {
		log.Printf("Warning: failed to publish session.created for %d: %v", session.ID, err)
	}
	return session, nil
}

// Update rewrites a session's fields and returns the stored result
func (s *SessionService) Update(id int64, in models.Session) (*models.Session, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.UpdateSession(id, in.Name, in.Description, in.Date, in.TeacherID); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes a session or returns ErrNotFound
func (s *SessionService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.sessionRepo.DeleteSession(id)
}

// Participate adds userID to the session. A second call for the same user
// fails with ErrAlreadyParticipating and leaves the list unchanged.
func (s *SessionService) Participate(id, userID int64) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if session.HasParticipant(userID) {
		return ErrAlreadyParticipating
	}

	if err := s.sessionRepo.AddParticipant(id, userID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyParticipating
		}
		return err
	}

	if err := s.events.PublishParticipated(id, userID); err != nil {
		log.Printf("Warning: failed to publish session.participated for %d/%d: %v", id, userID, err)
	}
	return nil
}

// NoLongerParticipate removes userID from the session
func (s *SessionService) NoLongerParticipate(id, userID int64) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}

	if !session.HasParticipant(userID) {
		return ErrNotParticipating
	}

	removed, err := s.sessionRepo.RemoveParticipant(id, userID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotParticipating
	}

	if err := s.events.PublishLeft(id, userID); err != nil {
		log.Printf("Warning: failed to publish session.left for %d/%d: %v", id, userID, err)
	}
	return nil
}

func (s *SessionService) validate(in models.Session) error {
	if err := validation.Struct(in); err != nil {
		return err
	}

	teacher, err := s.teacherRepo.GetTeacherByID(in.TeacherID)
	if err != nil {
		return fmt.Errorf("failed to check teacher: %w", err)
	}
	if teacher == nil {
		return ErrTeacherNotFound
	}
	return nil
}
