// Package events announces session changes on NATS
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"yogastudio/internal/models"
)

const (
	SubjectSessionCreated      = "session.created"
	SubjectSessionParticipated = "session.participated"
	SubjectSessionLeft         = "session.left"
)

// EventPublisher is implemented by NatsPublisher and NopPublisher
type EventPublisher interface {
	PublishSessionCreated(session *models.Session) error
	PublishParticipated(sessionID, userID int64) error
	PublishLeft(sessionID, userID int64) error
	Close()
}

// SessionCreatedEvent is published when an admin adds a session
type SessionCreatedEvent struct {
	EventType string    `json:"event_type"`
	SessionID int64     `json:"session_id"`
	TeacherID int64     `json:"teacher_id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
}

// ParticipationEvent is published when a user joins or leaves a session
type ParticipationEvent struct {
	EventType  string    `json:"event_type"`
	SessionID  int64     `json:"session_id"`
	UserID     int64     `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NatsPublisher publishes JSON events on core NATS subjects
type NatsPublisher struct {
	conn    *nats.Conn
	publish func(subject string, data []byte) error
}

// NewNatsPublisher connects to natsURL
func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("yogastudio-api"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Printf("Event publisher connected to NATS at %s", nc.ConnectedUrl())
	return &NatsPublisher{conn: nc, publish: nc.Publish}, nil
}

func (p *NatsPublisher) PublishSessionCreated(session *models.Session) error {
	return p.send(SubjectSessionCreated, SessionCreatedEvent{
		EventType: SubjectSessionCreated,
		SessionID: session.ID,
		TeacherID: session.TeacherID,
		Name:      session.Name,
		Date:      session.Date,
	})
}

func (p *NatsPublisher) PublishParticipated(sessionID, userID int64) error {
	return p.send(SubjectSessionParticipated, ParticipationEvent{
		EventType:  SubjectSessionParticipated,
		SessionID:  sessionID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *NatsPublisher) PublishLeft(sessionID, userID int64) error {
	return p.send(SubjectSessionLeft, ParticipationEvent{
		EventType:  SubjectSessionLeft,
		SessionID:  sessionID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *NatsPublisher) send(subject string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", subject, err)
	}

	if err := p.publish(subject, data); err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	log.Printf("Published event to NATS on subject '%s'", subject)
	return nil
}

// Close drains pending messages and closes the connection
func (p *NatsPublisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		log.Printf("Error draining NATS connection: %v", err)
	}
}

// NopPublisher discards events. Used when NATS_URL is unset.
type NopPublisher struct{}

func (NopPublisher) PublishSessionCreated(*models.Session) error { return nil }
func (NopPublisher) PublishParticipated(int64, int64) error      { return nil }
func (NopPublisher) PublishLeft(int64, int64) error              { return nil }
func (NopPublisher) Close()                                      {}

// New returns a NATS publisher for natsURL, or a NopPublisher when it is empty
func New(natsURL string) (EventPublisher, error) {
	if natsURL == "" {
		log.Println("Event publishing disabled: NATS_URL not configured")
		return NopPublisher{}, nil
	}
	p, err := NewNatsPublisher(natsURL)
	if err != nil {
		return nil, err
	}
	return p, nil
}
