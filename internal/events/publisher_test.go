package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogastudio/internal/models"
)

type sent struct {
	subject string
	data    []byte
}

func capturingPublisher(fail error) (*NatsPublisher, *[]sent) {
	var out []sent
	p := &NatsPublisher{publish: func(subject string, data []byte) error {
		if fail != nil {
			return fail
		}
		out = append(out, sent{subject, data})
		return nil
	}}
	return p, &out
}

func TestPublishSessionCreated(t *testing.T) {
	p, out := capturingPublisher(nil)
	date := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	err := p.PublishSessionCreated(&models.Session{ID: 3, Name: "Morning flow", TeacherID: 1, Date: date})
	require.NoError(t, err)
	require.Len(t, *out, 1)
	assert.Equal(t, SubjectSessionCreated, (*out)[0].subject)

	var event SessionCreatedEvent
	require.NoError(t, json.Unmarshal((*out)[0].data, &event))
	assert.Equal(t, "session.created", event.EventType)
	assert.Equal(t, int64(3), event.SessionID)
	assert.True(t, date.Equal(event.Date))
}

func TestPublishParticipation(t *testing.T) {
	p, out := capturingPublisher(nil)

	require.NoError(t, p.PublishParticipated(1, 7))
	require.NoError(t, p.PublishLeft(1, 7))
	require.Len(t, *out, 2)

	subjects := []string{(*out)[0].subject, (*out)[1].subject}
	assert.Equal(t, []string{SubjectSessionParticipated, SubjectSessionLeft}, subjects)

	var event ParticipationEvent
	require.NoError(t, json.Unmarshal((*out)[1].data, &event))
	assert.Equal(t, int64(7), event.UserID)
	assert.Equal(t, "session.left", event.EventType)
}

func TestPublishFailureIsReturned(t *testing.T) {
	boom := errors.New("nats: connection closed")
	p, _ := capturingPublisher(boom)

	err := p.PublishParticipated(1, 2)
	assert.ErrorIs(t, err, boom)
}

func TestNewWithoutURLIsNop(t *testing.T) {
	p, err := New("")
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.PublishParticipated(1, 2))
	p.Close()
}
