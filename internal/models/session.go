package models

import (
	"slices"
	"time"
)

// Session is a scheduled yoga class. Not to be confused with the login
// session, which is SessionInformation.
type Session struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required,max=50"`
	Description string    `json:"description" validate:"required,max=2500"`
	Date        time.Time `json:"date" validate:"required"`
	TeacherID   int64     `json:"teacher_id" validate:"required"`
	Users       []int64   `json:"users"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasParticipant reports whether userID is in the participant list
func (s *Session) HasParticipant(userID int64) bool {
	return slices.Contains(s.Users, userID)
}

// ParticipantCount returns the number of distinct participants
func (s *Session) ParticipantCount() int {
	seen := make(map[int64]struct{}, len(s.Users))
	for _, id := range s.Users {
		seen[id] = struct{}{}
	}
	return len(seen)
}
