package message

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is the gift note a participant writes for whoever draws them.
// At most one message exists per participant and year; the assignment
// precondition only cares that a non-empty one exists.
type Message struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ParticipantID uuid.UUID `json:"participant_id" gorm:"type:uuid;not null"`
	Year          int       `json:"year" gorm:"not null"`
	Text          string    `json:"text" gorm:"type:text;not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name
func (Message) TableName() string {
	return "messages"
}

func New(participantID uuid.UUID, year int, text string) *Message {
	return &Message{
		ID:            uuid.New(),
		ParticipantID: participantID,
		Year:          year,
		Text:          text,
		CreatedAt:     time.Now(),
	}
}

// Validate checks if the message data is valid
func (m *Message) Validate() error {
	if m.ParticipantID == uuid.Nil {
		return fmt.Errorf("participant_id is required")
	}
	if m.Year <= 0 {
		return fmt.Errorf("year must be positive")
	}
	if strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("message text must not be empty")
	}
	return nil
}
