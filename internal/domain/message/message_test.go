package message

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewMessage(t *testing.T) {
	participantID := uuid.New()

	m := New(participantID, 2025, "A good book")

	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Equal(t, participantID, m.ParticipantID)
	assert.Equal(t, 2025, m.Year)
	assert.NoError(t, m.Validate())
}

func TestValidate(t *testing.T) {
	participantID := uuid.New()

	tests := []struct {
		name    string
		message *Message
	}{
		{"missing participant", &Message{Year: 2025, Text: "hi"}},
		{"zero year", &Message{ParticipantID: participantID, Text: "hi"}},
		{"empty text", &Message{ParticipantID: participantID, Year: 2025, Text: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.message.Validate())
		})
	}
}
