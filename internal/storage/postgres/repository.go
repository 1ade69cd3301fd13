package postgres

import (
	"github.com/google/uuid"

	"github.com/wichtelrunde/wichtel-api/internal/domain/assignment"
	"github.com/wichtelrunde/wichtel-api/internal/domain/message"
	"github.com/wichtelrunde/wichtel-api/internal/domain/participant"
)

// ParticipantRepository defines the methods to interact with participants in the DB.
type ParticipantRepository interface {
	Create(p *participant.Participant) error
	GetByID(id string) (*participant.Participant, error)
	GetByName(name string) (*participant.Participant, error)
	GetAll() ([]*participant.Participant, error)
	Update(p *participant.Participant) error
	Delete(id string) error
}

// PairingRepository defines the methods to interact with pairing records.
// It also serves the assignment engine as its history collaborator.
type PairingRepository interface {
	assignment.HistoryRepository

	CreateBatch(pairings []*assignment.Pairing) error
	GetByYear(year int) ([]*assignment.Pairing, error)
	GetByGiver(giverID uuid.UUID) ([]*assignment.Pairing, error)
	GetForGiverAndYear(giverID uuid.UUID, year int) (*assignment.Pairing, error)
	GetScoreboard() ([]*ScoreboardEntry, error)
}

// MessageRepository defines the methods to interact with gift messages.
// It also serves the assignment engine as its message-store collaborator.
type MessageRepository interface {
	assignment.MessageStore

	Create(m *message.Message) error
	GetByID(id string) (*message.Message, error)
	GetForYear(participantID uuid.UUID, year int) (*message.Message, error)
	Update(m *message.Message) error
	Delete(id string) error
}
