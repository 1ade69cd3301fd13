package migrations

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Custom types for GORM

type ParticipantRole string

const (
	ParticipantRoleAdmin       ParticipantRole = "admin"
	ParticipantRoleParticipant ParticipantRole = "participant"
)

func (pr *ParticipantRole) Scan(value any) error {
	if value == nil {
		*pr = ParticipantRoleParticipant
		return nil
	}
	if str, ok := value.(string); ok {
		*pr = ParticipantRole(str)
		return nil
	}
	return fmt.Errorf("cannot scan %T into ParticipantRole", value)
}

func (pr ParticipantRole) Value() (driver.Value, error) {
	return string(pr), nil
}

// Core models for the Wichteln system

// Participant is a member of the round
type Participant struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name         string          `gorm:"uniqueIndex;not null" json:"name"`
	PasswordHash string          `gorm:"column:password_hash;not null" json:"-"`
	Role         ParticipantRole `gorm:"type:participant_role;not null;default:'participant'" json:"role"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	GivenPairings    []Pairing `gorm:"foreignKey:GiverID" json:"given_pairings,omitempty"`
	ReceivedPairings []Pairing `gorm:"foreignKey:ReceiverID" json:"received_pairings,omitempty"`
	Messages         []Message `gorm:"foreignKey:ParticipantID" json:"messages,omitempty"`
}

func (Participant) TableName() string {
	return "participants"
}

// Pairing is one giver→receiver assignment for a year. Immutable.
type Pairing struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	GiverID    uuid.UUID `gorm:"type:uuid;not null" json:"giver_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null" json:"receiver_id"`
	Year       int       `gorm:"not null" json:"year"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Giver    Participant `gorm:"foreignKey:GiverID" json:"giver,omitempty"`
	Receiver Participant `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

func (Pairing) TableName() string {
	return "pairings"
}

// Message is the yearly gift note a participant writes
type Message struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null" json:"participant_id"`
	Year          int       `gorm:"not null" json:"year"`
	Text          string    `gorm:"type:text;not null" json:"text"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Participant Participant `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// AllModels returns a slice of all models for migration
func AllModels() []any {
	return []any{
		&Participant{},
		&Pairing{},
		&Message{},
	}
}
