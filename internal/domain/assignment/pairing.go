package assignment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Pairing records that a giver draws a receiver for a given year.
// Rows are immutable once created; the union of all pairings for years
// before a target year is the history the matcher must respect.
type Pairing struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	GiverID    uuid.UUID `json:"giver_id" gorm:"type:uuid;not null"`
	ReceiverID uuid.UUID `json:"receiver_id" gorm:"type:uuid;not null"`
	Year       int       `json:"year" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name
func (Pairing) TableName() string {
	return "pairings"
}

func NewPairing(giverID, receiverID uuid.UUID, year int) *Pairing {
	return &Pairing{
		ID:         uuid.New(),
		GiverID:    giverID,
		ReceiverID: receiverID,
		Year:       year,
		CreatedAt:  time.Now(),
	}
}

// Validate checks if the pairing data is valid
func (p *Pairing) Validate() error {
	if p.GiverID == uuid.Nil {
		return fmt.Errorf("giver_id is required")
	}
	if p.ReceiverID == uuid.Nil {
		return fmt.Errorf("receiver_id is required")
	}
	if p.GiverID == p.ReceiverID {
		return fmt.Errorf("giver cannot draw themselves")
	}
	if p.Year <= 0 {
		return fmt.Errorf("year must be positive")
	}
	return nil
}

// Matching maps each giver to the receiver they drew in one run.
type Matching map[uuid.UUID]uuid.UUID

// ReceiverClaimed reports whether a receiver is already taken this run.
func (m Matching) ReceiverClaimed(receiverID uuid.UUID) bool {
	for _, r := range m {
		if r == receiverID {
			return true
		}
	}
	return false
}

// Pairings converts a matching into pairing rows for the given year,
// ready to be persisted by the caller.
func (m Matching) Pairings(year int) []*Pairing {
	pairings := make([]*Pairing, 0, len(m))
	for giver, receiver := range m {
		pairings = append(pairings, NewPairing(giver, receiver, year))
	}
	return pairings
}

// AssignmentRequest describes one run of the engine for a target year.
type AssignmentRequest struct {
	Year               int         `json:"year"`
	ParticipantIDs     []uuid.UUID `json:"participant_ids"`
	RequireAllMessages bool        `json:"require_all_messages"`
}

// Validate checks if the request data is valid
func (r *AssignmentRequest) Validate() error {
	if r.Year <= 0 {
		return fmt.Errorf("year must be positive")
	}
	seen := make(map[uuid.UUID]bool, len(r.ParticipantIDs))
	for _, id := range r.ParticipantIDs {
		if id == uuid.Nil {
			return fmt.Errorf("participant ids must not be nil")
		}
		if seen[id] {
			return fmt.Errorf("duplicate participant id %s", id)
		}
		seen[id] = true
	}
	return nil
}
