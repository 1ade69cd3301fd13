package assignment

import "github.com/google/uuid"

// Collaborator interfaces for the assignment service. Implemented by the
// postgres repositories; tests use in-memory fakes.

// HistoryRepository supplies the pairing record the no-repeat rule is
// checked against.
type HistoryRepository interface {
	// PairingsBefore returns every pairing from years strictly before year.
	PairingsBefore(year int) ([]*Pairing, error)

	// ExistsForYear reports whether any pairing is already stored for year.
	ExistsForYear(year int) (bool, error)
}

// MessageStore answers the message-submission precondition.
type MessageStore interface {
	HasMessage(participantID uuid.UUID, year int) (bool, error)
}
