package assignment

import "github.com/google/uuid"

// History indexes past pairings by giver for constant-time repeat checks.
// It is a snapshot: the caller materializes all pairings before the target
// year and the engine never goes back to the store mid-run.
type History struct {
	receivers map[uuid.UUID]map[uuid.UUID]bool
}

// NewHistory builds a history lookup from past pairing rows.
func NewHistory(pairings []*Pairing) History {
	receivers := make(map[uuid.UUID]map[uuid.UUID]bool)
	for _, p := range pairings {
		if receivers[p.GiverID] == nil {
			receivers[p.GiverID] = make(map[uuid.UUID]bool)
		}
		receivers[p.GiverID][p.ReceiverID] = true
	}
	return History{receivers: receivers}
}

// HadReceiver reports whether the giver already drew this receiver in any
// recorded year.
func (h History) HadReceiver(giverID, receiverID uuid.UUID) bool {
	return h.receivers[giverID][receiverID]
}

// ReceiverCount returns how many distinct receivers a giver has had.
func (h History) ReceiverCount(giverID uuid.UUID) int {
	return len(h.receivers[giverID])
}
