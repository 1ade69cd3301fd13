package assignment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairingValidate(t *testing.T) {
	giver := uuid.New()
	receiver := uuid.New()

	assert.NoError(t, NewPairing(giver, receiver, 2025).Validate())

	tests := []struct {
		name    string
		pairing *Pairing
	}{
		{"missing giver", &Pairing{ReceiverID: receiver, Year: 2025}},
		{"missing receiver", &Pairing{GiverID: giver, Year: 2025}},
		{"self pairing", &Pairing{GiverID: giver, ReceiverID: giver, Year: 2025}},
		{"zero year", &Pairing{GiverID: giver, ReceiverID: receiver}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.pairing.Validate())
		})
	}
}

func TestMatchingReceiverClaimed(t *testing.T) {
	giver := uuid.New()
	receiver := uuid.New()

	matching := Matching{giver: receiver}

	assert.True(t, matching.ReceiverClaimed(receiver))
	assert.False(t, matching.ReceiverClaimed(giver))
}

func TestMatchingPairings(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	matching := Matching{a: b, b: c, c: a}

	pairings := matching.Pairings(2025)
	require.Len(t, pairings, 3)

	byGiver := make(map[uuid.UUID]uuid.UUID, len(pairings))
	for _, p := range pairings {
		assert.Equal(t, 2025, p.Year)
		assert.NotEqual(t, uuid.Nil, p.ID)
		byGiver[p.GiverID] = p.ReceiverID
	}
	assert.Equal(t, map[uuid.UUID]uuid.UUID(matching), byGiver)
}

func TestAssignmentRequestValidate(t *testing.T) {
	id := uuid.New()

	valid := AssignmentRequest{Year: 2025, ParticipantIDs: []uuid.UUID{id, uuid.New()}}
	assert.NoError(t, valid.Validate())

	zeroYear := AssignmentRequest{ParticipantIDs: []uuid.UUID{id}}
	assert.Error(t, zeroYear.Validate())

	nilID := AssignmentRequest{Year: 2025, ParticipantIDs: []uuid.UUID{uuid.Nil}}
	assert.Error(t, nilID.Validate())

	duplicate := AssignmentRequest{Year: 2025, ParticipantIDs: []uuid.UUID{id, id}}
	assert.Error(t, duplicate.Validate())
}
