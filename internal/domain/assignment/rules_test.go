package assignment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsLegalRejectsSelfAssignment(t *testing.T) {
	id := uuid.New()

	assert.False(t, IsLegal(id, id, NewHistory(nil), Matching{}))
}

func TestIsLegalRejectsClaimedReceiver(t *testing.T) {
	giver := uuid.New()
	other := uuid.New()
	receiver := uuid.New()

	current := Matching{other: receiver}

	assert.False(t, IsLegal(giver, receiver, NewHistory(nil), current))
}

func TestIsLegalRejectsHistoricalRepeat(t *testing.T) {
	giver := uuid.New()
	receiver := uuid.New()

	history := NewHistory([]*Pairing{
		NewPairing(giver, receiver, 2021),
	})

	assert.False(t, IsLegal(giver, receiver, history, Matching{}))
}

func TestIsLegalAllowsFreshPair(t *testing.T) {
	giver := uuid.New()
	receiver := uuid.New()

	history := NewHistory([]*Pairing{
		NewPairing(receiver, giver, 2021), // reverse direction does not block
	})

	assert.True(t, IsLegal(giver, receiver, history, Matching{}))
}

func TestHistoryIndexesByGiver(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	history := NewHistory([]*Pairing{
		NewPairing(a, b, 2022),
		NewPairing(a, c, 2023),
		NewPairing(b, c, 2023),
	})

	assert.True(t, history.HadReceiver(a, b))
	assert.True(t, history.HadReceiver(a, c))
	assert.True(t, history.HadReceiver(b, c))
	assert.False(t, history.HadReceiver(b, a))
	assert.False(t, history.HadReceiver(c, a))

	assert.Equal(t, 2, history.ReceiverCount(a))
	assert.Equal(t, 1, history.ReceiverCount(b))
	assert.Equal(t, 0, history.ReceiverCount(c))
}
