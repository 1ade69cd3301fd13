package assignment

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHistory is an in-memory HistoryRepository.
type fakeHistory struct {
	pairings []*Pairing
}

func (f *fakeHistory) PairingsBefore(year int) ([]*Pairing, error) {
	var out []*Pairing
	for _, p := range f.pairings {
		if p.Year < year {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeHistory) ExistsForYear(year int) (bool, error) {
	for _, p := range f.pairings {
		if p.Year == year {
			return true, nil
		}
	}
	return false, nil
}

// fakeMessages is an in-memory MessageStore keyed by participant and year.
type fakeMessages struct {
	submitted map[uuid.UUID]map[int]bool
}

func newFakeMessages() *fakeMessages {
	return &fakeMessages{submitted: make(map[uuid.UUID]map[int]bool)}
}

func (f *fakeMessages) submit(participantID uuid.UUID, year int) {
	if f.submitted[participantID] == nil {
		f.submitted[participantID] = make(map[int]bool)
	}
	f.submitted[participantID][year] = true
}

func (f *fakeMessages) HasMessage(participantID uuid.UUID, year int) (bool, error) {
	return f.submitted[participantID][year], nil
}

func newTestService(history *fakeHistory, messages *fakeMessages) *Service {
	return NewService(history, messages, NewSeededMatcher(DefaultMaxAttempts, DefaultBacktrackWindow, 42))
}

func submitAll(messages *fakeMessages, ids []uuid.UUID, year int) {
	for _, id := range ids {
		messages.submit(id, year)
	}
}

func TestGenerateRunProducesValidPairings(t *testing.T) {
	participants := newParticipants(5)
	messages := newFakeMessages()
	submitAll(messages, participants, 2025)

	service := newTestService(&fakeHistory{}, messages)

	pairings, err := service.GenerateRun(AssignmentRequest{
		Year:               2025,
		ParticipantIDs:     participants,
		RequireAllMessages: true,
	})
	require.NoError(t, err)
	require.Len(t, pairings, len(participants))

	matching := make(Matching, len(pairings))
	for _, p := range pairings {
		assert.Equal(t, 2025, p.Year)
		assert.NoError(t, p.Validate())
		matching[p.GiverID] = p.ReceiverID
	}
	assertDerangement(t, participants, matching)
}

func TestGenerateRunRejectsTooFewParticipants(t *testing.T) {
	service := newTestService(&fakeHistory{}, newFakeMessages())

	_, err := service.GenerateRun(AssignmentRequest{
		Year:           2025,
		ParticipantIDs: newParticipants(1),
	})
	assert.ErrorIs(t, err, ErrInsufficientParticipants)
}

func TestGenerateRunRejectsAssignedYear(t *testing.T) {
	participants := newParticipants(3)
	history := &fakeHistory{pairings: []*Pairing{
		NewPairing(participants[0], participants[1], 2025),
	}}
	messages := newFakeMessages()
	submitAll(messages, participants, 2025)

	service := newTestService(history, messages)

	_, err := service.GenerateRun(AssignmentRequest{
		Year:               2025,
		ParticipantIDs:     participants,
		RequireAllMessages: true,
	})
	assert.ErrorIs(t, err, ErrYearAlreadyAssigned)
}

func TestGenerateRunReportsMissingMessages(t *testing.T) {
	participants := newParticipants(3)
	messages := newFakeMessages()
	messages.submit(participants[0], 2025)
	messages.submit(participants[1], 2025)
	// participants[2] owes a message

	service := newTestService(&fakeHistory{}, messages)

	req := AssignmentRequest{
		Year:               2025,
		ParticipantIDs:     participants,
		RequireAllMessages: true,
	}

	_, err := service.GenerateRun(req)
	var precondition *PreconditionError
	require.True(t, errors.As(err, &precondition))
	assert.Equal(t, []uuid.UUID{participants[2]}, precondition.Missing)

	// A retry without any change reports the identical set.
	_, err = service.GenerateRun(req)
	var again *PreconditionError
	require.True(t, errors.As(err, &again))
	assert.Equal(t, precondition.Missing, again.Missing)
}

func TestGenerateRunSkipsMessageCheckWhenDisabled(t *testing.T) {
	participants := newParticipants(3)

	service := newTestService(&fakeHistory{}, newFakeMessages())

	pairings, err := service.GenerateRun(AssignmentRequest{
		Year:               2025,
		ParticipantIDs:     participants,
		RequireAllMessages: false,
	})
	require.NoError(t, err)
	assert.Len(t, pairings, 3)
}

func TestGenerateRunHonorsHistoryFromEarlierYears(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	history := &fakeHistory{pairings: []*Pairing{
		NewPairing(a, b, 2024),
	}}
	messages := newFakeMessages()
	submitAll(messages, []uuid.UUID{a, b}, 2025)

	service := newTestService(history, messages)

	_, err := service.GenerateRun(AssignmentRequest{
		Year:               2025,
		ParticipantIDs:     []uuid.UUID{a, b},
		RequireAllMessages: true,
	})

	var infeasible *InfeasibleError
	require.True(t, errors.As(err, &infeasible))
	assert.Equal(t, ReasonNoCandidates, infeasible.Reason)
	assert.Equal(t, a, infeasible.Giver)
}

func TestGenerateRunIgnoresPairingsFromLaterYears(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	// A 2026 row must not constrain a 2025 run.
	history := &fakeHistory{pairings: []*Pairing{
		NewPairing(a, b, 2026),
	}}
	messages := newFakeMessages()
	submitAll(messages, []uuid.UUID{a, b}, 2025)

	service := newTestService(history, messages)

	pairings, err := service.GenerateRun(AssignmentRequest{
		Year:               2025,
		ParticipantIDs:     []uuid.UUID{a, b},
		RequireAllMessages: true,
	})
	require.NoError(t, err)
	assert.Len(t, pairings, 2)
}

func TestGenerateRunRejectsDuplicateParticipants(t *testing.T) {
	id := uuid.New()
	service := newTestService(&fakeHistory{}, newFakeMessages())

	_, err := service.GenerateRun(AssignmentRequest{
		Year:           2025,
		ParticipantIDs: []uuid.UUID{id, id},
	})
	assert.Error(t, err)
}
