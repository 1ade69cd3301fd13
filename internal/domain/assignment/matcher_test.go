package assignment

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParticipants(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

// assertDerangement checks that the matching is a bijection over the
// participants with nobody drawing themselves.
func assertDerangement(t *testing.T, participants []uuid.UUID, matching Matching) {
	t.Helper()

	require.Len(t, matching, len(participants))

	seen := make(map[uuid.UUID]bool, len(matching))
	for _, giver := range participants {
		receiver, ok := matching[giver]
		require.True(t, ok, "every participant must give")
		assert.NotEqual(t, giver, receiver, "nobody draws themselves")
		assert.False(t, seen[receiver], "every participant receives exactly once")
		seen[receiver] = true
	}
}

func TestFindMatchingProducesDerangement(t *testing.T) {
	participants := newParticipants(6)
	matcher := NewSeededMatcher(DefaultMaxAttempts, DefaultBacktrackWindow, 42)

	matching, err := matcher.FindMatching(participants, NewHistory(nil))
	require.NoError(t, err)

	assertDerangement(t, participants, matching)
}

func TestFindMatchingIsReproducibleForSeed(t *testing.T) {
	participants := newParticipants(8)

	first, err := NewSeededMatcher(DefaultMaxAttempts, DefaultBacktrackWindow, 7).
		FindMatching(participants, NewHistory(nil))
	require.NoError(t, err)

	second, err := NewSeededMatcher(DefaultMaxAttempts, DefaultBacktrackWindow, 7).
		FindMatching(participants, NewHistory(nil))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFindMatchingTwoParticipantsSwap(t *testing.T) {
	participants := newParticipants(2)
	matcher := NewSeededMatcher(DefaultMaxAttempts, DefaultBacktrackWindow, 1)

	matching, err := matcher.FindMatching(participants, NewHistory(nil))
	require.NoError(t, err)

	assert.Equal(t, participants[1], matching[participants[0]])
	assert.Equal(t, participants[0], matching[participants[1]])
}

func TestFindMatchingRespectsHistory(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	participants := []uuid.UUID{a, b, c}

	// With three participants and a→b blocked, only one derangement is left.
	history := NewHistory([]*Pairing{
		NewPairing(a, b, 2024),
	})

	matcher := NewSeededMatcher(DefaultMaxAttempts, DefaultBacktrackWindow, 3)
	matching, err := matcher.FindMatching(participants, history)
	require.NoError(t, err)

	assert.Equal(t, Matching{a: c, b: a, c: b}, matching)
}

func TestFindMatchingConcurrentUse(t *testing.T) {
	// One matcher serves every HTTP request, so parallel runs must not
	// corrupt the shared random source (run with -race).
	participants := newParticipants(6)
	matcher := NewSeededMatcher(DefaultMaxAttempts, DefaultBacktrackWindow, 11)

	const runs = 8
	results := make([]Matching, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = matcher.FindMatching(participants, NewHistory(nil))
		}(i)
	}
	wg.Wait()

	for i := 0; i < runs; i++ {
		require.NoError(t, errs[i])
		assertDerangement(t, participants, results[i])
	}
}

func TestFindMatchingInsufficientParticipants(t *testing.T) {
	matcher := NewSeededMatcher(DefaultMaxAttempts, DefaultBacktrackWindow, 1)

	_, err := matcher.FindMatching(newParticipants(1), NewHistory(nil))
	assert.ErrorIs(t, err, ErrInsufficientParticipants)

	_, err = matcher.FindMatching(nil, NewHistory(nil))
	assert.ErrorIs(t, err, ErrInsufficientParticipants)
}

func TestFindMatchingReportsExhaustedGiver(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	// a has already drawn b, and b is the only other participant.
	history := NewHistory([]*Pairing{
		NewPairing(a, b, 2024),
	})

	matcher := NewSeededMatcher(DefaultMaxAttempts, DefaultBacktrackWindow, 1)
	_, err := matcher.FindMatching([]uuid.UUID{a, b}, history)

	var infeasible *InfeasibleError
	require.True(t, errors.As(err, &infeasible))
	assert.Equal(t, ReasonNoCandidates, infeasible.Reason)
	assert.Equal(t, a, infeasible.Giver)
}

func TestFindMatchingReportsNoValidPermutation(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	// Every pool is non-empty, but b and c both only have a left, so no
	// full permutation exists and the attempt budget runs out.
	history := NewHistory([]*Pairing{
		NewPairing(b, c, 2023),
		NewPairing(c, b, 2024),
	})

	matcher := NewSeededMatcher(50, DefaultBacktrackWindow, 1)
	_, err := matcher.FindMatching([]uuid.UUID{a, b, c}, history)

	var infeasible *InfeasibleError
	require.True(t, errors.As(err, &infeasible))
	assert.Equal(t, ReasonNoValidPermutation, infeasible.Reason)
}

func TestFindMatchingNeverRepeatsAcrossYears(t *testing.T) {
	participants := newParticipants(5)
	matcher := NewSeededMatcher(DefaultMaxAttempts, DefaultBacktrackWindow, 99)

	var past []*Pairing
	history := NewHistory(nil)

	// Five participants support at most four derangement rounds before
	// every giver has seen every other participant.
	for year := 2021; year <= 2024; year++ {
		matching, err := matcher.FindMatching(participants, history)
		require.NoError(t, err, "year %d should still be feasible", year)

		assertDerangement(t, participants, matching)

		for giver, receiver := range matching {
			assert.False(t, history.HadReceiver(giver, receiver),
				"giver must not repeat a receiver from an earlier year")
		}

		past = append(past, matching.Pairings(year)...)
		history = NewHistory(past)
	}

	// The fifth round has no fresh receivers left for anyone.
	_, err := matcher.FindMatching(participants, history)
	var infeasible *InfeasibleError
	require.True(t, errors.As(err, &infeasible))
	assert.Equal(t, ReasonNoCandidates, infeasible.Reason)
}
