package assignment

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/wichtelrunde/wichtel-api/internal/logger"
)

const (
	// DefaultMaxAttempts bounds the number of construction passes before
	// the matcher gives up and reports infeasibility.
	DefaultMaxAttempts = 1000

	// DefaultBacktrackWindow is how many assignments a pass may undo when
	// it runs into a giver with no legal receiver left.
	DefaultBacktrackWindow = 3
)

// Matcher produces a full giver→receiver matching over a participant set,
// honoring the no-self and no-repeat constraints. Construction is a
// randomized greedy pass with a small backtrack window instead of full
// backtracking search, so runtime stays bounded for realistic group sizes.
// Safe for concurrent use; runs sharing one matcher are serialized on its
// random source.
type Matcher struct {
	maxAttempts     int
	backtrackWindow int

	mu  sync.Mutex // guards rng
	rng *rand.Rand

	log *log.Logger
}

// NewMatcher creates a matcher with a fresh random seed.
func NewMatcher(maxAttempts, backtrackWindow int) *Matcher {
	return NewSeededMatcher(maxAttempts, backtrackWindow, time.Now().UnixNano())
}

// NewSeededMatcher creates a matcher with an explicit seed. Given the same
// seed and inputs, FindMatching returns the same matching, which makes runs
// reproducible in tests.
func NewSeededMatcher(maxAttempts, backtrackWindow int, seed int64) *Matcher {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if backtrackWindow <= 0 {
		backtrackWindow = DefaultBacktrackWindow
	}
	return &Matcher{
		maxAttempts:     maxAttempts,
		backtrackWindow: backtrackWindow,
		rng:             rand.New(rand.NewSource(seed)),
		log:             logger.Matcher(),
	}
}

// FindMatching returns a complete matching for the participants or an
// *InfeasibleError. It never returns a partial matching.
func (m *Matcher) FindMatching(participants []uuid.UUID, history History) (Matching, error) {
	if len(participants) < 2 {
		return nil, ErrInsufficientParticipants
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pools, err := m.buildCandidatePools(participants, history)
	if err != nil {
		return nil, err
	}

	order := make([]uuid.UUID, len(participants))
	copy(order, participants)

	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		m.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		if matching, ok := m.constructPass(order, pools, history); ok {
			m.log.Debug("Matching found", "participants", len(participants), "attempt", attempt)
			return matching, nil
		}
	}

	m.log.Warn("Attempt budget exhausted without a valid matching",
		"participants", len(participants), "max_attempts", m.maxAttempts)
	return nil, &InfeasibleError{Reason: ReasonNoValidPermutation}
}

// buildCandidatePools precomputes, per giver, every receiver not excluded
// by the no-self and no-repeat rules. An empty pool means the constraints
// are unsatisfiable for that giver regardless of how the rest are matched.
func (m *Matcher) buildCandidatePools(participants []uuid.UUID, history History) (map[uuid.UUID][]uuid.UUID, error) {
	pools := make(map[uuid.UUID][]uuid.UUID, len(participants))
	for _, giver := range participants {
		pool := make([]uuid.UUID, 0, len(participants)-1)
		for _, receiver := range participants {
			if receiver == giver || history.HadReceiver(giver, receiver) {
				continue
			}
			pool = append(pool, receiver)
		}
		if len(pool) == 0 {
			m.log.Warn("Participant has no legal receivers left",
				"giver", giver, "history_receivers", history.ReceiverCount(giver))
			return nil, &InfeasibleError{Reason: ReasonNoCandidates, Giver: giver}
		}
		pools[giver] = pool
	}
	return pools, nil
}

// constructPass walks the givers in the given order, picking a random legal
// receiver for each. When a giver is stuck it undoes up to backtrackWindow
// earlier picks and retries; the number of repairs per pass is bounded by
// the participant count, so a pass always terminates.
func (m *Matcher) constructPass(order []uuid.UUID, pools map[uuid.UUID][]uuid.UUID, history History) (Matching, bool) {
	matching := make(Matching, len(order))
	repairs := len(order)

	i := 0
	for i < len(order) {
		giver := order[i]

		var candidates []uuid.UUID
		for _, receiver := range pools[giver] {
			if IsLegal(giver, receiver, history, matching) {
				candidates = append(candidates, receiver)
			}
		}

		if len(candidates) == 0 {
			if repairs == 0 || i == 0 {
				return nil, false
			}
			repairs--
			for undone := 0; undone < m.backtrackWindow && i > 0; undone++ {
				i--
				delete(matching, order[i])
			}
			continue
		}

		matching[giver] = candidates[m.rng.Intn(len(candidates))]
		i++
	}

	return matching, true
}
