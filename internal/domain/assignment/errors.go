package assignment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInsufficientParticipants is returned when fewer than two participants
// are eligible for a run.
var ErrInsufficientParticipants = errors.New("at least two participants are required")

// ErrYearAlreadyAssigned is returned when pairings already exist for the
// target year. Pairings are immutable, so a year can only be drawn once.
var ErrYearAlreadyAssigned = errors.New("pairings already exist for this year")

// PreconditionError reports participants that still owe a gift message for
// the target year. The engine does not attempt a matching in this case.
type PreconditionError struct {
	Missing []uuid.UUID
}

func (e *PreconditionError) Error() string {
	ids := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		ids[i] = id.String()
	}
	return fmt.Sprintf("missing messages for participants: %s", strings.Join(ids, ", "))
}

// InfeasibleReason classifies why no matching could be produced.
type InfeasibleReason string

const (
	// ReasonNoCandidates means a giver's history already covers every other
	// participant, so the no-repeat rule cannot be satisfied for them.
	ReasonNoCandidates InfeasibleReason = "no_candidates"

	// ReasonNoValidPermutation means the retry budget ran out before a full
	// matching was found. A rerun with a fresh seed may still succeed.
	ReasonNoValidPermutation InfeasibleReason = "no_valid_permutation"
)

// InfeasibleError reports that no matching satisfying all constraints was
// found. The engine never relaxes the no-repeat rule on its own; the
// operator decides whether to prune history or change the participant set.
type InfeasibleError struct {
	Reason InfeasibleReason
	Giver  uuid.UUID
}

func (e *InfeasibleError) Error() string {
	if e.Reason == ReasonNoCandidates {
		return fmt.Sprintf("no legal receivers left for participant %s", e.Giver)
	}
	return "no valid permutation found within the attempt budget"
}
