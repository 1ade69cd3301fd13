package assignment

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/wichtelrunde/wichtel-api/internal/logger"
)

// Service orchestrates one assignment run: it checks preconditions, feeds
// the matcher a history snapshot and hands the resulting pairings back to
// the caller. It never writes anything itself, so a failed run leaves no
// trace and can simply be retried.
type Service struct {
	history  HistoryRepository
	messages MessageStore
	matcher  *Matcher
	log      *log.Logger
}

func NewService(history HistoryRepository, messages MessageStore, matcher *Matcher) *Service {
	return &Service{
		history:  history,
		messages: messages,
		matcher:  matcher,
		log:      logger.Service("assignment"),
	}
}

// GenerateRun produces the pairings for the requested year.
//
// Failure modes: ErrInsufficientParticipants, ErrYearAlreadyAssigned,
// *PreconditionError (participants still owe a message) and
// *InfeasibleError (no matching satisfies the constraints). Any returned
// pairing set is a derangement of the participants with no historical
// repeats.
func (s *Service) GenerateRun(req AssignmentRequest) ([]*Pairing, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid assignment request: %w", err)
	}

	if len(req.ParticipantIDs) < 2 {
		s.log.Warn("Run rejected, not enough participants",
			"year", req.Year, "participants", len(req.ParticipantIDs))
		return nil, ErrInsufficientParticipants
	}

	exists, err := s.history.ExistsForYear(req.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing pairings: %w", err)
	}
	if exists {
		s.log.Warn("Run rejected, year already assigned", "year", req.Year)
		return nil, ErrYearAlreadyAssigned
	}

	if req.RequireAllMessages {
		missing, err := s.missingMessages(req.ParticipantIDs, req.Year)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			s.log.Warn("Run rejected, participants still owe messages",
				"year", req.Year, "missing", len(missing))
			return nil, &PreconditionError{Missing: missing}
		}
	}

	past, err := s.history.PairingsBefore(req.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load pairing history: %w", err)
	}

	matching, err := s.matcher.FindMatching(req.ParticipantIDs, NewHistory(past))
	if err != nil {
		return nil, err
	}

	s.log.Info("Assignment run generated",
		"year", req.Year, "participants", len(req.ParticipantIDs), "history_rows", len(past))
	return matching.Pairings(req.Year), nil
}

// missingMessages returns the participants without a message for the year,
// in a stable order so repeated runs report the same set.
func (s *Service) missingMessages(participantIDs []uuid.UUID, year int) ([]uuid.UUID, error) {
	var missing []uuid.UUID
	for _, id := range participantIDs {
		ok, err := s.messages.HasMessage(id, year)
		if err != nil {
			return nil, fmt.Errorf("failed to check message for participant %s: %w", id, err)
		}
		if !ok {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		return missing[i].String() < missing[j].String()
	})
	return missing, nil
}
