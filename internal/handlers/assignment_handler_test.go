package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichtelrunde/wichtel-api/internal/domain/assignment"
	"github.com/wichtelrunde/wichtel-api/internal/domain/participant"
	"github.com/wichtelrunde/wichtel-api/internal/storage/postgres"
)

// stubParticipantRepo serves the handler's participant lookups in memory.
type stubParticipantRepo struct {
	participants []*participant.Participant
}

func (s *stubParticipantRepo) Create(p *participant.Participant) error { return errors.New("unused") }
func (s *stubParticipantRepo) GetByID(id string) (*participant.Participant, error) {
	for _, p := range s.participants {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return nil, errors.New("participant not found")
}
func (s *stubParticipantRepo) GetByName(name string) (*participant.Participant, error) {
	return nil, errors.New("participant not found")
}
func (s *stubParticipantRepo) GetAll() ([]*participant.Participant, error) {
	return s.participants, nil
}
func (s *stubParticipantRepo) Update(p *participant.Participant) error { return errors.New("unused") }
func (s *stubParticipantRepo) Delete(id string) error                  { return errors.New("unused") }

// stubPairingRepo stores pairings in memory and serves the engine's
// history lookups.
type stubPairingRepo struct {
	pairings []*assignment.Pairing
}

func (s *stubPairingRepo) PairingsBefore(year int) ([]*assignment.Pairing, error) {
	var out []*assignment.Pairing
	for _, p := range s.pairings {
		if p.Year < year {
			out = append(out, p)
		}
	}
	return out, nil
}
func (s *stubPairingRepo) ExistsForYear(year int) (bool, error) {
	for _, p := range s.pairings {
		if p.Year == year {
			return true, nil
		}
	}
	return false, nil
}
func (s *stubPairingRepo) CreateBatch(pairings []*assignment.Pairing) error {
	s.pairings = append(s.pairings, pairings...)
	return nil
}
func (s *stubPairingRepo) GetByYear(year int) ([]*assignment.Pairing, error) {
	var out []*assignment.Pairing
	for _, p := range s.pairings {
		if p.Year == year {
			out = append(out, p)
		}
	}
	return out, nil
}
func (s *stubPairingRepo) GetByGiver(giverID uuid.UUID) ([]*assignment.Pairing, error) {
	return nil, nil
}
func (s *stubPairingRepo) GetForGiverAndYear(giverID uuid.UUID, year int) (*assignment.Pairing, error) {
	return nil, errors.New("pairing not found")
}
func (s *stubPairingRepo) GetScoreboard() ([]*postgres.ScoreboardEntry, error) { return nil, nil }

// stubMessageStore answers the engine's message precondition.
type stubMessageStore struct {
	submitted map[uuid.UUID]bool
}

func (s *stubMessageStore) HasMessage(participantID uuid.UUID, year int) (bool, error) {
	return s.submitted[participantID], nil
}

func newRoundParticipants(n int) []*participant.Participant {
	out := make([]*participant.Participant, n)
	for i := range out {
		out[i] = &participant.Participant{
			ID:   uuid.New(),
			Name: "participant-" + uuid.NewString()[:8],
			Role: participant.RoleParticipant,
		}
	}
	return out
}

func postGenerate(t *testing.T, handler *AssignmentHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/assignments/generate", handler.GenerateRun)

	req, err := http.NewRequest(http.MethodPost, "/api/assignments/generate", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newGenerateHandler(participants []*participant.Participant, pairingRepo *stubPairingRepo, messages *stubMessageStore, requireDefault bool) *AssignmentHandler {
	matcher := assignment.NewSeededMatcher(assignment.DefaultMaxAttempts, assignment.DefaultBacktrackWindow, 5)
	service := assignment.NewService(pairingRepo, messages, matcher)
	return NewAssignmentHandler(service, &stubParticipantRepo{participants: participants}, pairingRepo, requireDefault)
}

func TestGenerateRunUsesConfiguredMessageDefault(t *testing.T) {
	participants := newRoundParticipants(3)
	noMessages := &stubMessageStore{submitted: map[uuid.UUID]bool{}}

	// Requests below omit require_all_messages, so the configured default
	// decides whether the message precondition applies.

	strict := newGenerateHandler(participants, &stubPairingRepo{}, noMessages, true)
	w := postGenerate(t, strict, `{"year": 2026}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"missing"`)

	relaxed := newGenerateHandler(participants, &stubPairingRepo{}, noMessages, false)
	w = postGenerate(t, relaxed, `{"year": 2026}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGenerateRunExplicitFlagOverridesDefault(t *testing.T) {
	participants := newRoundParticipants(3)
	noMessages := &stubMessageStore{submitted: map[uuid.UUID]bool{}}

	strict := newGenerateHandler(participants, &stubPairingRepo{}, noMessages, true)
	w := postGenerate(t, strict, `{"year": 2026, "require_all_messages": false}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGenerateRunPersistsPairings(t *testing.T) {
	participants := newRoundParticipants(4)
	pairingRepo := &stubPairingRepo{}

	handler := newGenerateHandler(participants, pairingRepo, &stubMessageStore{}, false)
	w := postGenerate(t, handler, `{"year": 2026}`)

	require.Equal(t, http.StatusCreated, w.Code)
	stored, err := pairingRepo.GetByYear(2026)
	require.NoError(t, err)
	assert.Len(t, stored, len(participants))
}

func TestGenerateRunInfeasibleReturns422WithDetails(t *testing.T) {
	participants := newRoundParticipants(2)

	// The only possible receiver is already in the giver's history.
	pairingRepo := &stubPairingRepo{pairings: []*assignment.Pairing{
		assignment.NewPairing(participants[0].ID, participants[1].ID, 2024),
	}}

	handler := newGenerateHandler(participants, pairingRepo, &stubMessageStore{}, false)
	w := postGenerate(t, handler, `{"year": 2026}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Success bool           `json:"success"`
		Details map[string]any `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "no_candidates", body.Details["reason"])
	assert.Equal(t, participants[0].ID.String(), body.Details["giver_id"])
}

func TestGenerateRunRejectsAssignedYearWith409(t *testing.T) {
	participants := newRoundParticipants(3)
	pairingRepo := &stubPairingRepo{pairings: []*assignment.Pairing{
		assignment.NewPairing(participants[0].ID, participants[1].ID, 2026),
	}}

	handler := newGenerateHandler(participants, pairingRepo, &stubMessageStore{}, false)
	w := postGenerate(t, handler, `{"year": 2026}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}
