package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wichtelrunde/wichtel-api/internal/domain/assignment"
	"github.com/wichtelrunde/wichtel-api/internal/domain/participant"
	"github.com/wichtelrunde/wichtel-api/internal/logger"
	"github.com/wichtelrunde/wichtel-api/internal/response"
	"github.com/wichtelrunde/wichtel-api/internal/storage/postgres"
	"github.com/wichtelrunde/wichtel-api/internal/validation"
)

type AssignmentHandler struct {
	assignmentService *assignment.Service
	participantRepo   postgres.ParticipantRepository
	pairingRepo       postgres.PairingRepository

	// requireMessagesDefault applies when a request omits
	// require_all_messages; configured via DRAW_REQUIRE_MESSAGES.
	requireMessagesDefault bool
}

func NewAssignmentHandler(assignmentService *assignment.Service, participantRepo postgres.ParticipantRepository, pairingRepo postgres.PairingRepository, requireMessagesDefault bool) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService:      assignmentService,
		participantRepo:        participantRepo,
		pairingRepo:            pairingRepo,
		requireMessagesDefault: requireMessagesDefault,
	}
}

type GenerateRunRequest struct {
	Year               int      `json:"year" binding:"required"`
	ParticipantIDs     []string `json:"participant_ids"`
	RequireAllMessages *bool    `json:"require_all_messages"`
}

// GenerateRun handles POST /api/assignments/generate.
// It runs the engine for the target year and, on success, persists the
// pairings in one transaction before returning them.
func (h *AssignmentHandler) GenerateRun(c *gin.Context) {
	log := logger.Handler("assignment")

	var req GenerateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	if err := validation.ValidateYear(req.Year); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	participantIDs, err := h.resolveParticipants(req.ParticipantIDs)
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	requireMessages := h.requireMessagesDefault
	if req.RequireAllMessages != nil {
		requireMessages = *req.RequireAllMessages
	}

	pairings, err := h.assignmentService.GenerateRun(assignment.AssignmentRequest{
		Year:               req.Year,
		ParticipantIDs:     participantIDs,
		RequireAllMessages: requireMessages,
	})
	if err != nil {
		h.writeRunError(c, err)
		return
	}

	if err := h.pairingRepo.CreateBatch(pairings); err != nil {
		log.Error("Failed to persist generated pairings", "year", req.Year, "error", err)
		response.InternalServerError(c, "Failed to store pairings")
		return
	}

	log.Info("Assignment run stored", "year", req.Year, "pairings", len(pairings))
	response.SuccessResponse(c, http.StatusCreated, "Assignment run generated", gin.H{
		"year":     req.Year,
		"pairings": pairings,
		"count":    len(pairings),
	})
}

// GetRun handles GET /api/assignments/:year
func (h *AssignmentHandler) GetRun(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequestError(c, "year must be an integer")
		return
	}

	pairings, err := h.pairingRepo.GetByYear(year)
	if err != nil {
		response.InternalServerError(c, "Failed to retrieve pairings")
		return
	}

	if len(pairings) == 0 {
		response.NotFoundError(c, "No pairings for this year")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", gin.H{
		"year":     year,
		"pairings": pairings,
		"count":    len(pairings),
	})
}

// resolveParticipants parses explicit ids or falls back to every
// registered non-admin participant.
func (h *AssignmentHandler) resolveParticipants(ids []string) ([]uuid.UUID, error) {
	if len(ids) > 0 {
		parsed := make([]uuid.UUID, 0, len(ids))
		for _, raw := range ids {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, errors.New("participant ids must be valid UUIDs")
			}
			parsed = append(parsed, id)
		}
		return parsed, nil
	}

	all, err := h.participantRepo.GetAll()
	if err != nil {
		return nil, errors.New("failed to load participants")
	}

	var eligible []uuid.UUID
	for _, p := range all {
		if p.Role == participant.RoleParticipant {
			eligible = append(eligible, p.ID)
		}
	}
	return eligible, nil
}

// writeRunError maps the engine's failure taxonomy onto HTTP statuses.
func (h *AssignmentHandler) writeRunError(c *gin.Context, err error) {
	var precondition *assignment.PreconditionError
	var infeasible *assignment.InfeasibleError

	switch {
	case errors.Is(err, assignment.ErrInsufficientParticipants):
		response.ConflictError(c, "At least two participants are required for a run")
	case errors.Is(err, assignment.ErrYearAlreadyAssigned):
		response.ConflictError(c, "Pairings already exist for this year")
	case errors.As(err, &precondition):
		response.ErrorResponseWithDetails(c, http.StatusConflict,
			"Some participants have not submitted a message yet",
			map[string]any{"missing": precondition.Missing})
	case errors.As(err, &infeasible):
		details := map[string]any{"reason": infeasible.Reason}
		if infeasible.Reason == assignment.ReasonNoCandidates {
			details["giver_id"] = infeasible.Giver
		}
		response.ErrorResponseWithDetails(c, http.StatusUnprocessableEntity,
			infeasible.Error(), details)
	default:
		response.InternalServerError(c, "Assignment run failed")
	}
}
