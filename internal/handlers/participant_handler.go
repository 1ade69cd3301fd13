package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wichtelrunde/wichtel-api/internal/response"
	"github.com/wichtelrunde/wichtel-api/internal/services"
	"github.com/wichtelrunde/wichtel-api/internal/storage/postgres"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
	pairingRepo        postgres.PairingRepository
}

func NewParticipantHandler(participantService *services.ParticipantService, pairingRepo postgres.PairingRepository) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
		pairingRepo:        pairingRepo,
	}
}

// CreateParticipant handles POST /api/participants
func (h *ParticipantHandler) CreateParticipant(c *gin.Context) {
	var req services.CreateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	p, err := h.participantService.CreateParticipant(req)
	if err != nil {
		if err.Error() == "name already exists" {
			response.ConflictError(c, err.Error())
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}

	response.SuccessResponse(c, http.StatusCreated, "Participant created", p)
}

// GetAllParticipants handles GET /api/participants
func (h *ParticipantHandler) GetAllParticipants(c *gin.Context) {
	participants, err := h.participantService.GetAllParticipants()
	if err != nil {
		response.InternalServerError(c, "Failed to retrieve participants")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", gin.H{
		"participants": participants,
		"count":        len(participants),
	})
}

// GetParticipant handles GET /api/participants/:id
func (h *ParticipantHandler) GetParticipant(c *gin.Context) {
	p, err := h.participantService.GetParticipantByID(c.Param("id"))
	if err != nil {
		response.NotFoundError(c, "Participant not found")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", p)
}

// UpdateParticipant handles PUT /api/participants/:id
func (h *ParticipantHandler) UpdateParticipant(c *gin.Context) {
	var req services.UpdateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	p, err := h.participantService.UpdateParticipant(c.Param("id"), req)
	if err != nil {
		if err.Error() == "participant not found" {
			response.NotFoundError(c, err.Error())
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}

	response.SuccessResponse(c, http.StatusOK, "Participant updated", p)
}

// DeleteParticipant handles DELETE /api/participants/:id
func (h *ParticipantHandler) DeleteParticipant(c *gin.Context) {
	if err := h.participantService.RemoveParticipant(c.Param("id")); err != nil {
		if err.Error() == "participant not found" {
			response.NotFoundError(c, err.Error())
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}

	response.SuccessResponse(c, http.StatusOK, "Participant removed", nil)
}

// GetParticipantPairings handles GET /api/participants/:id/pairings
func (h *ParticipantHandler) GetParticipantPairings(c *gin.Context) {
	id := c.Param("id")

	giverID, err := uuid.Parse(id)
	if err != nil {
		response.BadRequestError(c, "participant id must be a valid UUID")
		return
	}

	if _, err := h.participantService.GetParticipantByID(id); err != nil {
		response.NotFoundError(c, "Participant not found")
		return
	}

	pairings, err := h.pairingRepo.GetByGiver(giverID)
	if err != nil {
		response.InternalServerError(c, "Failed to retrieve pairings")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", gin.H{
		"participant_id": giverID,
		"pairings":       pairings,
		"count":          len(pairings),
	})
}

// GetScoreboard handles GET /api/scoreboard
func (h *ParticipantHandler) GetScoreboard(c *gin.Context) {
	entries, err := h.participantService.GetScoreboard()
	if err != nil {
		response.InternalServerError(c, "Failed to load scoreboard")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", gin.H{
		"scoreboard": entries,
		"count":      len(entries),
	})
}
