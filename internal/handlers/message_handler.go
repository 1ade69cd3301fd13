package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wichtelrunde/wichtel-api/internal/response"
	"github.com/wichtelrunde/wichtel-api/internal/services"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// SubmitMessage handles POST /api/messages
func (h *MessageHandler) SubmitMessage(c *gin.Context) {
	var req services.SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	m, err := h.messageService.SubmitMessage(req)
	if err != nil {
		switch err.Error() {
		case "participant not found":
			response.NotFoundError(c, err.Error())
		case "participant already has a message for this year":
			response.ConflictError(c, err.Error())
		default:
			response.BadRequestError(c, err.Error())
		}
		return
	}

	response.SuccessResponse(c, http.StatusCreated, "Message submitted", m)
}

type UpdateMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateMessage handles PUT /api/messages/:id
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	m, err := h.messageService.UpdateMessage(c.Param("id"), req.Text)
	if err != nil {
		if err.Error() == "message not found" {
			response.NotFoundError(c, err.Error())
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}

	response.SuccessResponse(c, http.StatusOK, "Message updated", m)
}

// DeleteMessage handles DELETE /api/messages/:id
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	if err := h.messageService.DeleteMessage(c.Param("id")); err != nil {
		if err.Error() == "message not found" {
			response.NotFoundError(c, err.Error())
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}

	response.SuccessResponse(c, http.StatusOK, "Message deleted", nil)
}

// GetMessageForYear handles GET /api/participants/:id/messages/:year
func (h *MessageHandler) GetMessageForYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequestError(c, "year must be an integer")
		return
	}

	m, err := h.messageService.GetMessageForYear(c.Param("id"), year)
	if err != nil {
		response.NotFoundError(c, "Message not found")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "", m)
}
