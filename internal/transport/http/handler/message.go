package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"messagely/internal/app"
	"messagely/internal/repository"
	"messagely/internal/transport/http/middleware"
	"messagely/internal/transport/http/response"
)

type MessageHandler struct {
	messageService *app.MessageService
}

type SendMessageRequest struct {
	ToUsername string `json:"to_username" binding:"required,max=64"`
	Body       string `json:"body" binding:"required"`
}

func NewMessageHandler(messageService *app.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send posts a message; the caller is the implicit sender.
func (h *MessageHandler) Send(c *gin.Context) {
	caller, ok := middleware.CallerUsername(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "caller identity missing")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), app.SendMessageInput{
		FromUsername: caller,
		ToUsername:   req.ToUsername,
		Body:         req.Body,
	})
	if err != nil {
		writeMessageError(c, err, "send message failed")
		return
	}

	response.OK(c, gin.H{"message": gin.H{
		"id":            message.ID,
		"from_username": message.FromUsername,
		"to_username":   message.ToUsername,
		"body":          message.Body,
		"sent_at":       message.SentAt,
	}})
}

// Get returns the detail of a message to one of its two participants.
func (h *MessageHandler) Get(c *gin.Context) {
	caller, ok := middleware.CallerUsername(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "caller identity missing")
		return
	}

	id, ok := messageID(c)
	if !ok {
		return
	}

	detail, err := h.messageService.Get(c.Request.Context(), id, caller)
	if err != nil {
		writeMessageError(c, err, "fetch message failed")
		return
	}
	response.OK(c, gin.H{"message": detail})
}

// MarkRead stamps read_at; only the recipient may call it.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	caller, ok := middleware.CallerUsername(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "caller identity missing")
		return
	}

	id, ok := messageID(c)
	if !ok {
		return
	}

	receipt, err := h.messageService.MarkRead(c.Request.Context(), id, caller)
	if err != nil {
		writeMessageError(c, err, "mark message read failed")
		return
	}
	response.OK(c, gin.H{"message": receipt})
}

func messageID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid message id")
		return 0, false
	}
	return uint(id64), true
}

func writeMessageError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeUserNotFound, err.Error())
	case errors.Is(err, app.ErrMessageNotFound):
		response.Error(c, http.StatusNotFound, response.CodeMessageNotFound, err.Error())
	case errors.Is(err, app.ErrNotParticipant), errors.Is(err, app.ErrNotRecipient):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, repository.ErrTimeout):
		response.Error(c, http.StatusGatewayTimeout, response.CodeStorageTimeout, "storage timeout")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
