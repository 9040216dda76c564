package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"messagely/internal/app"
	"messagely/internal/repository"
	"messagely/internal/transport/http/response"
)

type UserHandler struct {
	userService *app.UserService
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.All(c.Request.Context())
	if err != nil {
		writeUserError(c, err, "list users failed")
		return
	}
	response.OK(c, gin.H{"users": users})
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeUserError(c, err, "fetch user failed")
		return
	}
	response.OK(c, gin.H{"user": user})
}

// MessagesTo lists the user's inbox, senders joined in.
func (h *UserHandler) MessagesTo(c *gin.Context) {
	messages, err := h.userService.MessagesTo(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeUserError(c, err, "list received messages failed")
		return
	}
	response.OK(c, gin.H{"messages": messages})
}

// MessagesFrom lists the user's outbox, recipients joined in.
func (h *UserHandler) MessagesFrom(c *gin.Context) {
	messages, err := h.userService.MessagesFrom(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeUserError(c, err, "list sent messages failed")
		return
	}
	response.OK(c, gin.H{"messages": messages})
}

func writeUserError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeUserNotFound, err.Error())
	case errors.Is(err, repository.ErrTimeout):
		response.Error(c, http.StatusGatewayTimeout, response.CodeStorageTimeout, "storage timeout")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
