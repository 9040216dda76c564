package response

import "github.com/gin-gonic/gin"

const (
	CodeBadRequest         = 40000
	CodeUnauthorized       = 40100
	CodeInvalidCredentials = 40101
	CodeForbidden          = 40300
	CodeUserNotFound       = 40401
	CodeMessageNotFound    = 40402
	CodeUsernameTaken      = 40900
	CodeStorageTimeout     = 50400
	CodeInternalServer     = 50000
)

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OK writes the payload as-is. Route payloads are already shaped
// ({token}, {users}, {user}, {messages}, {message}), so no envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, gin.H{"error": APIError{Code: code, Message: message}})
}
