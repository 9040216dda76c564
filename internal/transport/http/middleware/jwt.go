package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"messagely/internal/pkg/jwtutil"
	"messagely/internal/transport/http/response"
)

const ContextUsernameKey = "username"

// AuthJWT resolves the caller's identity from the Authorization header and
// stores the verified username in the request context. Every protected
// route runs it.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// RequireSelf enforces the correct-user policy on routes with a :username
// parameter: the caller may only operate on their own resources.
func RequireSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerUsername(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "caller identity missing")
			c.Abort()
			return
		}
		if caller != c.Param("username") {
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "not permitted for this user")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerUsername returns the identity AuthJWT attached to the request.
func CallerUsername(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextUsernameKey)
	if !exists {
		return "", false
	}
	username, ok := value.(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
