package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/response"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "user_id"
	ContextToken  = "jwtToken"
)

const tokenValidationTimeout = 5 * time.Second

// TokenValidator validates a bearer token and returns the user it was issued to
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error)
}

// AuthWithValidator rejects requests without a valid bearer token
func AuthWithValidator(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		// "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := parts[1]

		ctx, cancel := context.WithTimeout(c.Request.Context(), tokenValidationTimeout)
		defer cancel()

		userID, err := validator.ValidateToken(ctx, tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextToken, tokenString)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
	c.Abort()
}
