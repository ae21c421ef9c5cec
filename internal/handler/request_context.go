package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/middleware"
	"taskboard-api/internal/response"
)

// currentUserID reads the authenticated user set by the auth middleware.
// It writes a 401 and returns false when the context carries none.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userID, true
}

// uuidParam parses a path parameter, writing a 400 when it is not a UUID
func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// uuidParams parses several path parameters in order
func uuidParams(c *gin.Context, pairs ...[2]string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(pairs))
	for _, p := range pairs {
		id, ok := uuidParam(c, p[0], p[1])
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return false
	}
	return true
}
