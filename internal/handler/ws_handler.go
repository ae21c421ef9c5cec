package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"taskboard-api/internal/middleware"
	"taskboard-api/internal/response"
)

// RealtimeHub accepts upgraded connections
type RealtimeHub interface {
	Serve(conn *websocket.Conn, userID uuid.UUID)
}

type WSHandler struct {
	hub       RealtimeHub
	validator middleware.TokenValidator
	upgrader  websocket.Upgrader
	logger    *zap.Logger
}

// NewWSHandler accepts browser connections from the given origins; an empty list allows any origin
func NewWSHandler(hub RealtimeHub, validator middleware.TokenValidator, allowedOrigins []string, logger *zap.Logger) *WSHandler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o != "" {
			origins[strings.TrimRight(o, "/")] = struct{}{}
		}
	}

	return &WSHandler{
		hub:       hub,
		validator: validator,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(origins) == 0 {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
	}
}

// Connect godoc
// @Summary      실시간 보드 이벤트 WebSocket
// @Description  join-board 후 같은 Board의 다른 클라이언트가 보낸 이벤트를 받습니다
// @Tags         realtime
// @Param        token query string true "JWT Access Token"
// @Success      101 "Switching Protocols"
// @Failure      401 {object} response.ErrorResponse "유효하지 않은 토큰"
// @Router       /ws [get]
func (h *WSHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Token is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	userID, err := h.validator.ValidateToken(ctx, token)
	if err != nil {
		h.logger.Warn("Rejected websocket connection", zap.Error(err))
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	h.logger.Debug("WebSocket connected", zap.String("user_id", userID.String()))
	h.hub.Serve(conn, userID)
}
