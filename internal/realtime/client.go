package realtime

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"taskboard-api/internal/authz"
	"taskboard-api/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192

	joinCheckTimeout = 5 * time.Second
)

// Client is one websocket connection. boards is owned by the hub goroutine.
type Client struct {
	id     string
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
	boards map[uuid.UUID]struct{}
	hub    *Hub
}

// ID returns the socket id other subscribers see
func (c *Client) ID() string {
	return c.id
}

// Serve registers the connection and runs its pumps until it closes
func (h *Hub) Serve(conn *websocket.Conn, userID uuid.UUID) {
	c := &Client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, h.cfg.SendBuffer),
		boards: make(map[uuid.UUID]struct{}),
		hub:    h,
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("WebSocket read error", zap.String("socket_id", c.id), zap.Error(err))
			}
			return
		}

		ev, err := parseInbound(message)
		if err != nil {
			c.hub.recordDrop(metrics.DropReasonMalformed)
			c.hub.logger.Warn("Dropped malformed realtime event", zap.String("socket_id", c.id), zap.Error(err))
			continue
		}

		if ev.kind == kindJoin && !c.mayJoin(ev.boardID) {
			continue
		}

		select {
		case c.hub.events <- clientEvent{client: c, event: ev}:
		case <-c.hub.done:
			return
		}
	}
}

// mayJoin checks board membership before the client is subscribed
func (c *Client) mayJoin(boardID uuid.UUID) bool {
	if !c.hub.cfg.EnforceMembership || c.hub.guard == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), joinCheckTimeout)
	defer cancel()

	if _, err := c.hub.guard.Authorize(ctx, c.userID, authz.Resource{BoardID: boardID}, authz.ReadBoard); err != nil {
		c.hub.recordDrop(metrics.DropReasonDenied)
		c.hub.logger.Warn("Refused join-board",
			zap.String("socket_id", c.id),
			zap.String("user_id", c.userID.String()),
			zap.String("board_id", boardID.String()),
			zap.Error(err))
		return false
	}
	return true
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
