package realtime

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/authz"
	"taskboard-api/internal/metrics"
)

// Bridge carries relayed frames between service instances
type Bridge interface {
	Publish(topic string, frame []byte)
	Subscribe(ctx context.Context, deliver func(topic string, frame []byte)) error
}

// HubConfig controls membership checks and per-client buffering
type HubConfig struct {
	EnforceMembership bool
	SendBuffer        int
}

type clientEvent struct {
	client *Client
	event  *inbound
}

type remoteFrame struct {
	topic string
	frame []byte
}

// Hub fans client events out to the other subscribers of a board topic.
// Only the Run goroutine touches topics and Client.boards.
type Hub struct {
	cfg     HubConfig
	guard   authz.Guard
	bridge  Bridge
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time

	topics  map[string]map[*Client]struct{}
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	events     chan clientEvent
	remote     chan remoteFrame
	queries    chan func()
	done       chan struct{}
}

// NewHub creates a hub; bridge may be nil for a single instance
func NewHub(cfg HubConfig, guard authz.Guard, bridge Bridge, m *metrics.Metrics, logger *zap.Logger) *Hub {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 256
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		cfg:        cfg,
		guard:      guard,
		bridge:     bridge,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
		topics:     make(map[string]map[*Client]struct{}),
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan clientEvent, 256),
		remote:     make(chan remoteFrame, 256),
		queries:    make(chan func()),
		done:       make(chan struct{}),
	}
}

// Run dispatches until ctx is cancelled, then closes every client
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.bridge != nil {
		go func() {
			if err := h.bridge.Subscribe(ctx, h.deliverRemote); err != nil && ctx.Err() == nil {
				h.logger.Error("Realtime bridge subscription ended", zap.Error(err))
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			h.updateGauges()
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.updateGauges()
			h.logger.Debug("Realtime client registered",
				zap.String("socket_id", c.id),
				zap.String("user_id", c.userID.String()))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; !ok {
				continue
			}
			for boardID := range c.boards {
				h.leave(c, boardID)
			}
			h.drop(c)
			h.updateGauges()
			h.logger.Debug("Realtime client unregistered", zap.String("socket_id", c.id))

		case ev := <-h.events:
			if _, ok := h.clients[ev.client]; !ok {
				continue
			}
			h.handle(ev.client, ev.event)

		case rf := <-h.remote:
			for c := range h.topics[rf.topic] {
				h.send(c, rf.frame)
			}

		case q := <-h.queries:
			q()
		}
	}
}

// Done is closed when Run has returned
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) handle(c *Client, ev *inbound) {
	switch ev.kind {
	case kindJoin:
		h.join(c, ev.boardID)
		h.updateGauges()
	case kindLeave:
		if _, ok := c.boards[ev.boardID]; ok {
			h.leave(c, ev.boardID)
			h.updateGauges()
		}
	case kindRelay:
		if _, ok := c.boards[ev.boardID]; !ok {
			h.recordDrop(metrics.DropReasonNotJoined)
			h.logger.Warn("Dropped event for a board the client has not joined",
				zap.String("socket_id", c.id),
				zap.String("board_id", ev.boardID.String()),
				zap.String("event", ev.outEvent))
			return
		}
		payload := ev.payload
		if ev.outEvent == "user-typing" {
			payload["socketId"] = c.id
		}
		h.fanOut(c, ev.boardID, ev.outEvent, payload)
	}
}

func (h *Hub) join(c *Client, boardID uuid.UUID) {
	if _, ok := c.boards[boardID]; ok {
		return
	}
	topic := Topic(boardID)
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}
	h.topics[topic][c] = struct{}{}
	c.boards[boardID] = struct{}{}

	h.fanOut(c, boardID, EventUserJoined, presencePayload(c, boardID))
}

func (h *Hub) leave(c *Client, boardID uuid.UUID) {
	topic := Topic(boardID)
	delete(h.topics[topic], c)
	if len(h.topics[topic]) == 0 {
		delete(h.topics, topic)
	}
	delete(c.boards, boardID)

	h.fanOut(c, boardID, EventUserLeft, presencePayload(c, boardID))
}

func presencePayload(c *Client, boardID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"socketId": c.id,
		"userId":   c.userID.String(),
		"boardId":  boardID.String(),
	}
}

// fanOut delivers to every local subscriber except the sender and hands the frame to the bridge
func (h *Hub) fanOut(sender *Client, boardID uuid.UUID, event string, payload map[string]interface{}) {
	frame, err := encodeEvent(event, payload, h.now())
	if err != nil {
		h.recordDrop(metrics.DropReasonMalformed)
		h.logger.Warn("Failed to encode realtime event", zap.String("event", event), zap.Error(err))
		return
	}

	topic := Topic(boardID)
	delivered := 0
	for c := range h.topics[topic] {
		if c == sender {
			continue
		}
		if h.send(c, frame) {
			delivered++
		}
	}
	if h.metrics != nil {
		h.metrics.RecordRealtimeRelay(event, delivered)
	}
	if h.bridge != nil {
		h.bridge.Publish(topic, frame)
	}
}

// send never blocks; a full buffer loses the frame for that client only
func (h *Hub) send(c *Client, frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		h.recordDrop(metrics.DropReasonBufferFull)
		h.logger.Warn("Realtime send buffer full, dropping event", zap.String("socket_id", c.id))
		return false
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) deliverRemote(topic string, frame []byte) {
	select {
	case h.remote <- remoteFrame{topic: topic, frame: frame}:
	case <-h.done:
	}
}

func (h *Hub) recordDrop(reason string) {
	if h.metrics != nil {
		h.metrics.RecordRealtimeDrop(reason)
	}
}

func (h *Hub) updateGauges() {
	if h.metrics == nil {
		return
	}
	subs := 0
	for _, members := range h.topics {
		subs += len(members)
	}
	h.metrics.SetRealtimeConnections(len(h.clients))
	h.metrics.SetRealtimeSubscriptions(subs)
}

// Subscribers reports how many local clients joined the board
func (h *Hub) Subscribers(boardID uuid.UUID) int {
	result := make(chan int, 1)
	select {
	case h.queries <- func() { result <- len(h.topics[Topic(boardID)]) }:
		return <-result
	case <-h.done:
		return 0
	}
}
