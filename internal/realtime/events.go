package realtime

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Client to server control events
const (
	EventJoinBoard  = "join-board"
	EventLeaveBoard = "leave-board"
)

// Server to client presence events
const (
	EventUserJoined = "user-joined"
	EventUserLeft   = "user-left"
)

// relayEvents maps what a client emits to what the other subscribers receive
var relayEvents = map[string]string{
	"board-update":  "board-updated",
	"card-update":   "card-updated",
	"card-created":  "card-created",
	"card-deleted":  "card-deleted",
	"task-update":   "task-updated",
	"task-created":  "task-created",
	"task-deleted":  "task-deleted",
	"task-moved":    "task-moved",
	"task-assigned": "task-assigned",
	"typing":        "user-typing",
}

var (
	errUnknownEvent = errors.New("unknown event")
	errBadPayload   = errors.New("payload must carry a valid boardId")
)

var validate = validator.New()

// Envelope is the wire format in both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type boardRef struct {
	BoardID string `json:"boardId" validate:"required,uuid"`
}

// inboundKind tells the hub how to treat a parsed client event
type inboundKind int

const (
	kindJoin inboundKind = iota
	kindLeave
	kindRelay
)

// inbound is a validated client event ready for the dispatch loop
type inbound struct {
	kind     inboundKind
	boardID  uuid.UUID
	outEvent string
	payload  map[string]interface{}
}

// parseInbound decodes and validates one client frame
func parseInbound(raw []byte) (*inbound, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Event {
	case EventJoinBoard, EventLeaveBoard:
		boardID, err := parseBoardRef(env.Data)
		if err != nil {
			return nil, err
		}
		kind := kindJoin
		if env.Event == EventLeaveBoard {
			kind = kindLeave
		}
		return &inbound{kind: kind, boardID: boardID}, nil
	}

	outEvent, ok := relayEvents[env.Event]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownEvent, env.Event)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(env.Data, &payload); err != nil || payload == nil {
		return nil, errBadPayload
	}
	boardID, err := parseBoardRef(env.Data)
	if err != nil {
		return nil, err
	}
	return &inbound{kind: kindRelay, boardID: boardID, outEvent: outEvent, payload: payload}, nil
}

// parseBoardRef accepts {"boardId": "<uuid>"} or a bare "<uuid>" string
func parseBoardRef(data json.RawMessage) (uuid.UUID, error) {
	var ref boardRef
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &ref.BoardID); err != nil {
			return uuid.Nil, errBadPayload
		}
	} else if err := json.Unmarshal(trimmed, &ref); err != nil {
		return uuid.Nil, errBadPayload
	}

	if err := validate.Struct(ref); err != nil {
		return uuid.Nil, errBadPayload
	}
	return uuid.Parse(ref.BoardID)
}

// encodeEvent builds an outbound frame stamped with the server time
func encodeEvent(event string, payload map[string]interface{}, now time.Time) ([]byte, error) {
	data := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		data[k] = v
	}
	data["timestamp"] = now.UTC().Format(time.RFC3339)

	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: body})
}

// Topic returns the fan-out channel name of a board
func Topic(boardID uuid.UUID) string {
	return "board:" + boardID.String()
}
