package ws

import (
	"errors"

	"tienlen/internal/app"
	"tienlen/internal/domain"
)

// Client ops.
const (
	OpChooseSeat = "choose_seat"
	OpSetStage   = "set_stage"
	OpPlay       = "play"
	OpPass       = "pass"
	OpForfeit    = "forfeit"
	OpFillWithAI = "fill_ai"
	OpSync       = "sync"
)

// Server message types.
const (
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

var (
	errBadRequest   = errors.New("malformed request")
	errBotsDisabled = errors.New("AI players are disabled")
)

// Inbound is a client message.
type Inbound struct {
	Op       string   `json:"op"`
	Seat     *int     `json:"seat,omitempty"`
	Stage    string   `json:"stage,omitempty"`
	Cards    []string `json:"cards,omitempty"`
	Personas []string `json:"personas,omitempty"`
}

// Outbound is a server message. Hand is the recipient's own cards only.
type Outbound struct {
	Type     string           `json:"type"`
	Snapshot *domain.Snapshot `json:"snapshot,omitempty"`
	Hand     []string         `json:"hand,omitempty"`
	Op       string           `json:"op,omitempty"`
	Code     string           `json:"code,omitempty"`
	Message  string           `json:"message,omitempty"`
}

func snapshotMessage(snap *domain.Snapshot, identity string) Outbound {
	return Outbound{Type: TypeSnapshot, Snapshot: snap, Hand: snap.HandFor(identity)}
}

func errorMessage(op string, err error) Outbound {
	code := app.ErrorCode(err)
	if errors.Is(err, errBadRequest) {
		code = "bad_request"
	}
	return Outbound{Type: TypeError, Op: op, Code: code, Message: err.Error()}
}
