package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/render"
)

const (
	actionConnect = "connect"
	actionTurn    = "game:turn"
	actionNew     = "game:new"
	actionUpdate  = "game:update"
	actionUnknown = "unknown"
)

const errUpdatesDropped = "updates dropped, reconnect"

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Player *entity.Player `json:"player,omitempty"`
	Cell   *int           `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *entity.Round  `json:"game,omitempty"`
	View   *render.View   `json:"view,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func gamePayload(playerID string, round *entity.Round) ResponsePayload {
	view := render.Round(round)

	return ResponsePayload{
		Player: &entity.Player{ID: playerID, RoundID: round.ID},
		Game:   round,
		View:   &view,
	}
}
