package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/gofive-backend/internal/entity"
	"github.com/rocketscienceinc/gofive-backend/internal/session"
)

const (
	actionConnect   = "connect"
	actionNewGame   = "game:new"
	actionTurn      = "game:turn"
	actionNavigate  = "game:navigate"
	actionReset     = "game:reset"
	actionGameState = "game:state"
	actionError     = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type GameRequest struct {
	Mode session.Mode `json:"mode"`
	Size int          `json:"size,omitempty"`
}

type RequestPayload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *GameRequest   `json:"game,omitempty"`
	Cell   *int           `json:"cell,omitempty"`
	Ply    *int           `json:"ply,omitempty"`
}

type ResponsePayload struct {
	Player *entity.Player    `json:"player,omitempty"`
	Game   *session.Snapshot `json:"game,omitempty"`
	Error  string            `json:"error,omitempty"`
}
