package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gofive-backend/internal/entity"
	"github.com/rocketscienceinc/gofive-backend/internal/session"
)

const (
	sendBufferSize = 16
	writeWait      = 10 * time.Second
)

// client is one websocket connection with at most one running game.
// Only writePump writes to conn.
type client struct {
	logger *slog.Logger
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once

	mu     sync.Mutex
	player *entity.Player
	game   *session.GameSession
}

func newClient(logger *slog.Logger, conn *websocket.Conn, player *entity.Player) *client {
	return &client{
		logger: logger.With("player_id", player.ID),
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		player: player,
	}
}

func (that *client) currentPlayer() *entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.player
}

func (that *client) currentGame() *session.GameSession {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game
}

// attach - replaces the running game and pushes its changes to the connection.
func (that *client) attach(game *session.GameSession) {
	game.OnChange(func(snapshot session.Snapshot) {
		that.sendMessage(actionGameState, ResponsePayload{Game: &snapshot})
	})

	game.OnNotice(func(err error) {
		that.sendMessage(actionError, ResponsePayload{Error: errorText(err)})
	})

	that.mu.Lock()
	previous := that.game
	that.game = game
	that.mu.Unlock()

	if previous != nil {
		previous.Close()
	}
}

func (that *client) sendMessage(action string, payload ResponsePayload) {
	log := that.logger.With("method", "sendMessage", "action", action)

	data, err := encode(action, payload)
	if err != nil {
		log.Error("failed to encode message", "error", err)
		return
	}

	select {
	case that.send <- data:
	case <-that.done:
		log.Debug("connection closed, message dropped")
	}
}

func (that *client) sendError(action string, err error) {
	that.sendMessage(action, ResponsePayload{Error: errorText(err)})
}

// writePump - writes queued messages until the connection is closed.
func (that *client) writePump() {
	log := that.logger.With("method", "writePump")

	for {
		select {
		case data := <-that.send:
			if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error("failed to set write deadline", "error", err)
				that.close()
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error("failed to write message", "error", err)
				that.close()
				return
			}
		case <-that.done:
			return
		}
	}
}

// tickPump - advances the elapsed-time counter of the running game.
func (that *client) tickPump(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if game := that.currentGame(); game != nil {
				game.Tick()
			}
		case <-that.done:
			return
		}
	}
}

func (that *client) close() {
	that.once.Do(func() {
		close(that.done)

		if game := that.currentGame(); game != nil {
			game.Close()
		}

		if err := that.conn.Close(); err != nil {
			that.logger.Debug("failed to close connection", "error", err)
		}
	})
}

func encode(action string, payload ResponsePayload) ([]byte, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Message{Action: action, Payload: payloadJSON})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}
