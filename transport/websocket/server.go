package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gofive-backend/internal/entity"
	"github.com/rocketscienceinc/gofive-backend/internal/session"
)

const (
	sessionCookieName = "user_session"
	sessionCookieTTL  = 24 * time.Hour

	shutdownTimeout = 5 * time.Second
)

type gameManager interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	RegisterName(ctx context.Context, player *entity.Player, name string) error
	NewSession(playerID string, mode session.Mode, size int) (*session.GameSession, error)
}

type handlerFunc func(ctx context.Context, c *client, payload *RequestPayload) error

type Server struct {
	logger       *slog.Logger
	games        gameManager
	tickInterval time.Duration
	upgrader     websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameManager, tickInterval time.Duration) *Server {
	if tickInterval <= 0 {
		tickInterval = time.Second
	}

	server := &Server{
		logger:       logger.With("component", "websocket"),
		games:        games,
		tickInterval: tickInterval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionTurn] = server.handleGameTurn
	server.handlers[actionNavigate] = server.handleNavigate
	server.handlers[actionReset] = server.handleReset

	return server
}

func (that *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Get("/ws", that.serveWS)

	return router
}

// Start - starts WebSocket server, it stops when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection and processes messages until the client leaves.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")
	ctx := req.Context()

	player, err := that.games.GetOrCreatePlayer(ctx, sessionID(req))
	if err != nil {
		log.Error("failed to get or create player", "error", err)
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := that.upgrader.Upgrade(writer, req, sessionCookie(player.ID))
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(that.logger, conn, player)
	defer c.close()

	go c.writePump()
	go c.tickPump(that.tickInterval)

	log.Info("WebSocket connection established", "player_id", player.ID)

	that.handleMessages(ctx, c)

	log.Info("player disconnected", "player_id", player.ID)
}

func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("error reading message", "error", err)
			}

			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			c.sendError(actionError, errMalformedMessage)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			c.sendError(message.Action, errUnknownAction)
			continue
		}

		var payload RequestPayload
		if len(message.Payload) > 0 {
			if err = json.Unmarshal(message.Payload, &payload); err != nil {
				c.sendError(message.Action, errMalformedMessage)
				continue
			}
		}

		if err = handler(ctx, c, &payload); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func sessionID(req *http.Request) string {
	cookie, err := req.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func sessionCookie(playerID string) http.Header {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    playerID,
		Expires:  time.Now().Add(sessionCookieTTL),
		Path:     "/",
		HttpOnly: true,
	}

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	return header
}
