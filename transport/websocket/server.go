package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetOrCreateRound(ctx context.Context, playerID string) (*entity.Round, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Round, error)
	NewGame(ctx context.Context, playerID string) (*entity.Round, error)
	Subscribe(ctx context.Context, playerID string) (<-chan entity.Round, func())
}

type Server struct {
	logger   *slog.Logger
	manager  gameManager
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, message *Message, c *client) error
}

func New(logger *slog.Logger, manager gameManager) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]func(context.Context, *Message, *client) error),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionTurn] = server.handleGameTurn
	server.handlers[actionNew] = server.handleNewGame

	return server
}

func (that *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/ping", handlers.PingHandler)
	r.Get("/ws", that.upgradeToWebSocket)

	return r
}

// Start - starts WebSocket server. Open connections are closed when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		BaseContext:  func(net.Listener) context.Context { return ctx },
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := newClient(conn)
	defer c.close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	if err = that.handleMessages(ctx, c); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, body, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
				errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = c.sendError(actionUnknown, "invalid message"); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = c.sendError(message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, &message, c); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// forwardUpdates pushes rounds published for the player until the
// subscription ends. When the hub dropped the subscription while the client
// still relies on it, the client is told and disconnected so it reconnects.
func (that *Server) forwardUpdates(ctx context.Context, c *client, generation uint64, playerID string, updates <-chan entity.Round) {
	log := that.logger.With("method", "forwardUpdates", "playerID", playerID)

	for round := range updates {
		if err := c.send(actionUpdate, gamePayload(playerID, &round)); err != nil {
			log.Error("failed to push update", "error", err)
			return
		}
	}

	if ctx.Err() != nil || !c.subscribed(generation) {
		return
	}

	log.Warn("update stream dropped, closing connection")

	if err := c.sendError(actionUpdate, errUpdatesDropped); err != nil {
		log.Error("failed to report dropped updates", "error", err)
	}

	_ = c.conn.Close()
}
