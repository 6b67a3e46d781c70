package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// client is one WebSocket connection. Writes come from the read loop and the
// update forwarder, so they are serialized.
type client struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	mu          sync.Mutex
	playerID    string
	unsubscribe func()
	generation  uint64
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn}
}

func (that *client) send(action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) sendError(action, message string) error {
	return that.send(action, ResponsePayload{Error: message})
}

// bind attaches the connection to a player, dropping any previous
// subscription. It returns the subscription generation.
func (that *client) bind(playerID string, unsubscribe func()) uint64 {
	that.mu.Lock()
	previous := that.unsubscribe
	that.playerID = playerID
	that.unsubscribe = unsubscribe
	that.generation++
	generation := that.generation
	that.mu.Unlock()

	if previous != nil {
		previous()
	}

	return generation
}

// subscribed reports whether generation is still the client's subscription.
func (that *client) subscribed(generation uint64) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.generation == generation
}

func (that *client) player() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.playerID
}

func (that *client) close() {
	that.bind("", nil)
	_ = that.conn.Close()
}
