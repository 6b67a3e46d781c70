package websocket

import (
	"context"
	"encoding/json"
	"fmt"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq RequestPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return that.reject(c, msg.Action, "invalid payload", fmt.Errorf("failed to unmarshal payload: %w", err))
	}

	if payloadReq.Player == nil {
		log.Warn("player is missing in payload")
		return c.sendError(msg.Action, "player is required")
	}

	player, err := that.manager.GetOrCreatePlayer(ctx, payloadReq.Player.ID)
	if err != nil {
		return that.reject(c, msg.Action, "failed to get or create player", err)
	}

	round, err := that.manager.GetOrCreateRound(ctx, player.ID)
	if err != nil {
		return that.reject(c, msg.Action, "failed to get the game", err)
	}

	updates, unsubscribe := that.manager.Subscribe(ctx, player.ID)
	generation := c.bind(player.ID, unsubscribe)
	go that.forwardUpdates(ctx, c, generation, player.ID, updates)

	if err = c.send(msg.Action, gamePayload(player.ID, round)); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID, "roundID", round.ID)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, c *client) error {
	playerID := c.player()
	if playerID == "" {
		return c.sendError(msg.Action, "not connected")
	}

	var payloadReq RequestPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return that.reject(c, msg.Action, "invalid payload", fmt.Errorf("failed to unmarshal payload: %w", err))
	}

	if payloadReq.Cell == nil {
		return c.sendError(msg.Action, "cell is required")
	}

	round, err := that.manager.MakeTurn(ctx, playerID, *payloadReq.Cell)
	if err != nil {
		return that.reject(c, msg.Action, err.Error(), err)
	}

	return c.send(msg.Action, gamePayload(playerID, round))
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, c *client) error {
	playerID := c.player()
	if playerID == "" {
		return c.sendError(msg.Action, "not connected")
	}

	round, err := that.manager.NewGame(ctx, playerID)
	if err != nil {
		return that.reject(c, msg.Action, "failed to start a new game", err)
	}

	return c.send(msg.Action, gamePayload(playerID, round))
}

// reject reports text to the client and returns cause for logging.
func (that *Server) reject(c *client, action, text string, cause error) error {
	if err := c.sendError(action, text); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return cause
}
