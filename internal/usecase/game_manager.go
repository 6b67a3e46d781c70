package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

const storageTimeout = 5 * time.Second

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type roundRepo interface {
	CreateOrUpdate(ctx context.Context, round *entity.Round) error
	GetByID(ctx context.Context, id string) (*entity.Round, error)
	DeleteByID(ctx context.Context, id string) error
}

// pendingTurn is a computer reply scheduled for one specific round.
type pendingTurn struct {
	roundID string
	timer   *time.Timer
}

type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	roundRepo  roundRepo
	selector   *tictactoe.MoveSelector
	delay      time.Duration

	locks sync.Map

	mu      sync.Mutex
	pending map[string]*pendingTurn
	closed  bool

	hub *hub
}

// NewGameManager creates the manager. A non-positive delay makes the computer
// reply synchronously inside MakeTurn.
func NewGameManager(
	logger *slog.Logger,
	playerRepo playerRepo,
	roundRepo roundRepo,
	selector *tictactoe.MoveSelector,
	delay time.Duration,
) *GameManager {
	return &GameManager{
		logger:     logger.With("component", "game_manager"),
		playerRepo: playerRepo,
		roundRepo:  roundRepo,
		selector:   selector,
		delay:      delay,
		pending:    make(map[string]*pendingTurn),
		hub:        newHub(),
	}
}

// GetOrCreatePlayer returns the player with id, creating it when id is empty
// or unknown.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		return that.createPlayer(ctx, uuid.NewString())
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		return that.createPlayer(ctx, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// GetOrCreateRound returns the player's current round, starting one if needed.
func (that *GameManager) GetOrCreateRound(ctx context.Context, playerID string) (*entity.Round, error) {
	unlock := that.lock(playerID)
	defer unlock()

	player, err := that.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	round, err := that.currentRound(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to get current round: %w", err)
	}

	if err = that.resumeComputerTurn(ctx, player.ID, round); err != nil {
		return nil, err
	}

	return round, nil
}

// MakeTurn applies the human move at cell. Ignored input returns the round
// unchanged and no error.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Round, error) {
	log := that.logger.With("method", "MakeTurn", "playerID", playerID, "cell", cell)

	unlock := that.lock(playerID)
	defer unlock()

	player, err := that.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	round, err := that.currentRound(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to get current round: %w", err)
	}

	if err = that.resumeComputerTurn(ctx, player.ID, round); err != nil {
		return nil, err
	}

	controller := tictactoe.NewGameController(round, that.selector)

	transition, err := controller.HumanTurn(cell)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if !transition.Applied {
		log.Debug("input ignored", "status", round.Status, "turn", round.Turn)
		return round, nil
	}

	if err = that.updateRound(ctx, round); err != nil {
		return nil, err
	}

	if round.IsFinished() {
		log.Info("round finished", "roundID", round.ID, "status", round.Status, "winner", round.Winner)
	}

	if !transition.ComputerNext {
		return round, nil
	}

	if that.delay <= 0 {
		if err = that.replyNow(ctx, controller); err != nil {
			return nil, err
		}

		return round, nil
	}

	that.schedule(player.ID, round.ID)

	return round, nil
}

// NewGame drops the player's current round and starts a new one. A computer
// reply still pending for the old round is cancelled.
func (that *GameManager) NewGame(ctx context.Context, playerID string) (*entity.Round, error) {
	log := that.logger.With("method", "NewGame", "playerID", playerID)

	unlock := that.lock(playerID)
	defer unlock()

	that.cancelPending(playerID)

	player, err := that.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	round, err := that.currentRound(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to get current round: %w", err)
	}

	oldRoundID := round.ID

	controller := tictactoe.NewGameController(round, that.selector)
	controller.NewGame(uuid.NewString())

	if err = that.updateRound(ctx, round); err != nil {
		return nil, err
	}

	player.RoundID = round.ID
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	if err = that.roundRepo.DeleteByID(ctx, oldRoundID); err != nil && !errors.Is(err, apperror.ErrRoundNotFound) {
		log.Error("failed to delete previous round", "roundID", oldRoundID, "error", err)
	}

	log.Info("new round started", "roundID", round.ID)

	that.hub.publish(player.ID, *round)

	return round, nil
}

// Subscribe streams round snapshots for the player after every delayed
// computer reply and every new game.
func (that *GameManager) Subscribe(ctx context.Context, playerID string) (<-chan entity.Round, func()) {
	return that.hub.subscribe(ctx, playerID)
}

// HasPendingTurn reports whether a computer reply is scheduled for the player.
func (that *GameManager) HasPendingTurn(playerID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, ok := that.pending[playerID]
	return ok
}

// Close stops every scheduled computer reply.
func (that *GameManager) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
	for playerID, turn := range that.pending {
		turn.timer.Stop()
		delete(that.pending, playerID)
	}
}

func (that *GameManager) schedule(playerID, roundID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	if previous, ok := that.pending[playerID]; ok {
		previous.timer.Stop()
	}

	turn := &pendingTurn{roundID: roundID}
	turn.timer = time.AfterFunc(that.delay, func() {
		that.computerTurn(playerID, turn)
	})
	that.pending[playerID] = turn
}

func (that *GameManager) cancelPending(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if turn, ok := that.pending[playerID]; ok {
		turn.timer.Stop()
		delete(that.pending, playerID)
	}
}

// computerTurn runs when a scheduled reply fires. Replies for a round that is
// no longer the player's current one, or no longer waiting on the computer,
// are discarded.
func (that *GameManager) computerTurn(playerID string, turn *pendingTurn) {
	log := that.logger.With("method", "computerTurn", "playerID", playerID, "roundID", turn.roundID)

	that.mu.Lock()
	if that.pending[playerID] == turn {
		delete(that.pending, playerID)
	}
	that.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	unlock := that.lock(playerID)
	defer unlock()

	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		log.Error("failed to get player", "error", err)
		return
	}

	if player.RoundID != turn.roundID {
		log.Info("discarding stale computer turn", "currentRoundID", player.RoundID)
		return
	}

	round, err := that.roundRepo.GetByID(ctx, turn.roundID)
	if err != nil {
		log.Error("failed to get round", "error", err)
		return
	}

	controller := tictactoe.NewGameController(round, that.selector)

	transition, err := controller.ComputerTurn()
	if err != nil {
		log.Error("computer failed to make turn", "error", err)
		return
	}

	if !transition.Applied {
		log.Info("discarding stale computer turn", "status", round.Status, "turn", round.Turn)
		return
	}

	if err = that.updateRound(ctx, round); err != nil {
		log.Error("failed to save round", "error", err)
		return
	}

	log.Debug("computer moved", "cell", transition.Cell, "status", round.Status)

	that.hub.publish(playerID, *round)
}

// resumeComputerTurn replies at once for a round that waits on the computer
// with no reply scheduled. That happens after a restart or when a scheduled
// reply failed.
func (that *GameManager) resumeComputerTurn(ctx context.Context, playerID string, round *entity.Round) error {
	if !round.AwaitsComputer() || that.HasPendingTurn(playerID) {
		return nil
	}

	that.logger.Warn("computer reply was lost, replying now", "method", "resumeComputerTurn",
		"playerID", playerID, "roundID", round.ID)

	if err := that.replyNow(ctx, tictactoe.NewGameController(round, that.selector)); err != nil {
		return fmt.Errorf("failed to resume computer turn: %w", err)
	}

	that.hub.publish(playerID, *round)

	return nil
}

func (that *GameManager) replyNow(ctx context.Context, controller *tictactoe.GameController) error {
	if _, err := controller.ComputerTurn(); err != nil {
		return fmt.Errorf("computer failed to make turn: %w", err)
	}

	return that.updateRound(ctx, controller.Round())
}

func (that *GameManager) currentRound(ctx context.Context, player *entity.Player) (*entity.Round, error) {
	if player.RoundID != "" {
		round, err := that.roundRepo.GetByID(ctx, player.RoundID)
		if err == nil {
			return round, nil
		}

		if !errors.Is(err, apperror.ErrRoundNotFound) {
			return nil, fmt.Errorf("failed to get round: %w", err)
		}
	}

	return that.createRound(ctx, player)
}

func (that *GameManager) createRound(ctx context.Context, player *entity.Player) (*entity.Round, error) {
	round := entity.NewRound(uuid.NewString(), player.ID)

	if err := that.updateRound(ctx, round); err != nil {
		return nil, err
	}

	player.RoundID = round.ID
	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	return round, nil
}

func (that *GameManager) createPlayer(ctx context.Context, id string) (*entity.Player, error) {
	player := &entity.Player{ID: id}

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updateRound(ctx context.Context, round *entity.Round) error {
	if err := that.roundRepo.CreateOrUpdate(ctx, round); err != nil {
		return fmt.Errorf("failed to update round: %w", err)
	}

	return nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (that *GameManager) lock(playerID string) func() {
	value, _ := that.locks.LoadOrStore(playerID, &sync.Mutex{})
	mu := value.(*sync.Mutex) //nolint: forcetypeassert // only mutexes are stored

	mu.Lock()
	return mu.Unlock
}
