package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// MemoryRoundRepository keeps rounds in process memory. Values are copied in
// and out so callers never share a round with the store.
type MemoryRoundRepository struct {
	mu     sync.RWMutex
	rounds map[string]entity.Round
}

func NewMemoryRoundRepository() *MemoryRoundRepository {
	return &MemoryRoundRepository{
		rounds: make(map[string]entity.Round),
	}
}

func (that *MemoryRoundRepository) CreateOrUpdate(_ context.Context, round *entity.Round) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.rounds[round.ID] = *round

	return nil
}

func (that *MemoryRoundRepository) GetByID(_ context.Context, id string) (*entity.Round, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	round, ok := that.rounds[id]
	if !ok {
		return nil, apperror.ErrRoundNotFound
	}

	return &round, nil
}

func (that *MemoryRoundRepository) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rounds[id]; !ok {
		return apperror.ErrRoundNotFound
	}

	delete(that.rounds, id)

	return nil
}

type MemoryPlayerRepository struct {
	mu      sync.RWMutex
	players map[string]entity.Player
}

func NewMemoryPlayerRepository() *MemoryPlayerRepository {
	return &MemoryPlayerRepository{
		players: make(map[string]entity.Player),
	}
}

func (that *MemoryPlayerRepository) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.players[player.ID] = *player

	return nil
}

func (that *MemoryPlayerRepository) GetByID(_ context.Context, id string) (*entity.Player, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	player, ok := that.players[id]
	if !ok {
		return nil, apperror.ErrPlayerNotFound
	}

	return &player, nil
}
