package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type mockPlayerRepo struct {
	mock.Mock
}

func (that *mockPlayerRepo) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	args := that.Called(ctx, player)
	return args.Error(0)
}

func (that *mockPlayerRepo) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	args := that.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

type mockRoundRepo struct {
	mock.Mock
}

func (that *mockRoundRepo) CreateOrUpdate(ctx context.Context, round *entity.Round) error {
	args := that.Called(ctx, round)
	return args.Error(0)
}

func (that *mockRoundRepo) GetByID(ctx context.Context, id string) (*entity.Round, error) {
	args := that.Called(ctx, id)
	round, _ := args.Get(0).(*entity.Round)
	return round, args.Error(1)
}

func (that *mockRoundRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}
