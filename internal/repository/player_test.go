package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/testing/suite"
)

func TestPlayerRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage, 0)

	// Given: a player pointing at a round
	player := &entity.Player{ID: "p1", RoundID: "r1"}

	// When: the player is saved and then updated
	require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

	player.RoundID = "r2"
	require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

	// Then: the latest version is returned
	retrieved, err := playerRepo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, player, retrieved)
}

func TestPlayerRepository_GetByID_NotFound(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage, 0)

	// When: an unknown player is requested
	player, err := playerRepo.GetByID(ctx, "unknown")

	// Then: ErrPlayerNotFound is returned
	require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	assert.Nil(t, player)
}
