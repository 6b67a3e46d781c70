package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

func TestNewRound(t *testing.T) {
	// When: creating a new round
	round := NewRound("r1", "p1")

	// Then: the board is empty, the round is active and the human moves first
	expected := &Round{
		ID:       "r1",
		PlayerID: "p1",
		Board:    Board{},
		Turn:     HumanMark,
		Status:   StatusActive,
	}

	require.Equal(t, expected, round)
	assert.True(t, round.IsActive())
	assert.False(t, round.IsFinished())
	assert.False(t, round.AwaitsComputer())
}

func TestRound_Place(t *testing.T) {
	t.Run("Successful placement switches the turn", func(t *testing.T) {
		// Given: a new round
		round := NewRound("r1", "p1")

		// When: the human places a mark
		err := round.Place(PlayerX, 4)
		require.NoError(t, err)

		// Then: the mark is on the board and the computer is next
		assert.Equal(t, PlayerX, round.Board[4])
		assert.Equal(t, ComputerMark, round.Turn)
		assert.True(t, round.AwaitsComputer())
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a round where cell 0 is taken by X and it is O's turn
		round := NewRound("r1", "p1")
		require.NoError(t, round.Place(PlayerX, 0))

		// When: O tries the same cell
		err := round.Place(PlayerO, 0)

		// Then: ErrCellOccupied is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, Board{PlayerX}, round.Board)
		assert.Equal(t, PlayerO, round.Turn)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a new round where the human is to move
		round := NewRound("r1", "p1")

		// When: the computer mark is placed
		err := round.Place(PlayerO, 1)

		// Then: ErrNotYourTurn is returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, Board{}, round.Board)
	})

	t.Run("Error on invalid cell", func(t *testing.T) {
		round := NewRound("r1", "p1")

		assert.ErrorIs(t, round.Place(PlayerX, 9), apperror.ErrInvalidCell)
		assert.ErrorIs(t, round.Place(PlayerX, -1), apperror.ErrInvalidCell)
	})

	t.Run("Error after the round is finished", func(t *testing.T) {
		// Given: a won round
		round := &Round{
			Board: Board{
				PlayerX, PlayerX, PlayerX,
				EmptyCell, PlayerO, PlayerO,
				EmptyCell, EmptyCell, EmptyCell,
			},
			Status: StatusWon,
			Winner: PlayerX,
		}

		// When: another mark is placed
		err := round.Place(PlayerO, 3)

		// Then: ErrGameFinished is returned
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, EmptyCell, round.Board[3])
	})

	t.Run("Winning placement finishes the round", func(t *testing.T) {
		// Given: X holds 0 and 1, X to move
		round := &Round{
			Board: Board{
				PlayerX, PlayerX, EmptyCell,
				EmptyCell, PlayerO, PlayerO,
				EmptyCell, EmptyCell, EmptyCell,
			},
			Turn:   PlayerX,
			Status: StatusActive,
		}

		// When: X completes the top row
		require.NoError(t, round.Place(PlayerX, 2))

		// Then: X has won and no one is to move
		assert.Equal(t, StatusWon, round.Status)
		assert.Equal(t, PlayerX, round.Winner)
		assert.Equal(t, "", round.Turn)
		assert.Equal(t, BannerHumanWins, round.Banner())
	})

	t.Run("Filling the board without a win is a draw", func(t *testing.T) {
		// Given: one empty cell left that does not complete a pattern
		round := &Round{
			Board: Board{
				PlayerX, PlayerO, PlayerX,
				PlayerX, PlayerO, PlayerO,
				PlayerO, PlayerX, EmptyCell,
			},
			Turn:   PlayerX,
			Status: StatusActive,
		}

		// When: X fills the last cell
		require.NoError(t, round.Place(PlayerX, 8))

		// Then: the round is drawn
		assert.Equal(t, StatusDrawn, round.Status)
		assert.Equal(t, PlayerTie, round.Winner)
		assert.Equal(t, BannerDraw, round.Banner())
	})
}

func TestRound_Reset(t *testing.T) {
	// Given: a round the computer has won
	round := &Round{
		ID: "old",
		Board: Board{
			PlayerO, PlayerO, PlayerO,
			PlayerX, PlayerX, EmptyCell,
			PlayerX, EmptyCell, EmptyCell,
		},
		Status: StatusWon,
		Winner: PlayerO,
	}
	assert.Equal(t, BannerComputerWins, round.Banner())

	// When: resetting under a new identifier
	round.Reset("new")

	// Then: the round is fresh with the human to move
	assert.Equal(t, "new", round.ID)
	assert.Equal(t, Board{}, round.Board)
	assert.Equal(t, StatusActive, round.Status)
	assert.Equal(t, HumanMark, round.Turn)
	assert.Equal(t, "", round.Winner)
	assert.Equal(t, "", round.Banner())
}
