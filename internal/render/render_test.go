package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

func TestRound(t *testing.T) {
	t.Run("Active round with the human to move", func(t *testing.T) {
		// Given: a round with one mark each
		round := entity.NewRound("r1", "p1")
		round.Board = entity.Board{entity.PlayerX, "", "", "", entity.PlayerO, "", "", "", ""}

		// When: the round is rendered
		view := Round(round)

		// Then: marks map to images and only empty cells are playable
		assert.Equal(t, "r1", view.RoundID)
		assert.Equal(t, entity.StatusActive, view.Status)
		assert.Empty(t, view.Banner)
		assert.False(t, view.ShowNewGame)
		assert.False(t, view.ComputerThinking)

		assert.Equal(t, Cell{Index: 0, Mark: entity.PlayerX, Image: ImageX}, view.Cells[0])
		assert.Equal(t, Cell{Index: 4, Mark: entity.PlayerO, Image: ImageO}, view.Cells[4])
		assert.Equal(t, Cell{Index: 8, Playable: true}, view.Cells[8])
	})

	t.Run("Computer thinking disables every cell", func(t *testing.T) {
		round := entity.NewRound("r1", "p1")
		round.Board[0] = entity.PlayerX
		round.Turn = entity.ComputerMark

		view := Round(round)

		assert.True(t, view.ComputerThinking)
		for _, cell := range view.Cells {
			assert.False(t, cell.Playable)
		}
	})

	t.Run("Finished rounds show banner and new game", func(t *testing.T) {
		cases := []struct {
			name   string
			status string
			winner string
			banner string
		}{
			{"human wins", entity.StatusWon, entity.PlayerX, "Human wins!"},
			{"computer wins", entity.StatusWon, entity.PlayerO, "Computer wins!"},
			{"draw", entity.StatusDrawn, entity.PlayerTie, "It's a draw!"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				round := entity.NewRound("r1", "p1")
				round.Status = tc.status
				round.Winner = tc.winner
				round.Turn = ""

				view := Round(round)

				assert.Equal(t, tc.banner, view.Banner)
				assert.True(t, view.ShowNewGame)
				assert.False(t, view.ComputerThinking)
				for _, cell := range view.Cells {
					assert.False(t, cell.Playable)
				}
			})
		}
	})
}
