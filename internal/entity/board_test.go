package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_HasWon(t *testing.T) {
	t.Run("Every win pattern is detected for both marks", func(t *testing.T) {
		for _, mark := range []string{PlayerX, PlayerO} {
			for _, pattern := range WinPatterns {
				// Given: a board where only one pattern is filled with the mark
				var board Board
				for _, cell := range pattern {
					board[cell] = mark
				}

				// When: evaluating the board for that mark
				won := board.HasWon(mark)

				// Then: the mark has won and the opponent has not
				assert.True(t, won, "mark %s pattern %v", mark, pattern)
				assert.False(t, board.HasWon(OpponentOf(mark)), "mark %s pattern %v", mark, pattern)
			}
		}
	})

	t.Run("Mixed pattern is not a win", func(t *testing.T) {
		// Given: a full board without any uniform pattern
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}

		// When / Then: neither mark has won
		assert.False(t, board.HasWon(PlayerX))
		assert.False(t, board.HasWon(PlayerO))
	})

	t.Run("Empty mark never wins", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When / Then: the empty mark is not reported as a winner
		assert.False(t, board.HasWon(EmptyCell))
	})
}

func TestBoard_HasWon_Exhaustive(t *testing.T) {
	// Given: every assignment of {empty, X, O} to the nine cells
	total := 1
	for range BoardSize {
		total *= 3
	}

	for code := 0; code < total; code++ {
		var board Board
		n := code
		for i := range board {
			board[i] = []string{EmptyCell, PlayerX, PlayerO}[n%3]
			n /= 3
		}

		for _, mark := range []string{PlayerX, PlayerO} {
			// When: computing the expected result directly from the patterns
			expected := false
			for _, pattern := range WinPatterns {
				if board[pattern[0]] == mark && board[pattern[1]] == mark && board[pattern[2]] == mark {
					expected = true
				}
			}

			// Then: the evaluator agrees
			if expected != board.HasWon(mark) {
				t.Fatalf("board %v mark %s: expected %v", board, mark, expected)
			}
		}
	}
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Full board", func(t *testing.T) {
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}

		assert.True(t, board.IsFull())
	})

	t.Run("Board with an empty cell", func(t *testing.T) {
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, EmptyCell, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}

		assert.False(t, board.IsFull())
	})
}

func TestBoard_EmptyCellsAndCount(t *testing.T) {
	// Given: a board with two X marks and one O mark
	board := Board{
		PlayerX, EmptyCell, EmptyCell,
		EmptyCell, PlayerO, EmptyCell,
		EmptyCell, EmptyCell, PlayerX,
	}

	// When / Then: empty cells are listed in index order and marks are counted
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7}, board.EmptyCells())
	assert.Equal(t, 2, board.Count(PlayerX))
	assert.Equal(t, 1, board.Count(PlayerO))
	assert.Equal(t, 6, board.Count(EmptyCell))
}

func TestIsValidCell(t *testing.T) {
	assert.True(t, IsValidCell(0))
	assert.True(t, IsValidCell(8))
	assert.False(t, IsValidCell(-1))
	assert.False(t, IsValidCell(9))
}
