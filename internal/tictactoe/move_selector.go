package tictactoe

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// MoveSelector picks the computer's cell: complete its own pattern, else block
// the human's, else a uniformly random empty cell. It looks one move ahead only
// and does not see forks.
type MoveSelector struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewMoveSelector(src rand.Source) *MoveSelector {
	if src == nil {
		seed := uint64(time.Now().UnixNano()) //nolint: gosec // seed only
		src = rand.NewPCG(seed, seed>>1)
	}

	return &MoveSelector{
		rnd: rand.New(src), //nolint: gosec // game move, not a secret
	}
}

// SelectMove returns the cell the computer mark should take on board.
func (that *MoveSelector) SelectMove(board entity.Board) (int, error) {
	if cell := FindCompletingCell(board, entity.ComputerMark); cell != -1 {
		return cell, nil
	}

	if cell := FindCompletingCell(board, entity.HumanMark); cell != -1 {
		return cell, nil
	}

	emptyCells := board.EmptyCells()
	if len(emptyCells) == 0 {
		return -1, apperror.ErrNoAvailableMoves
	}

	that.mu.Lock()
	idx := that.rnd.IntN(len(emptyCells))
	that.mu.Unlock()

	return emptyCells[idx], nil
}

// FindCompletingCell returns the empty cell of the first pattern, in
// declaration order, that holds two marks of mark and one empty cell, or -1.
func FindCompletingCell(board entity.Board, mark string) int {
	for _, pattern := range entity.WinPatterns {
		count := 0
		emptyCell := -1

		for _, cell := range pattern {
			switch board[cell] {
			case mark:
				count++
			case entity.EmptyCell:
				emptyCell = cell
			}
		}

		if count == 2 && emptyCell != -1 {
			return emptyCell
		}
	}

	return -1
}
