package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// Transition describes the outcome of one input applied to a round.
type Transition struct {
	Cell    int    `json:"cell"`
	Mark    string `json:"mark,omitempty"`
	Applied bool   `json:"applied"`
	Status  string `json:"status"`
	Winner  string `json:"winner,omitempty"`

	// ComputerNext is set when the human move left the round active and the
	// computer has to reply.
	ComputerNext bool `json:"computer_next"`
}

// GameController owns a single round and applies human input, computer
// replies and restarts to it.
type GameController struct {
	round    *entity.Round
	selector *MoveSelector
}

func NewGameController(round *entity.Round, selector *MoveSelector) *GameController {
	return &GameController{
		round:    round,
		selector: selector,
	}
}

func (that *GameController) Round() *entity.Round {
	return that.round
}

// HumanTurn places the human mark into cell. Input on an occupied cell, out of
// turn or after the round ended is ignored without error.
func (that *GameController) HumanTurn(cell int) (Transition, error) {
	if !entity.IsValidCell(cell) {
		return Transition{}, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !that.round.IsActive() || that.round.Turn != entity.HumanMark || that.round.Board[cell] != entity.EmptyCell {
		return that.ignored(cell), nil
	}

	return that.place(entity.HumanMark, cell)
}

// ComputerTurn lets the computer reply. It is a no-op unless the round is
// active and waiting on the computer.
func (that *GameController) ComputerTurn() (Transition, error) {
	if !that.round.AwaitsComputer() {
		return that.ignored(-1), nil
	}

	cell, err := that.selector.SelectMove(that.round.Board)
	if err != nil {
		return Transition{}, fmt.Errorf("failed to select computer move: %w", err)
	}

	return that.place(entity.ComputerMark, cell)
}

// NewGame starts a fresh round under roundID with the human to move.
func (that *GameController) NewGame(roundID string) {
	that.round.Reset(roundID)
}

func (that *GameController) place(mark string, cell int) (Transition, error) {
	if err := that.round.Place(mark, cell); err != nil {
		return Transition{}, fmt.Errorf("failed to place %s: %w", mark, err)
	}

	return Transition{
		Cell:         cell,
		Mark:         mark,
		Applied:      true,
		Status:       that.round.Status,
		Winner:       that.round.Winner,
		ComputerNext: that.round.AwaitsComputer(),
	}, nil
}

func (that *GameController) ignored(cell int) Transition {
	return Transition{
		Cell:   cell,
		Status: that.round.Status,
		Winner: that.round.Winner,
	}
}
