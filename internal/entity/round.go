package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

const (
	StatusActive = "active"
	StatusWon    = "won"
	StatusDrawn  = "drawn"
)

const (
	BannerHumanWins    = "Human wins!"
	BannerComputerWins = "Computer wins!"
	BannerDraw         = "It's a draw!"
)

// Round is one playthrough from an empty board to a won or drawn state.
type Round struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	Board    Board  `json:"board"`
	Turn     string `json:"turn"`
	Status   string `json:"status"`
	Winner   string `json:"winner"`
}

func NewRound(id, playerID string) *Round {
	return &Round{
		ID:       id,
		PlayerID: playerID,
		Board:    Board{},
		Turn:     HumanMark,
		Status:   StatusActive,
	}
}

// Reset clears the board and starts the round over under a new identifier.
func (that *Round) Reset(id string) {
	that.ID = id
	that.Board = Board{}
	that.Turn = HumanMark
	that.Status = StatusActive
	that.Winner = ""
}

func (that *Round) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Round) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDrawn
}

// AwaitsComputer reports whether the round is waiting on the computer's reply.
func (that *Round) AwaitsComputer() bool {
	return that.IsActive() && that.Turn == ComputerMark
}

// Place puts mark into cell and updates status, winner and turn.
func (that *Round) Place(mark string, cell int) error {
	if !IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !that.IsActive() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = mark
	that.updateStatus(mark)

	return nil
}

func (that *Round) updateStatus(lastMark string) {
	switch {
	case that.Board.HasWon(lastMark):
		that.Status = StatusWon
		that.Winner = lastMark
		that.Turn = ""
	case that.Board.IsFull():
		that.Status = StatusDrawn
		that.Winner = PlayerTie
		that.Turn = ""
	default:
		that.Turn = OpponentOf(lastMark)
	}
}

// Banner returns the result text for a finished round, empty otherwise.
func (that *Round) Banner() string {
	switch that.Status {
	case StatusWon:
		if that.Winner == HumanMark {
			return BannerHumanWins
		}
		return BannerComputerWins
	case StatusDrawn:
		return BannerDraw
	default:
		return ""
	}
}
