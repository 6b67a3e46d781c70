package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrRoundNotFound    = errors.New("round not found")
	ErrPlayerNotFound   = errors.New("player not found")
)
