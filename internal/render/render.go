package render

import (
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

const (
	ImageX = "/images/X.svg"
	ImageO = "/images/O.svg"
)

type Cell struct {
	Index    int    `json:"index"`
	Mark     string `json:"mark"`
	Image    string `json:"image,omitempty"`
	Playable bool   `json:"playable"`
}

// View is everything a client needs to draw a round.
type View struct {
	RoundID          string                 `json:"round_id"`
	Cells            [entity.BoardSize]Cell `json:"cells"`
	Status           string                 `json:"status"`
	Banner           string                 `json:"banner,omitempty"`
	ShowNewGame      bool                   `json:"show_new_game"`
	ComputerThinking bool                   `json:"computer_thinking"`
}

// Round builds the view of round. A cell is playable only when the human is
// to move and the cell is empty.
func Round(round *entity.Round) View {
	humanToMove := round.IsActive() && round.Turn == entity.HumanMark

	view := View{
		RoundID:          round.ID,
		Status:           round.Status,
		Banner:           round.Banner(),
		ShowNewGame:      round.IsFinished(),
		ComputerThinking: round.AwaitsComputer(),
	}

	for i, mark := range round.Board {
		view.Cells[i] = Cell{
			Index:    i,
			Mark:     mark,
			Image:    ImageFor(mark),
			Playable: humanToMove && mark == entity.EmptyCell,
		}
	}

	return view
}

// ImageFor returns the icon path for mark, or "" for an empty cell.
func ImageFor(mark string) string {
	switch mark {
	case entity.PlayerX:
		return ImageX
	case entity.PlayerO:
		return ImageO
	default:
		return ""
	}
}
