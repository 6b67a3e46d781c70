package entity

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""

	// HumanMark always moves first within a round.
	HumanMark    = PlayerX
	ComputerMark = PlayerO

	BoardSize = 9
)

// WinPatterns is checked in declaration order: rows, columns, diagonals.
var WinPatterns = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid stored row-major.
type Board [BoardSize]string

// HasWon reports whether mark occupies every cell of some win pattern.
func (that Board) HasWon(mark string) bool {
	if mark == EmptyCell {
		return false
	}

	for _, pattern := range WinPatterns {
		if that[pattern[0]] == mark && that[pattern[1]] == mark && that[pattern[2]] == mark {
			return true
		}
	}

	return false
}

// IsFull reports whether no empty cell remains.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) Count(mark string) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func OpponentOf(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
