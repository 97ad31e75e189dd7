package gomoku

import "github.com/rocketscienceinc/gofive-backend/internal/entity"

const WinLength = 5

// direction is a (row, col) step.
type direction struct {
	dRow, dCol int
}

// Directions are scanned in this order; it decides which mark is reported when both have a line.
var Directions = [4]direction{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// FindWinner - returns the mark owning a run of five or more, or entity.Empty when there is none.
//
// Every run is visited from its first cell in row-major order, so counting forward only is enough.
func FindWinner(board entity.Board) entity.Mark {
	size := board.Size()

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			current := board.AtCell(row, col)
			if current == entity.Empty {
				continue
			}

			for _, dir := range Directions {
				if 1+countRun(board, row, col, dir.dRow, dir.dCol, current) >= WinLength {
					return current
				}
			}
		}
	}

	return entity.Empty
}

// countRun - counts consecutive cells holding mark, starting one step away from (row, col).
func countRun(board entity.Board, row, col, dRow, dCol int, mark entity.Mark) int {
	count := 0

	r, c := row+dRow, col+dCol
	for board.InBounds(r, c) && board.AtCell(r, c) == mark {
		count++
		r += dRow
		c += dCol
	}

	return count
}
