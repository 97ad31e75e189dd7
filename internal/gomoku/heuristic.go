package gomoku

import (
	"errors"
	"math/rand"

	"github.com/rocketscienceinc/gofive-backend/internal/entity"
)

const threatLength = 3

var ErrNoAvailableMoves = errors.New("no available moves")

// ChooseMove - picks the AI cell with a fixed one-ply cascade:
// win now, block a human win, block a human three, take the center, then a random empty cell.
// Every step scans empty cells in ascending index order and the first match wins.
func ChooseMove(board entity.Board, aiMark, humanMark entity.Mark, rnd *rand.Rand) (int, error) {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return 0, ErrNoAvailableMoves
	}

	if cell, ok := firstCompletingLine(board, empty, aiMark); ok {
		return cell, nil
	}

	if cell, ok := firstCompletingLine(board, empty, humanMark); ok {
		return cell, nil
	}

	for _, cell := range empty {
		if makesThree(board, cell, humanMark) {
			return cell, nil
		}
	}

	center := board.Len() / 2
	if board.IsEmpty(center) {
		return center, nil
	}

	return empty[rnd.Intn(len(empty))], nil
}

// firstCompletingLine - first empty cell where mark would become the winner.
func firstCompletingLine(board entity.Board, empty []int, mark entity.Mark) (int, bool) {
	for _, cell := range empty {
		next, err := board.CloneWith(cell, mark)
		if err != nil {
			continue
		}

		if FindWinner(next) == mark {
			return cell, true
		}
	}

	return 0, false
}

// makesThree - whether placing mark at cell gives a contiguous run of three or more through it.
func makesThree(board entity.Board, cell int, mark entity.Mark) bool {
	size := board.Size()
	row, col := cell/size, cell%size

	for _, dir := range Directions {
		count := 1 +
			countRun(board, row, col, dir.dRow, dir.dCol, mark) +
			countRun(board, row, col, -dir.dRow, -dir.dCol, mark)

		if count >= threatLength {
			return true
		}
	}

	return false
}
