package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gofive-backend/internal/apperror"
)

const DefaultBoardSize = 15

// Board is an immutable square grid stored row-major: index = row*size + col.
type Board struct {
	size  int
	cells []Mark
}

func NewBoard(size int) Board {
	if size <= 0 {
		size = DefaultBoardSize
	}

	return Board{
		size:  size,
		cells: make([]Mark, size*size),
	}
}

// BoardFromCells - builds a board from row-major cells, len(cells) must be a perfect square.
func BoardFromCells(cells []Mark) (Board, error) {
	size := 0
	for size*size < len(cells) {
		size++
	}

	if size == 0 || size*size != len(cells) {
		return Board{}, fmt.Errorf("%w: %d cells do not form a square board", apperror.ErrInvalidCell, len(cells))
	}

	for i, mark := range cells {
		if mark != Empty && !mark.IsPlayer() {
			return Board{}, fmt.Errorf("%w: %q at cell %d", apperror.ErrInvalidMark, mark, i)
		}
	}

	board := Board{size: size, cells: make([]Mark, len(cells))}
	copy(board.cells, cells)

	return board, nil
}

func (that Board) Size() int {
	return that.size
}

func (that Board) Len() int {
	return len(that.cells)
}

func (that Board) Index(row, col int) int {
	return row*that.size + col
}

func (that Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < that.size && col < that.size
}

// At - returns the mark at index, out of range reads as Empty.
func (that Board) At(index int) Mark {
	if index < 0 || index >= len(that.cells) {
		return Empty
	}
	return that.cells[index]
}

func (that Board) AtCell(row, col int) Mark {
	if !that.InBounds(row, col) {
		return Empty
	}
	return that.cells[that.Index(row, col)]
}

func (that Board) IsEmpty(index int) bool {
	return index >= 0 && index < len(that.cells) && that.cells[index] == Empty
}

// EmptyCells - indexes of all empty cells in ascending order.
func (that Board) EmptyCells() []int {
	empty := make([]int, 0, len(that.cells))
	for i, mark := range that.cells {
		if mark == Empty {
			empty = append(empty, i)
		}
	}
	return empty
}

func (that Board) IsFull() bool {
	for _, mark := range that.cells {
		if mark == Empty {
			return false
		}
	}
	return true
}

func (that Board) Cells() []Mark {
	cells := make([]Mark, len(that.cells))
	copy(cells, that.cells)
	return cells
}

// CloneWith - returns a copy of the board with mark placed at index. The receiver is never modified.
func (that Board) CloneWith(index int, mark Mark) (Board, error) {
	if !mark.IsPlayer() {
		return Board{}, fmt.Errorf("%w: %w: %q", apperror.ErrInvalidMove, apperror.ErrInvalidMark, mark)
	}

	if index < 0 || index >= len(that.cells) {
		return Board{}, fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrInvalidCell, index)
	}

	if that.cells[index] != Empty {
		return Board{}, fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrCellOccupied, index)
	}

	next := Board{size: that.size, cells: make([]Mark, len(that.cells))}
	copy(next.cells, that.cells)
	next.cells[index] = mark

	return next, nil
}

type boardJSON struct {
	Size  int    `json:"size"`
	Cells []Mark `json:"cells"`
}

func (that Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{Size: that.size, Cells: that.cells})
}
