package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrInvalidMineCount  = errors.New("mine count must be between zero and the number of cells")
)

type Board struct {
	rows, columns int // in number of cells
	numMines      int
	cells         [][]Cell

	numFlags int

	hoverRow, hoverCol int

	seed int64
	rand *rand.Rand
}

// NewBoard creates a rows x columns board holding the given number of randomly
// placed mines. A seed of 0 seeds mine placement from the current time.
func NewBoard(rows, columns, numMines int, seed int64) (*Board, error) {
	board, err := newEmptyBoard(rows, columns, seed)
	if err != nil {
		return nil, err
	}
	if err := board.checkMineCount(numMines); err != nil {
		return nil, err
	}

	board.numMines = numMines
	board.Reset()
	return board, nil
}

func newEmptyBoard(rows, columns int, seed int64) (*Board, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, columns)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	board := &Board{
		rows:     rows,
		columns:  columns,
		cells:    make([][]Cell, rows),
		hoverRow: noHover,
		hoverCol: noHover,
		seed:     seed,
		rand:     rand.New(rand.NewSource(seed)),
	}

	for row := 0; row < rows; row++ {
		board.cells[row] = make([]Cell, columns)
		for col := 0; col < columns; col++ {
			cell := &board.cells[row][col]
			cell.board = board
			cell.row, cell.col = row, col
		}
	}

	return board, nil
}

func (board *Board) checkMineCount(numMines int) error {
	if numMines < 0 || numMines > board.NumCells() {
		return fmt.Errorf("%w: got %d for %d cells", ErrInvalidMineCount, numMines, board.NumCells())
	}
	return nil
}

func (board *Board) Rows() int {
	return board.rows
}

func (board *Board) Columns() int {
	return board.columns
}

func (board *Board) NumCells() int {
	return board.rows * board.columns
}

func (board *Board) Mines() int {
	return board.numMines
}

func (board *Board) NumFlags() int {
	return board.numFlags
}

func (board *Board) Seed() int64 {
	return board.seed
}

func (board *Board) Rand() *rand.Rand {
	return board.rand
}

// Hover returns the hovered coordinates, which may lie outside the board
func (board *Board) Hover() (int, int) {
	return board.hoverRow, board.hoverCol
}

func (board *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < board.rows && col < board.columns
}

// CellAt returns the cell at the given coordinates. Coordinates outside the
// board are a programming error, and panic.
func (board *Board) CellAt(row, col int) *Cell {
	if !board.InBounds(row, col) {
		panic(fmt.Sprintf("cell (%d, %d) out of range for %dx%d board", row, col, board.rows, board.columns))
	}
	return &board.cells[row][col]
}

// Cells returns every cell, in row-major order
func (board *Board) Cells() []*Cell {
	cells := make([]*Cell, 0, board.NumCells())
	for row := range board.cells {
		for col := range board.cells[row] {
			cells = append(cells, &board.cells[row][col])
		}
	}
	return cells
}

// Reset clears all cell state and places a fresh set of mines
func (board *Board) Reset() {
	for _, cell := range board.Cells() {
		cell.mine = false
		cell.flagged = false
		cell.revealed = false
		cell.adjacentMines = 0
	}
	board.numFlags = 0

	board.assignMines()
	board.assignAdjacentMines()
}

func (board *Board) assignMines() {
	// Shuffle cell indexes, then mine the first numMines of them
	cellIndexes := board.rand.Perm(board.NumCells())
	for _, cellIdx := range cellIndexes[:board.numMines] {
		row, col := cellIdx/board.columns, cellIdx%board.columns
		board.cells[row][col].mine = true
	}
}

func (board *Board) assignAdjacentMines() {
	for _, cell := range board.Cells() {
		cell.adjacentMines = 0
		for _, neighbor := range cell.Neighbors() {
			if neighbor.mine {
				cell.adjacentMines++
			}
		}
	}
}

func (board *Board) OnLeftClick(row, col int) {
	cell := board.CellAt(row, col)
	if board.IsAlive() {
		cell.click()
	}
}

func (board *Board) OnRightClick(row, col int) {
	cell := board.CellAt(row, col)
	if board.IsAlive() {
		cell.rightClick()
	}
}

// OnKeyUp flags (or chords) the hovered cell, if any
func (board *Board) OnKeyUp() {
	if board.InBounds(board.hoverRow, board.hoverCol) {
		board.OnRightClick(board.hoverRow, board.hoverCol)
	}
}

// OnHover records the hovered cell. Pass coordinates outside the board, such
// as (-1, -1), to clear it.
func (board *Board) OnHover(row, col int) {
	board.hoverRow = row
	board.hoverCol = col
}

func (board *Board) CountAdjacentFlags(row, col int) int {
	return board.CellAt(row, col).countAdjacentFlags()
}

// Restore clears all flags and reveals, keeping the mine layout
func (board *Board) Restore() {
	for _, cell := range board.Cells() {
		cell.flagged = false
		cell.revealed = false
	}
	board.numFlags = 0
}

// Update changes the number of mines and regenerates the board. A count
// outside [0, NumCells()] panics.
func (board *Board) Update(numMines int) {
	if err := board.checkMineCount(numMines); err != nil {
		panic(err)
	}
	board.numMines = numMines
	board.Reset()
}

// IsAlive reports whether no mine has been revealed
func (board *Board) IsAlive() bool {
	for _, cell := range board.Cells() {
		if cell.revealed && cell.mine {
			return false
		}
	}
	return true
}

// IsComplete reports whether every cell without a mine has been revealed
func (board *Board) IsComplete() bool {
	numRevealed := 0
	for _, cell := range board.Cells() {
		if cell.revealed {
			numRevealed++
		}
	}
	return numRevealed == board.NumCells()-board.numMines
}

// Render draws one pixel per cell
func (board *Board) Render() *Bitmap {
	bitmap := NewBitmap(board.rows, board.columns)
	for _, cell := range board.Cells() {
		hovered := cell.row == board.hoverRow && cell.col == board.hoverCol
		bitmap.Set(cell.row, cell.col, cell.render(hovered))
	}
	return bitmap
}
