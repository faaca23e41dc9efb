package game

import (
	"fmt"
)

type Cell struct {
	board *Board

	row, col      int
	adjacentMines int

	mine, revealed, flagged bool
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell(%v, %v)", cell.row, cell.col)
}

func (cell *Cell) serialize() byte {
	switch {
	case cell.mine:
		switch {
		case cell.revealed:
			return '*'
		case cell.flagged:
			return 'F'
		default:
			return 'O'
		}
	case cell.flagged:
		return 'f'
	case cell.revealed:
		return '.'
	default:
		return '#'
	}
}

func (cell *Cell) deserialize(c byte, fresh bool) bool {
	switch c {
	case '*', 'F', 'O':
		cell.mine = true

		switch c {
		case '*':
			cell.revealed = !fresh
		case 'F':
			cell.flagged = !fresh
		}
	case 'f':
		cell.flagged = !fresh
	case '.':
		cell.revealed = !fresh
	case '#':
	default:
		return false
	}

	return true
}

func (cell *Cell) Row() int {
	return cell.row
}

func (cell *Cell) Col() int {
	return cell.col
}

func (cell *Cell) IsMine() bool {
	return cell.mine
}

func (cell *Cell) IsRevealed() bool {
	return cell.revealed
}

func (cell *Cell) IsFlagged() bool {
	return cell.flagged
}

func (cell *Cell) AdjacentMines() int {
	return cell.adjacentMines
}

// Neighbors returns the up-to-8 cells surrounding this one
func (cell *Cell) Neighbors() []*Cell {
	board := cell.board
	neighbors := make([]*Cell, 0, 8)

	for row := cell.row - 1; row <= cell.row+1; row++ {
		for col := cell.col - 1; col <= cell.col+1; col++ {
			if (row != cell.row || col != cell.col) && board.InBounds(row, col) {
				neighbors = append(neighbors, &board.cells[row][col])
			}
		}
	}

	return neighbors
}

// Click returns the action which would left-click this cell
func (cell *Cell) Click() CellAction {
	return CellAction{
		Row:    cell.row,
		Col:    cell.col,
		Action: Click,
	}
}

// RightClick returns the action which would right-click this cell
func (cell *Cell) RightClick() CellAction {
	return CellAction{
		Row:    cell.row,
		Col:    cell.col,
		Action: RightClick,
	}
}

func (cell *Cell) countAdjacentFlags() int {
	count := 0
	for _, neighbor := range cell.Neighbors() {
		if neighbor.flagged {
			count++
		}
	}
	return count
}

// IsChordable reports whether the cell is revealed and has exactly as many
// flagged neighbors as adjacent mines
func (cell *Cell) IsChordable() bool {
	return cell.revealed && cell.adjacentMines == cell.countAdjacentFlags()
}

func (cell *Cell) click() {
	if cell.IsChordable() {
		cell.chord()
	} else if !cell.flagged {
		cascade([]*Cell{cell})
	}
}

func (cell *Cell) rightClick() {
	if cell.IsChordable() {
		cell.chord()
	} else if !cell.revealed {
		cell.toggleFlagged()
	}
}

func (cell *Cell) chord() {
	cascade(cell.hiddenNeighbors())
}

// hiddenNeighbors returns the neighbors which are neither flagged nor revealed
func (cell *Cell) hiddenNeighbors() []*Cell {
	hidden := make([]*Cell, 0, 8)
	for _, neighbor := range cell.Neighbors() {
		if !neighbor.flagged && !neighbor.revealed {
			hidden = append(hidden, neighbor)
		}
	}
	return hidden
}

func (cell *Cell) toggleFlagged() {
	cell.setFlagged(!cell.flagged)
}

func (cell *Cell) setFlagged(isFlagged bool) {
	if cell.flagged == isFlagged {
		return
	}
	cell.flagged = isFlagged

	if cell.flagged {
		cell.board.numFlags++
	} else {
		cell.board.numFlags--
	}
}

// reveal marks the cell revealed, and returns whether the reveal should
// spread to its neighbors
func (cell *Cell) reveal() bool {
	cell.revealed = true
	return !cell.mine && cell.adjacentMines == 0
}

func (cell *Cell) render(hovered bool) Pixel {
	background := func(normal Color) Color {
		if hovered {
			return DarkGray
		}
		return normal
	}

	switch {
	case !cell.revealed && !cell.flagged:
		return Pixel{Foreground: LightGray, Background: background(LightGray), Value: blankGlyph}
	case !cell.revealed:
		return Pixel{Foreground: Red, Background: background(LightGray), Value: flagGlyph}
	case cell.mine:
		return Pixel{Foreground: Red, Background: background(Red), Value: blankGlyph}
	case cell.adjacentMines == 0:
		return Pixel{Foreground: White, Background: background(White), Value: blankGlyph}
	default:
		return Pixel{
			Foreground: numberColor(cell.adjacentMines),
			Background: background(White),
			Value:      byte('0' + cell.adjacentMines),
		}
	}
}

// numberColor returns the foreground color used for a cell with n adjacent mines
func numberColor(n int) Color {
	return [...]Color{
		Black,
		Blue,
		Green,
		Red,
		DarkBlue,
		DarkRed,
		SeaGreen,
		Black,
		Black,
	}[n]
}
