// Package ui renders a marathon game in the terminal with tview.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/they4kman/marathonsweep/game"
)

// Terminal columns per board cell, for a square appearance
const cellWidth = 2

// BoardView draws the game board, one cell per terminal row and two columns
type BoardView struct {
	*tview.Box
	game *game.Game
}

func NewBoardView(g *game.Game) *BoardView {
	return &BoardView{
		Box:  tview.NewBox(),
		game: g,
	}
}

// Size returns the width and height needed to draw the whole board
func (view *BoardView) Size() (int, int) {
	board := view.game.Board()
	return board.Columns() * cellWidth, board.Rows()
}

func (view *BoardView) Draw(screen tcell.Screen) {
	view.Box.DrawForSubclass(screen, view)
	left, top, width, height := view.GetInnerRect()

	bitmap := view.game.RenderBoard()
	for row := 0; row < bitmap.Rows() && row < height; row++ {
		for col := 0; col < bitmap.Columns() && (col+1)*cellWidth <= width; col++ {
			pixel := bitmap.Get(row, col)
			style := tcell.StyleDefault.
				Foreground(toTcell(pixel.Foreground)).
				Background(toTcell(pixel.Background)).
				Bold(true)

			screen.SetContent(left+col*cellWidth, top+row, rune(pixel.Value), nil, style)
			screen.SetContent(left+col*cellWidth+1, top+row, ' ', nil, style)
		}
	}
}

// cellAt translates screen coordinates to board coordinates. Positions left
// of or above the board map to (-1, -1); positions past its far edges map
// outside the board too.
func (view *BoardView) cellAt(x, y int) (int, int) {
	left, top, _, _ := view.GetInnerRect()
	dx, dy := x-left, y-top
	if dx < 0 || dy < 0 {
		return -1, -1
	}
	return dy, dx / cellWidth
}

func toTcell(color game.Color) tcell.Color {
	rgba := color.RGBA()
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}
