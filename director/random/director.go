package random

import (
	"github.com/they4kman/marathonsweep/game"
)

// Director clicks a random unrevealed, unflagged cell
type Director struct {
	board *game.Board
}

func (director *Director) Init(board *game.Board) {
	director.board = board
}

func (director *Director) Act() (game.CellAction, bool) {
	if director.board == nil {
		return game.CellAction{}, false
	}

	candidates := make([]*game.Cell, 0, director.board.NumCells())
	for _, cell := range director.board.Cells() {
		if !cell.IsRevealed() && !cell.IsFlagged() {
			candidates = append(candidates, cell)
		}
	}

	if len(candidates) == 0 {
		return game.CellAction{}, false
	}

	cell := candidates[director.board.Rand().Intn(len(candidates))]
	return cell.Click(), true
}
