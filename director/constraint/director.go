package constraint

import (
	"fmt"
	"math"
	"strings"

	"github.com/they4kman/marathonsweep/director/random"
	"github.com/they4kman/marathonsweep/game"
	"github.com/they4kman/marathonsweep/util/collections"
)

// Director plays from what the revealed numbers say. When no number settles a
// cell, it clicks the cell least likely to hold a mine, falling back to a
// random guess on an untouched board.
type Director struct {
	board  *game.Board
	random random.Director
}

// Observation records that numMines of cells hold mines
type Observation struct {
	origin   *game.Cell
	numMines int
	cells    collections.Set[*game.Cell]
	ordered  []*game.Cell
}

func (observation Observation) String() string {
	var cellsRepr strings.Builder
	for i, cell := range observation.ordered {
		if i > 0 {
			cellsRepr.WriteString(", ")
		}
		cellsRepr.WriteString(fmt.Sprintf("(%d, %d)", cell.Row(), cell.Col()))
	}

	return fmt.Sprintf("Obs[(%d, %d), %d ε %s]",
		observation.origin.Row(), observation.origin.Col(), observation.numMines, cellsRepr.String())
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.random.Init(board)
}

func (director *Director) Act() (game.CellAction, bool) {
	if director.board == nil {
		return game.CellAction{}, false
	}

	observations := director.observe()

	actors := []func([]*Observation) (game.CellAction, bool){
		director.actDeliberate,
		director.actSubset,
		director.actLowestProbability,
		func([]*Observation) (game.CellAction, bool) {
			return director.random.Act()
		},
	}

	for _, actor := range actors {
		if action, ok := actor(observations); ok {
			return action, true
		}
	}
	return game.CellAction{}, false
}

// observe builds one observation per revealed number bordering hidden cells
func (director *Director) observe() []*Observation {
	var observations []*Observation

	for _, cell := range director.board.Cells() {
		if !cell.IsRevealed() || cell.IsMine() || cell.AdjacentMines() == 0 {
			continue
		}

		observation := &Observation{
			origin:   cell,
			numMines: cell.AdjacentMines(),
			cells:    make(collections.Set[*game.Cell]),
		}
		for _, neighbor := range cell.Neighbors() {
			if neighbor.IsRevealed() {
				continue
			}
			if neighbor.IsFlagged() {
				observation.numMines--
			} else {
				observation.cells.Add(neighbor)
				observation.ordered = append(observation.ordered, neighbor)
			}
		}

		if len(observation.cells) > 0 {
			observations = append(observations, observation)
		}
	}

	return observations
}

// actDeliberate flags a cell which must be a mine, or chords a number whose
// mines are all flagged
func (director *Director) actDeliberate(observations []*Observation) (game.CellAction, bool) {
	for _, observation := range observations {
		switch {
		case observation.numMines == len(observation.cells):
			return observation.ordered[0].RightClick(), true
		case observation.numMines == 0:
			return observation.origin.Click(), true
		}
	}
	return game.CellAction{}, false
}

// actSubset compares overlapping observations. When every cell of one lies
// within another, the other's remaining cells hold the difference in mines.
func (director *Director) actSubset(observations []*Observation) (game.CellAction, bool) {
	for _, observation := range observations {
		for _, other := range observations {
			if other == observation || len(other.cells) <= len(observation.cells) {
				continue
			}

			shared := observation.cells.Intersection(other.cells)
			if len(shared) != len(observation.cells) {
				continue
			}

			leftover := make([]*game.Cell, 0, len(other.cells)-len(shared))
			for _, cell := range other.ordered {
				if !shared.Contains(cell) {
					leftover = append(leftover, cell)
				}
			}

			switch other.numMines - observation.numMines {
			case 0:
				return leftover[0].Click(), true
			case len(leftover):
				return leftover[0].RightClick(), true
			}
		}
	}
	return game.CellAction{}, false
}

// actLowestProbability clicks one of the cells with the lowest known chance of
// holding a mine
func (director *Director) actLowestProbability(observations []*Observation) (game.CellAction, bool) {
	lowestProbability := math.Inf(1)
	cellProbabilities := make(map[*game.Cell]float64)
	var cells []*game.Cell

	for _, observation := range observations {
		probability := observation.MineProbability()

		for _, cell := range observation.ordered {
			pastProbability, hasPastProbability := cellProbabilities[cell]
			if !hasPastProbability {
				cells = append(cells, cell)
			}
			if !hasPastProbability || probability < pastProbability {
				cellProbabilities[cell] = probability
			}
			if probability < lowestProbability {
				lowestProbability = probability
			}
		}
	}

	lowestProbabilityCells := make([]*game.Cell, 0, len(cells))
	for _, cell := range cells {
		if cellProbabilities[cell] <= lowestProbability {
			lowestProbabilityCells = append(lowestProbabilityCells, cell)
		}
	}

	if len(lowestProbabilityCells) == 0 {
		return game.CellAction{}, false
	}

	director.board.Rand().Shuffle(len(lowestProbabilityCells), func(i, j int) {
		lowestProbabilityCells[i], lowestProbabilityCells[j] = lowestProbabilityCells[j], lowestProbabilityCells[i]
	})
	return lowestProbabilityCells[0].Click(), true
}
