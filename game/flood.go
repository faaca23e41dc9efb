package game

import (
	"github.com/gammazero/deque"

	"github.com/they4kman/marathonsweep/util/collections"
)

type NeighborGetter func(*Cell) []*Cell

// Visitor handles a single cell, returning whether the flood should continue
// through its neighbors
type Visitor func(*Cell) bool

// flood visits every seed, then breadth-first every neighbor reachable through
// cells whose visit returned true. Each cell is visited at most once.
func flood(seeds []*Cell, visit Visitor, getNeighbors NeighborGetter) {
	visited := make(collections.Set[*Cell])
	var visitQueue deque.Deque

	enqueue := func(cell *Cell) {
		if visited.Contains(cell) {
			return
		}
		visited.Add(cell)
		visitQueue.PushBack(cell)
	}

	for _, seed := range seeds {
		enqueue(seed)
	}

	for visitQueue.Len() > 0 {
		cell := visitQueue.PopFront().(*Cell)
		if visit(cell) {
			for _, neighbor := range getNeighbors(cell) {
				enqueue(neighbor)
			}
		}
	}
}

// cascade reveals the seeds, spreading from every revealed empty cell to its
// unflagged, unrevealed neighbors
func cascade(seeds []*Cell) {
	flood(
		seeds,
		func(cell *Cell) bool {
			return cell.reveal()
		},
		func(cell *Cell) []*Cell {
			return cell.hiddenNeighbors()
		},
	)
}
