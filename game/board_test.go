package game

import (
	"errors"
	"strings"
	"testing"
)

// boardFromLayout builds a board from snapshot rows, keeping flags and reveals
func boardFromLayout(t *testing.T, rows ...string) *Board {
	t.Helper()

	snapshot := &BoardSnapshot{Seed: 1, SerializedBoard: strings.Join(rows, "\n")}
	board, err := snapshot.CreateBoard(false)
	if err != nil {
		t.Fatalf("Failed to create board from %q: %v", rows, err)
	}
	return board
}

func newTestBoard(t *testing.T, rows, columns, mines int) *Board {
	t.Helper()

	board, err := NewBoard(rows, columns, mines, 42)
	if err != nil {
		t.Fatalf("NewBoard(%d, %d, %d) failed: %v", rows, columns, mines, err)
	}
	return board
}

// revealedCells lists the revealed coordinates in row-major order
func revealedCells(board *Board) [][2]int {
	var revealed [][2]int
	for _, cell := range board.Cells() {
		if cell.IsRevealed() {
			revealed = append(revealed, [2]int{cell.Row(), cell.Col()})
		}
	}
	return revealed
}

func expectPixel(t *testing.T, pixel Pixel, value byte, foreground, background Color) {
	t.Helper()

	if pixel.Value != value {
		t.Errorf("Expected glyph %q, got %q", value, pixel.Value)
	}
	if pixel.Foreground != foreground {
		t.Errorf("Expected foreground %v, got %v", foreground, pixel.Foreground)
	}
	if pixel.Background != background {
		t.Errorf("Expected background %v, got %v", background, pixel.Background)
	}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()

	defer func() {
		if recover() == nil {
			t.Errorf("Expected %s to panic", name)
		}
	}()
	fn()
}

func TestNewBoardPlacesMines(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 2}, {3, 7}, {16, 30}}

	for _, size := range sizes {
		rows, columns := size[0], size[1]
		for _, mines := range []int{0, 1, rows * columns / 2, rows * columns} {
			board := newTestBoard(t, rows, columns, mines)

			numMines := 0
			for _, cell := range board.Cells() {
				if cell.IsMine() {
					numMines++
				}

				expected := 0
				for dr := -1; dr <= 1; dr++ {
					for dc := -1; dc <= 1; dc++ {
						r, c := cell.Row()+dr, cell.Col()+dc
						if (dr != 0 || dc != 0) && board.InBounds(r, c) && board.CellAt(r, c).IsMine() {
							expected++
						}
					}
				}
				if cell.AdjacentMines() != expected {
					t.Errorf("%dx%d/%d: %v has %d adjacent mines, expected %d",
						rows, columns, mines, cell, cell.AdjacentMines(), expected)
				}
			}

			if numMines != mines {
				t.Errorf("%dx%d: expected %d mines, got %d", rows, columns, mines, numMines)
			}
			if board.Mines() != mines {
				t.Errorf("%dx%d: Mines() returned %d, expected %d", rows, columns, board.Mines(), mines)
			}
		}
	}
}

func TestNewBoardRejectsInvalidParameters(t *testing.T) {
	cases := []struct {
		rows, columns, mines int
		err                  error
	}{
		{0, 2, 0, ErrInvalidDimensions},
		{2, 0, 0, ErrInvalidDimensions},
		{-1, 3, 0, ErrInvalidDimensions},
		{2, 2, -1, ErrInvalidMineCount},
		{2, 2, 5, ErrInvalidMineCount},
	}

	for _, c := range cases {
		board, err := NewBoard(c.rows, c.columns, c.mines, 1)
		if !errors.Is(err, c.err) {
			t.Errorf("NewBoard(%d, %d, %d): expected %v, got %v", c.rows, c.columns, c.mines, c.err, err)
		}
		if board != nil {
			t.Errorf("NewBoard(%d, %d, %d): expected no board", c.rows, c.columns, c.mines)
		}
	}
}

func TestInitialBoardState(t *testing.T) {
	board := newTestBoard(t, 2, 2, 1)

	if board.Rows() != 2 || board.Columns() != 2 {
		t.Errorf("Expected 2x2 board, got %dx%d", board.Rows(), board.Columns())
	}
	if !board.IsAlive() {
		t.Error("Expected new board to be alive")
	}
	if board.IsComplete() {
		t.Error("Expected new board with a mine to be incomplete")
	}

	bitmap := board.Render()
	if bitmap.Rows() != 2 || bitmap.Columns() != 2 {
		t.Fatalf("Expected 2x2 bitmap, got %dx%d", bitmap.Rows(), bitmap.Columns())
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			expectPixel(t, bitmap.Get(r, c), ' ', LightGray, LightGray)
		}
	}
}

func TestHover(t *testing.T) {
	board := newTestBoard(t, 2, 2, 1)

	board.OnHover(0, 0)
	expectPixel(t, board.Render().Get(0, 0), ' ', LightGray, DarkGray)
	expectPixel(t, board.Render().Get(1, 1), ' ', LightGray, LightGray)

	board.OnHover(-1, -1)
	expectPixel(t, board.Render().Get(0, 0), ' ', LightGray, LightGray)
}

func TestCompleteBoard(t *testing.T) {
	board := newTestBoard(t, 2, 2, 0)

	board.OnLeftClick(0, 0)

	if !board.IsComplete() {
		t.Error("Expected mine-free board to be complete after one click")
	}
	expectPixel(t, board.Render().Get(0, 0), ' ', White, White)
}

func TestFlagCell(t *testing.T) {
	board := newTestBoard(t, 2, 2, 1)

	board.OnRightClick(0, 0)
	expectPixel(t, board.Render().Get(0, 0), '*', Red, LightGray)
	if board.NumFlags() != 1 {
		t.Errorf("Expected 1 flag, got %d", board.NumFlags())
	}

	board.OnRightClick(0, 0)
	expectPixel(t, board.Render().Get(0, 0), ' ', LightGray, LightGray)
	if board.NumFlags() != 0 {
		t.Errorf("Expected 0 flags, got %d", board.NumFlags())
	}
}

func TestFlagRevealedCellIsIgnored(t *testing.T) {
	board := boardFromLayout(t,
		"O##",
		"###",
	)

	board.OnLeftClick(1, 1)
	board.OnRightClick(1, 1)

	cell := board.CellAt(1, 1)
	if cell.IsFlagged() || !cell.IsRevealed() {
		t.Errorf("Expected %v to stay revealed and unflagged", cell)
	}
}

func TestKeystrokeFlagCell(t *testing.T) {
	board := newTestBoard(t, 2, 2, 1)

	board.OnKeyUp()
	if board.NumFlags() != 0 {
		t.Error("Expected key up without a hovered cell to do nothing")
	}

	board.OnHover(0, 0)
	board.OnKeyUp()
	expectPixel(t, board.Render().Get(0, 0), '*', Red, DarkGray)
}

func TestRevealMine(t *testing.T) {
	board := newTestBoard(t, 2, 2, 4)

	board.OnLeftClick(0, 0)
	if board.IsComplete() {
		t.Error("Expected board to be incomplete")
	}
	if board.IsAlive() {
		t.Error("Expected board to be dead after revealing a mine")
	}
	expectPixel(t, board.Render().Get(0, 0), ' ', Red, Red)

	board.OnHover(0, 0)
	expectPixel(t, board.Render().Get(0, 0), ' ', Red, DarkGray)

	// A dead board ignores clicks
	board.OnRightClick(1, 1)
	board.OnLeftClick(1, 1)
	if cell := board.CellAt(1, 1); cell.IsFlagged() || cell.IsRevealed() {
		t.Errorf("Expected %v to be untouched on a dead board", cell)
	}
}

func TestBoardUpdate(t *testing.T) {
	board := newTestBoard(t, 2, 2, 0)
	board.OnLeftClick(0, 0)

	board.Update(4)

	if board.Mines() != 4 {
		t.Errorf("Expected 4 mines, got %d", board.Mines())
	}
	for _, cell := range board.Cells() {
		if !cell.IsMine() || cell.IsRevealed() {
			t.Errorf("Expected %v to be an unrevealed mine", cell)
		}
	}

	expectPanic(t, "Update(5)", func() { board.Update(5) })
	expectPanic(t, "Update(-1)", func() { board.Update(-1) })
}

func TestRestoreBoard(t *testing.T) {
	board := newTestBoard(t, 4, 4, 6)

	var layout []bool
	for _, cell := range board.Cells() {
		layout = append(layout, cell.IsMine())
	}

	board.OnRightClick(0, 0)
	for _, cell := range board.Cells() {
		if !cell.IsFlagged() {
			board.OnLeftClick(cell.Row(), cell.Col())
		}
	}
	if board.IsAlive() {
		t.Fatal("Expected board to be dead after clicking everything")
	}

	board.Restore()

	if !board.IsAlive() {
		t.Error("Expected restored board to be alive")
	}
	if board.NumFlags() != 0 {
		t.Errorf("Expected no flags after restore, got %d", board.NumFlags())
	}
	for i, cell := range board.Cells() {
		if cell.IsFlagged() || cell.IsRevealed() {
			t.Errorf("Expected %v to be cleared", cell)
		}
		if cell.IsMine() != layout[i] {
			t.Errorf("Expected %v to keep its mine state %v", cell, layout[i])
		}
	}
}

func TestFloodFillRevealsRegionAndBorder(t *testing.T) {
	board := boardFromLayout(t,
		"####O",
		"#####",
		"#####",
		"O####",
	)

	board.OnLeftClick(0, 0)

	for _, cell := range board.Cells() {
		if cell.IsMine() == cell.IsRevealed() {
			t.Errorf("Expected %v revealed=%v, got %v", cell, !cell.IsMine(), cell.IsRevealed())
		}
	}
	if !board.IsComplete() || !board.IsAlive() {
		t.Error("Expected flood fill to clear the board safely")
	}
}

func TestFloodFillStopsAtFlags(t *testing.T) {
	board := boardFromLayout(t,
		"##f##",
		"##f##",
		"##f##",
	)

	board.OnLeftClick(0, 0)

	for _, cell := range board.Cells() {
		expected := cell.Col() < 2
		if cell.IsRevealed() != expected {
			t.Errorf("Expected %v revealed=%v", cell, expected)
		}
	}
	if board.IsComplete() {
		t.Error("Expected board behind the flags to remain incomplete")
	}
}

func TestFloodFillStopsAtNumbers(t *testing.T) {
	board := boardFromLayout(t,
		"#####",
		"#####",
		"OOOOO",
		"#####",
	)

	board.OnLeftClick(0, 0)

	for _, cell := range board.Cells() {
		expected := cell.Row() < 2
		if cell.IsRevealed() != expected {
			t.Errorf("Expected %v revealed=%v", cell, expected)
		}
	}
}

func TestRevealNeighborsLeftClick(t *testing.T) {
	board := boardFromLayout(t,
		"O#",
		"##",
	)

	board.OnRightClick(0, 0)
	board.OnLeftClick(1, 1)
	expectPixel(t, board.Render().Get(1, 1), '1', Blue, White)

	board.OnLeftClick(1, 1)
	if !board.IsAlive() {
		t.Error("Expected chord to avoid the flagged mine")
	}
	if !board.IsComplete() {
		t.Error("Expected chord to complete the board")
	}
}

func TestRevealNeighborsRightClick(t *testing.T) {
	board := boardFromLayout(t,
		"O#",
		"##",
	)

	board.OnRightClick(0, 0)
	board.OnLeftClick(1, 1)
	expectPixel(t, board.Render().Get(1, 1), '1', Blue, White)

	board.OnRightClick(1, 1)
	if !board.IsAlive() {
		t.Error("Expected chord to avoid the flagged mine")
	}
	if !board.IsComplete() {
		t.Error("Expected chord to complete the board")
	}
}

func TestChordRevealsOnlyHiddenNeighbors(t *testing.T) {
	board := boardFromLayout(t,
		"F#F#",
		"#.##",
		"F#F#",
	)

	if n := board.CountAdjacentFlags(1, 1); n != 4 {
		t.Fatalf("Expected 4 adjacent flags, got %d", n)
	}

	board.OnLeftClick(1, 1)

	expected := [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, 2}, {2, 1}}
	revealed := revealedCells(board)
	if len(revealed) != len(expected) {
		t.Fatalf("Expected %v revealed, got %v", expected, revealed)
	}
	for i := range expected {
		if revealed[i] != expected[i] {
			t.Errorf("Expected %v revealed, got %v", expected, revealed)
			break
		}
	}
	for _, coords := range expected[:2] {
		expectPixel(t, board.Render().Get(coords[0], coords[1]), '2', Green, White)
	}
}

func TestUnsatisfiedChordDoesNothing(t *testing.T) {
	board := boardFromLayout(t,
		"F#O#",
		"#.##",
		"F#F#",
	)

	board.OnLeftClick(1, 1)
	board.OnRightClick(1, 1)

	if revealed := revealedCells(board); len(revealed) != 1 {
		t.Errorf("Expected only the clicked cell revealed, got %v", revealed)
	}
	if board.CellAt(1, 1).IsFlagged() {
		t.Error("Expected right click on a revealed cell not to flag it")
	}
}

func TestRenderNumberColors(t *testing.T) {
	board := boardFromLayout(t,
		"OOO",
		"O.O",
		"OOO",
	)

	expectPixel(t, board.Render().Get(1, 1), '8', Black, White)

	board.OnHover(1, 1)
	expectPixel(t, board.Render().Get(1, 1), '8', Black, DarkGray)

	expectedColors := map[int]Color{1: Blue, 2: Green, 3: Red, 4: DarkBlue, 5: DarkRed, 6: SeaGreen, 7: Black, 8: Black}
	for n, color := range expectedColors {
		if numberColor(n) != color {
			t.Errorf("Expected %d to be drawn in %v, got %v", n, color, numberColor(n))
		}
	}
}

func TestOutOfRangeCoordinatesPanic(t *testing.T) {
	board := newTestBoard(t, 2, 3, 1)

	expectPanic(t, "OnLeftClick(2, 0)", func() { board.OnLeftClick(2, 0) })
	expectPanic(t, "OnRightClick(0, 3)", func() { board.OnRightClick(0, 3) })
	expectPanic(t, "OnLeftClick(-1, 0)", func() { board.OnLeftClick(-1, 0) })
	expectPanic(t, "CountAdjacentFlags(0, -1)", func() { board.CountAdjacentFlags(0, -1) })
}

func TestSingleCellBoard(t *testing.T) {
	board := newTestBoard(t, 1, 1, 0)
	board.OnLeftClick(0, 0)
	if !board.IsComplete() {
		t.Error("Expected single safe cell to complete the board")
	}

	board.OnLeftClick(0, 0)
	board.OnRightClick(0, 0)
	if !board.IsComplete() || board.NumFlags() != 0 {
		t.Error("Expected clicks on a finished board to change nothing")
	}

	full := newTestBoard(t, 1, 1, 1)
	if !full.IsComplete() {
		t.Error("Expected a board of only mines to be complete")
	}
}

func TestSeedDeterminesLayout(t *testing.T) {
	a, _ := NewBoard(8, 8, 10, 7)
	b, _ := NewBoard(8, 8, 10, 7)

	for i, cell := range a.Cells() {
		if cell.IsMine() != b.Cells()[i].IsMine() {
			t.Fatalf("Expected boards with the same seed to share a layout, differ at %v", cell)
		}
	}
}
