package game

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

var ErrInvalidSnapshot = errors.New("invalid board snapshot")

// BoardSnapshot captures a board's mine layout and cell state.
//
// Each row of SerializedBoard holds one character per cell:
//
//	#  unrevealed         .  revealed
//	f  flagged            O  mine
//	F  flagged mine       *  revealed mine
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	SerializedBoard string `yaml:"board"`
}

func (snapshot *BoardSnapshot) Serialize() string {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		panic(err)
	}

	return string(out)
}

func (snapshot *BoardSnapshot) rows() ([]string, error) {
	rows := strings.Split(strings.TrimSpace(snapshot.SerializedBoard), "\n")
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty board", ErrInvalidSnapshot)
	}
	for y, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidSnapshot, y, len(row), len(rows[0]))
		}
	}
	return rows, nil
}

// Dimensions returns the number of rows and columns in the snapshot
func (snapshot *BoardSnapshot) Dimensions() (int, int, error) {
	rows, err := snapshot.rows()
	if err != nil {
		return 0, 0, err
	}
	return len(rows), len(rows[0]), nil
}

// CreateBoard builds a board from the snapshot. When fresh is set, all flags
// and reveals are dropped, keeping only the mine layout.
func (snapshot *BoardSnapshot) CreateBoard(fresh bool) (*Board, error) {
	numRows, numColumns, err := snapshot.Dimensions()
	if err != nil {
		return nil, err
	}

	board, err := newEmptyBoard(numRows, numColumns, snapshot.Seed)
	if err != nil {
		return nil, err
	}
	if err := board.load(snapshot, fresh); err != nil {
		return nil, err
	}
	return board, nil
}

// load replaces the board's layout and cell state with the snapshot's, which
// must have the same dimensions
func (board *Board) load(snapshot *BoardSnapshot, fresh bool) error {
	rows, err := snapshot.rows()
	if err != nil {
		return err
	}
	if len(rows) != board.rows || len(rows[0]) != board.columns {
		return fmt.Errorf("%w: snapshot is %dx%d, board is %dx%d",
			ErrInvalidSnapshot, len(rows), len(rows[0]), board.rows, board.columns)
	}

	// Parse into a scratch board first, so a bad snapshot leaves this one untouched
	parsed := make([][]Cell, board.rows)
	for y, row := range rows {
		parsed[y] = make([]Cell, board.columns)
		for x := 0; x < board.columns; x++ {
			if !parsed[y][x].deserialize(row[x], fresh) {
				return fmt.Errorf("%w: unknown cell %q at (%d, %d)", ErrInvalidSnapshot, row[x], y, x)
			}
		}
	}

	board.numMines = 0
	board.numFlags = 0
	for _, cell := range board.Cells() {
		source := parsed[cell.row][cell.col]
		cell.mine, cell.flagged, cell.revealed = source.mine, source.flagged, source.revealed

		if cell.mine {
			board.numMines++
		}
		if cell.flagged {
			board.numFlags++
		}
	}
	board.assignAdjacentMines()

	return nil
}

// Snapshot captures the current board
func (board *Board) Snapshot() *BoardSnapshot {
	var serialized strings.Builder
	for row := range board.cells {
		if row > 0 {
			serialized.WriteByte('\n')
		}
		for col := range board.cells[row] {
			serialized.WriteByte(board.cells[row][col].serialize())
		}
	}

	return &BoardSnapshot{
		Seed:            board.seed,
		SerializedBoard: serialized.String(),
	}
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, err
	}
	if _, _, err := snapshot.Dimensions(); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func LoadSnapshotFile(path string) (*BoardSnapshot, error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadSnapshot(string(in))
}
