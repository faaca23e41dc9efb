package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

var ErrInvalidTime = errors.New("time values must not be negative")

type Config struct {
	Rows    int `toml:"rows"`
	Columns int `toml:"columns"`

	// Seconds on the clock at the start of a game, and added per round
	InitialTime   int `toml:"initial_time"`
	TimeIncrement int `toml:"time_increment"`

	// Mines on the first board, and added per round
	InitialMines   int `toml:"initial_mines"`
	MinesIncrement int `toml:"mines_increment"`

	Seed int64 `toml:"seed"`

	// Refresh ticks per second driven by the front end
	RefreshRate int `toml:"refresh_rate"`

	// Snapshot to load the first board of each game from
	Snapshot *BoardSnapshot `toml:"-"`

	Director         Director      `toml:"-"`
	DirectorInterval time.Duration `toml:"-"`

	// Receives the final round when time runs out
	Reporter ScoreReporter `toml:"-"`

	Clock func() time.Time `toml:"-"`
}

func NewConfig() Config {
	return Config{
		Rows:             18,
		Columns:          30,
		InitialTime:      30,
		TimeIncrement:    20,
		InitialMines:     1,
		MinesIncrement:   10,
		RefreshRate:      10,
		DirectorInterval: 500 * time.Millisecond,
	}
}

// LoadConfigFile overrides config with every key present in the TOML file
func LoadConfigFile(filename string, config *Config) error {
	if _, err := toml.DecodeFile(filename, config); err != nil {
		return fmt.Errorf("loading config %s: %w", filename, err)
	}
	return nil
}

func (config Config) Validate() error {
	if config.Snapshot == nil {
		if config.Rows <= 0 || config.Columns <= 0 {
			return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, config.Rows, config.Columns)
		}
		if config.InitialMines < 0 || config.InitialMines > config.Rows*config.Columns {
			return fmt.Errorf("%w: got %d for %d cells", ErrInvalidMineCount, config.InitialMines, config.Rows*config.Columns)
		}
	}
	if config.MinesIncrement < 0 {
		return fmt.Errorf("%w: mines increment is %d", ErrInvalidMineCount, config.MinesIncrement)
	}
	if config.InitialTime < 0 || config.TimeIncrement < 0 {
		return fmt.Errorf("%w: got %d+%d", ErrInvalidTime, config.InitialTime, config.TimeIncrement)
	}
	return nil
}

func (config Config) createBoard() (*Board, error) {
	if config.Snapshot != nil {
		return config.Snapshot.CreateBoard(true)
	}
	return NewBoard(config.Rows, config.Columns, config.InitialMines, config.Seed)
}
