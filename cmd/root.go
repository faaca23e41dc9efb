package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/marathonsweep/director/constraint"
	"github.com/they4kman/marathonsweep/director/random"
	"github.com/they4kman/marathonsweep/game"
	"github.com/they4kman/marathonsweep/ui"
)

var (
	flagConfig   = game.NewConfig()
	configPath   string
	snapshotPath string
	logFile      string
	logLevel     string
	director     = directorValue("none")
)

var rootCmd = &cobra.Command{
	Use:   "marathonsweep",
	Short: "Play Minesweeper Marathon in the terminal",
	Long: `marathonsweep is a Minesweeper game against the clock. Clearing a
board starts the next round with more mines and more time.

Run with no arguments to play the default marathon
	marathonsweep

Use the director flag to make the computer play for you
	marathonsweep --director constraint
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		closeLog, err := setupLogging(logFile, logLevel)
		if err != nil {
			return err
		}
		defer closeLog()

		config, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		g, err := game.NewGame(config)
		if err != nil {
			return err
		}

		return ui.New(g).Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// buildConfig layers explicitly set flags over the config file over defaults
func buildConfig(cmd *cobra.Command) (game.Config, error) {
	config := game.NewConfig()

	if configPath != "" {
		if err := game.LoadConfigFile(configPath, &config); err != nil {
			return config, err
		}
	}

	flags := cmd.Flags()
	overrides := map[string]func(){
		"rows":              func() { config.Rows = flagConfig.Rows },
		"columns":           func() { config.Columns = flagConfig.Columns },
		"time":              func() { config.InitialTime = flagConfig.InitialTime },
		"time-increment":    func() { config.TimeIncrement = flagConfig.TimeIncrement },
		"mines":             func() { config.InitialMines = flagConfig.InitialMines },
		"mines-increment":   func() { config.MinesIncrement = flagConfig.MinesIncrement },
		"seed":              func() { config.Seed = flagConfig.Seed },
		"refresh-rate":      func() { config.RefreshRate = flagConfig.RefreshRate },
		"director-interval": func() { config.DirectorInterval = flagConfig.DirectorInterval },
	}
	for name, override := range overrides {
		if flags.Changed(name) {
			override()
		}
	}

	if snapshotPath != "" {
		snapshot, err := game.LoadSnapshotFile(snapshotPath)
		if err != nil {
			return config, fmt.Errorf("loading snapshot %s: %w", snapshotPath, err)
		}
		config.Snapshot = snapshot
	}

	config.Director = director.create()

	return config, nil
}

func setupLogging(path, level string) (func(), error) {
	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(parsedLevel)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// The terminal belongs to the UI, so logs go to a file or nowhere
	if path == "" {
		logrus.SetOutput(io.Discard)
		return func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	logrus.SetOutput(file)
	return func() { file.Close() }, nil
}

type directorValue string

var directors = map[string]func() game.Director{
	"none":       func() game.Director { return nil },
	"random":     func() game.Director { return &random.Director{} },
	"constraint": func() game.Director { return &constraint.Director{} },
}

func directorNames() string {
	names := make([]string, 0, len(directors))
	for name := range directors {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func (value *directorValue) String() string {
	return string(*value)
}

func (value *directorValue) Set(name string) error {
	if _, isValid := directors[name]; !isValid {
		return fmt.Errorf("invalid director %q (expected one of %s)", name, directorNames())
	}
	*value = directorValue(name)
	return nil
}

func (value *directorValue) Type() string {
	return "director"
}

func (value directorValue) create() game.Director {
	return directors[string(value)]()
}

func init() {
	flags := rootCmd.Flags()

	flags.StringVar(&configPath, "config", "", "TOML file to read game settings from")
	flags.IntVarP(&flagConfig.Rows, "rows", "r", flagConfig.Rows, "Height of game board, in cells")
	flags.IntVarP(&flagConfig.Columns, "columns", "c", flagConfig.Columns, "Width of game board, in cells")
	flags.IntVarP(&flagConfig.InitialTime, "time", "t", flagConfig.InitialTime, "Seconds on the clock at the start of a game")
	flags.IntVar(&flagConfig.TimeIncrement, "time-increment", flagConfig.TimeIncrement, "Seconds added to the clock for each cleared board")
	flags.IntVarP(&flagConfig.InitialMines, "mines", "m", flagConfig.InitialMines, "Number of mines on the first board")
	flags.IntVar(&flagConfig.MinesIncrement, "mines-increment", flagConfig.MinesIncrement, "Mines added for each cleared board")
	flags.Int64Var(&flagConfig.Seed, "seed", 0, "Seed for mine placement (0 picks one from the current time)")
	flags.IntVar(&flagConfig.RefreshRate, "refresh-rate", flagConfig.RefreshRate, "Clock checks per second")
	flags.StringVar(&snapshotPath, "snapshot", "", "YAML board snapshot to play as the first board of each game")
	flags.VarP(&director, "director", "d", fmt.Sprintf("Make the computer play (%s)", directorNames()))
	flags.DurationVar(&flagConfig.DirectorInterval, "director-interval", flagConfig.DirectorInterval, "Time between director actions")
	flags.StringVar(&logFile, "log-file", "", "File to append logs to (logs are discarded when empty)")
	flags.StringVar(&logLevel, "log-level", logrus.InfoLevel.String(), "Log level")
}
