package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Game runs a marathon session: rounds of boards with a shared countdown.
//
// Game is not safe for concurrent use; callers must serialize every call.
type Game struct {
	config Config
	board  *Board

	state     GameState
	round     int
	time      int // seconds allowed since startTime
	startTime time.Time

	sessionID string
}

func NewGame(config Config) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.Reporter == nil {
		config.Reporter = LogReporter{}
	}

	board, err := config.createBoard()
	if err != nil {
		return nil, err
	}

	game := &Game{
		config: config,
		board:  board,
	}
	game.start()

	if config.Director != nil {
		config.Director.Init(board)
	}

	return game, nil
}

func (game *Game) logger() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"session": game.sessionID,
		"round":   game.round,
		"mines":   game.board.Mines(),
	})
}

// start returns the session to its initial state, without touching the board
func (game *Game) start() {
	game.state = Init
	game.round = 1
	game.time = game.config.InitialTime
	game.sessionID = uuid.NewString()

	game.logger().WithFields(logrus.Fields{
		"rows":    game.board.Rows(),
		"columns": game.board.Columns(),
	}).Info("new game")
}

func (game *Game) Config() Config {
	return game.config
}

func (game *Game) Board() *Board {
	return game.board
}

func (game *Game) State() GameState {
	return game.state
}

func (game *Game) SessionID() string {
	return game.sessionID
}

func (game *Game) Round() int {
	return game.round
}

// Time returns the seconds left on the clock. While playing, this may briefly
// be negative until the next refresh ends the game.
func (game *Game) Time() int {
	switch game.state {
	case Init:
		return game.config.InitialTime
	case Ended:
		return 0
	default:
		return game.time - game.elapsedSeconds()
	}
}

func (game *Game) Mines() int {
	return game.board.Mines()
}

func (game *Game) elapsedSeconds() int {
	return int(game.config.Clock().Sub(game.startTime) / time.Second)
}

// OnMouseEvent handles pointer activity at board coordinates. The hover
// position is always updated; clicks act only on release, inside the board,
// and before the game has ended.
func (game *Game) OnMouseEvent(row, col int, isLeftClick, isRightClick, isRelease bool) {
	game.board.OnHover(row, col)

	if game.state != Ended && isRelease && game.board.InBounds(row, col) {
		wasAlive := game.board.IsAlive()

		if isLeftClick {
			if game.state == Init {
				game.state = Playing
				game.startTime = game.config.Clock()
				game.logger().Info("clock started")
			}
			game.board.OnLeftClick(row, col)
		} else if isRightClick {
			game.board.OnRightClick(row, col)
		}

		if wasAlive && !game.board.IsAlive() {
			game.logger().WithFields(logrus.Fields{"row": row, "col": col}).Debug("mine revealed")
		}
	}

	game.checkComplete()
}

// Apply performs a director's action as a click release on its cell
func (game *Game) Apply(action CellAction) {
	game.OnMouseEvent(action.Row, action.Col, action.Action == Click, action.Action == RightClick, true)
}

// checkComplete advances to the next round once the board is cleared. Only
// boards cleared while playing count, so a mine-free board is never skipped
// before the first click.
func (game *Game) checkComplete() {
	if game.state != Playing || !game.board.IsComplete() {
		return
	}

	numMines := game.board.Mines() + game.config.MinesIncrement
	if numMines > game.board.NumCells() {
		numMines = game.board.NumCells()
	}

	game.board.Update(numMines)
	game.round++
	game.time += game.config.TimeIncrement

	game.logger().WithField("time", game.time).Info("round complete")
}

// OnKeyUp flags the hovered cell
func (game *Game) OnKeyUp() {
	if game.state != Ended {
		game.board.OnKeyUp()
	}
}

// OnRefreshEvent ends the game once the clock has run out. It should be called
// several times a second.
func (game *Game) OnRefreshEvent() {
	if game.state != Playing || game.elapsedSeconds() < game.time {
		return
	}

	game.state = Ended

	logger := game.logger()
	logger.Info("time expired")
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logger.WithField("snapshot", game.board.Snapshot().Serialize()).Debug("final board")
	}

	game.config.Reporter.ReportScore(ScoreReport{
		SessionID: game.sessionID,
		Round:     game.round,
		Mines:     game.board.Mines(),
		EndedAt:   game.config.Clock(),
	})
}

// OnDirectorEvent lets the configured director perform one action, returning
// whether anything was done. A director which has revealed a mine retries the
// same layout.
func (game *Game) OnDirectorEvent() bool {
	director := game.config.Director
	if director == nil || game.state == Ended {
		return false
	}

	if !game.board.IsAlive() {
		if game.state != Playing {
			return false
		}
		game.OnResetGame()
		return true
	}

	action, ok := director.Act()
	if !ok {
		return false
	}

	game.logger().WithFields(logrus.Fields{
		"row":    action.Row,
		"col":    action.Col,
		"action": action.Action,
	}).Debug("director action")

	game.Apply(action)
	return true
}

// OnNewGame starts a new session from round 1 with a fresh board
func (game *Game) OnNewGame() {
	if game.config.Snapshot != nil {
		if err := game.board.load(game.config.Snapshot, true); err != nil {
			// The snapshot already built this board, so it cannot fail to load here
			panic(err)
		}
	} else {
		game.board.Update(game.config.InitialMines)
	}

	game.start()
}

// OnResetGame clears flags and reveals on the current board. The mine layout
// and the clock are kept.
func (game *Game) OnResetGame() {
	if game.state == Playing {
		game.board.Restore()
		game.logger().Info("round reset")
	}
}

func (game *Game) RenderBoard() *Bitmap {
	return game.board.Render()
}
