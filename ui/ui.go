package ui

import (
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/marathonsweep/game"
)

const (
	title      = "Minesweeper Marathon"
	panelWidth = 14
)

// UI owns the terminal application. Every call into the game happens on the
// tview event loop: input handlers run there directly, and tickers queue
// their work onto it.
type UI struct {
	app   *tview.Application
	game  *game.Game
	board *BoardView

	round, time, mines *tview.TextView
}

func New(g *game.Game) *UI {
	ui := &UI{
		app:   tview.NewApplication(),
		game:  g,
		board: NewBoardView(g),
		round: newCounter("Round"),
		time:  newCounter("Time"),
		mines: newCounter("Mines"),
	}

	newGameButton := tview.NewButton("New Game").SetSelectedFunc(g.OnNewGame)
	resetButton := tview.NewButton("Reset").SetSelectedFunc(g.OnResetGame)

	panel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.round, 3, 0, false).
		AddItem(ui.time, 3, 0, false).
		AddItem(ui.mines, 3, 0, false).
		AddItem(newGameButton, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(resetButton, 1, 0, false).
		AddItem(tview.NewBox(), 0, 1, false)

	boardWidth, boardHeight := ui.board.Size()
	body := tview.NewFlex().
		AddItem(ui.board, boardWidth, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(panel, panelWidth, 0, false)

	header := tview.NewTextView().SetTextAlign(tview.AlignCenter).SetText(title)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(body, maxInt(boardHeight, 3*3+3), 0, false)
	root.SetBorder(true)

	ui.app.SetRoot(root, true).EnableMouse(true)
	ui.app.SetMouseCapture(ui.onMouse)
	ui.app.SetInputCapture(ui.onKey)
	ui.app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		ui.updatePanel()
		return false
	})

	return ui
}

func newCounter(name string) *tview.TextView {
	counter := tview.NewTextView().SetTextAlign(tview.AlignRight)
	counter.SetBorder(true).SetTitle(name).SetTitleAlign(tview.AlignLeft)
	return counter
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (ui *UI) updatePanel() {
	ui.round.SetText(strconv.Itoa(ui.game.Round()))
	ui.time.SetText(strconv.Itoa(ui.game.Time()))
	ui.mines.SetText(strconv.Itoa(ui.game.Mines()))
}

func (ui *UI) onMouse(event *tcell.EventMouse, action tview.MouseAction) (*tcell.EventMouse, tview.MouseAction) {
	row, col := ui.board.cellAt(event.Position())

	switch action {
	case tview.MouseLeftUp:
		ui.game.OnMouseEvent(row, col, true, false, true)
	case tview.MouseRightUp:
		ui.game.OnMouseEvent(row, col, false, true, true)
	case tview.MouseMove, tview.MouseLeftDown, tview.MouseRightDown:
		ui.game.OnMouseEvent(row, col, false, false, false)
	}

	return event, action
}

func (ui *UI) onKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		ui.app.Stop()
		return nil
	case tcell.KeyRune:
		ui.game.OnKeyUp()
		return nil
	}
	return event
}

// every queues fn onto the event loop each interval, until done is closed
func (ui *UI) every(interval time.Duration, done <-chan struct{}, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			ui.app.QueueUpdateDraw(fn)
		}
	}
}

// Run blocks until the player quits
func (ui *UI) Run() error {
	config := ui.game.Config()
	done := make(chan struct{})
	defer close(done)

	refreshRate := config.RefreshRate
	if refreshRate <= 0 {
		refreshRate = game.NewConfig().RefreshRate
	}
	go ui.every(time.Second/time.Duration(refreshRate), done, ui.game.OnRefreshEvent)

	if config.Director != nil && config.DirectorInterval > 0 {
		go ui.every(config.DirectorInterval, done, func() {
			ui.game.OnDirectorEvent()
		})
	}

	logrus.WithField("session", ui.game.SessionID()).Debug("starting terminal ui")
	return ui.app.Run()
}
