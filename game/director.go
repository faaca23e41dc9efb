package game

type ActionType int

const (
	Click ActionType = iota
	RightClick
)

func (action ActionType) String() string {
	switch action {
	case Click:
		return "click"
	case RightClick:
		return "right-click"
	default:
		return "unknown"
	}
}

// CellAction is a single click a director wishes to perform
type CellAction struct {
	Row, Col int
	Action   ActionType
}

type Director interface {
	/**
	 * Initialize the director with the board it will play. The board is
	 * regenerated in place between rounds.
	 */
	Init(*Board)

	/**
	 * Choose the next action, or return false if there is nothing to do
	 */
	Act() (CellAction, bool)
}
