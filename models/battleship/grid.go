package battleship

const (
	PositionStateNeutral uint8 = iota
	PositionStateMiss
	PositionStateHit
)

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

type Grid [][]uint8

// Creates a new default grid
// All indexes are zero/PositionStateNeutral
func NewGrid(gridSize int) Grid {
	grid := make(Grid, gridSize)

	for i := 0; i < gridSize; i++ {
		grid[i] = make([]uint8, gridSize)
	}
	return grid
}
