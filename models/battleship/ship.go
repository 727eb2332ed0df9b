package battleship

type Direction uint8

const (
	DirectionNorth Direction = iota
	DirectionEast
	DirectionSouth
	DirectionWest
)

// Clockwise rotation, used when the player rotates
// a ship during fleet setup.
func (d Direction) Next() Direction {
	return (d + 1) % 4
}

type Ship struct {
	x           int
	y           int
	direction   Direction
	length      int
	hits        int
	coordinates []Coordinates
}

// The coordinate list grows from the origin cell
// towards the ship direction.
func NewShip(x, y int, direction Direction, length int) *Ship {
	ship := &Ship{
		x:           x,
		y:           y,
		direction:   direction,
		length:      length,
		coordinates: make([]Coordinates, 0, length),
	}

	for i := 0; i < length; i++ {
		switch direction {
		case DirectionNorth:
			ship.coordinates = append(ship.coordinates, NewCoordinates(x, y-i))
		case DirectionEast:
			ship.coordinates = append(ship.coordinates, NewCoordinates(x+i, y))
		case DirectionSouth:
			ship.coordinates = append(ship.coordinates, NewCoordinates(x, y+i))
		case DirectionWest:
			ship.coordinates = append(ship.coordinates, NewCoordinates(x-i, y))
		}
	}
	return ship
}

func (sh *Ship) Origin() Coordinates {
	return NewCoordinates(sh.x, sh.y)
}

func (sh *Ship) Direction() Direction {
	return sh.direction
}

func (sh *Ship) Length() int {
	return sh.length
}

func (sh *Ship) Coordinates() []Coordinates {
	return sh.coordinates
}

func (sh *Ship) Occupies(x, y int) bool {
	for _, c := range sh.coordinates {
		if c.X == x && c.Y == y {
			return true
		}
	}
	return false
}

func (sh *Ship) GotHit() {
	sh.hits++
}

func (sh *Ship) IsSunk() bool {
	return sh.hits == sh.length
}
