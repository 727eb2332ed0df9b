package battleship

import (
	cerr "github.com/mlodzikos/seabattle-backend/internal/error"
)

// Board owns the grid of shot states and the placed
// ships for one side of the game. The grid only tracks
// shots; ship occupancy lives in the ships slice.
type Board struct {
	size  int
	grid  Grid
	ships []*Ship
}

func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		grid:  NewGrid(size),
		ships: make([]*Ship, 0, len(FleetShipLengths)),
	}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) ShipCount() int {
	return len(b.ships)
}

func (b *Board) Ships() []*Ship {
	return b.ships
}

func (b *Board) isWithinBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

func (b *Board) shipAt(x, y int) *Ship {
	for _, ship := range b.ships {
		if ship.Occupies(x, y) {
			return ship
		}
	}
	return nil
}

// Every ship cell must lie within grid bounds and must
// not be occupied by an already placed ship.
func (b *Board) PlaceShip(ship *Ship) error {
	for _, c := range ship.Coordinates() {
		if !b.isWithinBounds(c.X, c.Y) {
			return cerr.ErrShipOutOfBounds(c.X, c.Y)
		}
	}

	for _, c := range ship.Coordinates() {
		if b.shipAt(c.X, c.Y) != nil {
			return cerr.ErrShipsOverlap(c.X, c.Y)
		}
	}

	b.ships = append(b.ships, ship)
	return nil
}

// Only needed during fleet setup when the player
// rotates the last placed ship.
func (b *Board) RemoveShip(ship *Ship) {
	for i, placed := range b.ships {
		if placed == ship {
			b.ships = append(b.ships[:i], b.ships[i+1:]...)
			return
		}
	}
}

func (b *Board) LastShip() *Ship {
	if len(b.ships) == 0 {
		return nil
	}
	return b.ships[len(b.ships)-1]
}

// Fire resolves one shot. A cell's shot state only ever
// moves neutral -> hit or neutral -> miss; firing at a
// cell that is out of bounds or already shot fails without
// mutating anything. The covering ship is returned on a
// hit so the caller can report sunk ships.
func (b *Board) Fire(x, y int) (uint8, *Ship, error) {
	if !b.isWithinBounds(x, y) {
		return PositionStateNeutral, nil, cerr.ErrPositionOutOfBounds(x, y)
	}
	if b.grid[x][y] != PositionStateNeutral {
		return PositionStateNeutral, nil, cerr.ErrPositionAlreadyShot(x, y)
	}

	ship := b.shipAt(x, y)
	if ship == nil {
		b.grid[x][y] = PositionStateMiss
		return PositionStateMiss, nil, nil
	}

	b.grid[x][y] = PositionStateHit
	ship.GotHit()
	return PositionStateHit, ship, nil
}

func (b *Board) ShotState(x, y int) uint8 {
	return b.grid[x][y]
}

func (b *Board) IsTargeted(x, y int) bool {
	return b.grid[x][y] != PositionStateNeutral
}

// True once every ship cell has been hit. Pure query.
func (b *Board) IsDefeated() bool {
	for _, ship := range b.ships {
		if !ship.IsSunk() {
			return false
		}
	}
	return true
}
