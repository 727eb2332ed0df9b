package battleship

import (
	"math/rand"
)

// Bot is the computer opponent. Placement is random for
// every difficulty; shot selection gets smarter with the
// difficulty level:
//
//	easy   - uniformly random untargeted cell
//	normal - random until a hit, then hunts adjacent cells
//	hard   - hunts like normal but searches on checkerboard
//	         parity, which cannot miss a ship of length >= 2
type Bot struct {
	difficulty uint8
	rng        *rand.Rand
	huntQueue  []Coordinates
}

func NewBot(difficulty uint8, rng *rand.Rand) *Bot {
	return &Bot{
		difficulty: difficulty,
		rng:        rng,
		huntQueue:  make([]Coordinates, 0, 4),
	}
}

// Random origin and direction, retried until the ship
// fits. The fleet is placed in the fixed length order.
func (bt *Bot) PlaceFleet(board *Board) {
	for _, length := range FleetShipLengths {
		for {
			x := bt.rng.Intn(board.Size())
			y := bt.rng.Intn(board.Size())
			direction := Direction(bt.rng.Intn(4))

			if err := board.PlaceShip(NewShip(x, y, direction, length)); err == nil {
				break
			}
		}
	}
}

// NextShot picks a target on the opposing board. It never
// returns an already shot cell as long as one neutral cell
// is left.
func (bt *Bot) NextShot(target *Board) Coordinates {
	if bt.difficulty != GameDifficultyEasy {
		for len(bt.huntQueue) > 0 {
			c := bt.huntQueue[0]
			bt.huntQueue = bt.huntQueue[1:]
			if !target.IsTargeted(c.X, c.Y) {
				return c
			}
		}
	}

	if bt.difficulty == GameDifficultyHard {
		if c, ok := bt.randomUntargeted(target, true); ok {
			return c
		}
	}

	c, _ := bt.randomUntargeted(target, false)
	return c
}

func (bt *Bot) randomUntargeted(target *Board, parityOnly bool) (Coordinates, bool) {
	candidates := make([]Coordinates, 0, target.Size()*target.Size())
	for x := 0; x < target.Size(); x++ {
		for y := 0; y < target.Size(); y++ {
			if target.IsTargeted(x, y) {
				continue
			}
			if parityOnly && (x+y)%2 != 0 {
				continue
			}
			candidates = append(candidates, NewCoordinates(x, y))
		}
	}

	if len(candidates) == 0 {
		return Coordinates{}, false
	}
	return candidates[bt.rng.Intn(len(candidates))], true
}

// RecordShot feeds the outcome of the bot's own shot back
// into the hunt state. Sinking a ship clears the queue;
// a plain hit enqueues the in-bounds neighbours.
func (bt *Bot) RecordShot(target *Board, c Coordinates, state uint8, sunk bool) {
	if bt.difficulty == GameDifficultyEasy || state != PositionStateHit {
		return
	}

	if sunk {
		bt.huntQueue = bt.huntQueue[:0]
		return
	}

	neighbours := [4]Coordinates{
		NewCoordinates(c.X, c.Y-1),
		NewCoordinates(c.X+1, c.Y),
		NewCoordinates(c.X, c.Y+1),
		NewCoordinates(c.X-1, c.Y),
	}
	for _, n := range neighbours {
		if n.X < 0 || n.Y < 0 || n.X >= target.Size() || n.Y >= target.Size() {
			continue
		}
		if target.IsTargeted(n.X, n.Y) {
			continue
		}
		bt.huntQueue = append(bt.huntQueue, n)
	}
}
