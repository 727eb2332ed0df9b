package battleship

import (
	"math/rand"

	cerr "github.com/mlodzikos/seabattle-backend/internal/error"
)

const (
	GameDifficultyEasy uint8 = iota
	GameDifficultyNormal
	GameDifficultyHard
)

const GameGridSize = 10

// Fleet composition of one side, longest first.
var FleetShipLengths = [5]int{6, 4, 3, 3, 2}

const (
	GamePhaseSetup uint8 = iota
	GamePhasePlaying
	GamePhaseFinished
)

// Game is one match of the host player against the bot.
// Lifecycle: setup (host places the fleet, the bot fleet
// is placed at creation) -> playing (host fires, bot
// answers) -> finished (either board defeated). Reset
// takes a finished game back to setup for a rematch.
type Game struct {
	uuid       string
	difficulty uint8
	phase      uint8
	HostPlayer *Player
	BotPlayer  *Player
	bot        *Bot
}

func newGame(difficulty uint8, gameUuid, sessionID string, rng *rand.Rand) *Game {
	game := &Game{
		uuid:       gameUuid,
		difficulty: difficulty,
		phase:      GamePhaseSetup,
		HostPlayer: NewPlayer(false, false, sessionID, GameGridSize),
		BotPlayer:  NewPlayer(true, false, "", GameGridSize),
		bot:        NewBot(difficulty, rng),
	}

	game.bot.PlaceFleet(game.BotPlayer.Board)
	game.BotPlayer.IsReady = true

	return game
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Difficulty() uint8 {
	return g.difficulty
}

func (g *Game) Phase() uint8 {
	return g.phase
}

func (g *Game) IsFinished() bool {
	return g.phase == GamePhaseFinished
}

// Lengths of the fleet ships the host has not placed yet.
func (g *Game) RemainingShipLengths() []int {
	remaining := make([]int, 0, len(FleetShipLengths))
	remaining = append(remaining, FleetShipLengths[:]...)

	for _, ship := range g.HostPlayer.Board.Ships() {
		for i, length := range remaining {
			if length == ship.Length() {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
	return remaining
}

// PlaceHostShip validates the requested length against the
// remaining fleet and delegates bounds/overlap checks to
// the board.
func (g *Game) PlaceHostShip(x, y int, direction Direction, length int) (*Ship, error) {
	if g.phase != GamePhaseSetup {
		return nil, cerr.ErrFleetAlreadyComplete()
	}

	lengthAvailable := false
	for _, l := range g.RemainingShipLengths() {
		if l == length {
			lengthAvailable = true
			break
		}
	}
	if !lengthAvailable {
		return nil, cerr.ErrInvalidShipLength(length)
	}

	ship := NewShip(x, y, direction, length)
	if err := g.HostPlayer.Board.PlaceShip(ship); err != nil {
		return nil, err
	}
	return ship, nil
}

// RotateLastShip re-places the most recently placed host
// ship with the next direction that fits its origin. The
// original direction always fits, so this cannot leave the
// board without the ship.
func (g *Game) RotateLastShip() (*Ship, error) {
	if g.phase != GamePhaseSetup {
		return nil, cerr.ErrFleetAlreadyComplete()
	}

	last := g.HostPlayer.Board.LastShip()
	if last == nil {
		return nil, cerr.ErrNoShipToRotate()
	}
	g.HostPlayer.Board.RemoveShip(last)

	origin := last.Origin()
	direction := last.Direction()
	for i := 0; i < 3; i++ {
		direction = direction.Next()
		rotated := NewShip(origin.X, origin.Y, direction, last.Length())
		if err := g.HostPlayer.Board.PlaceShip(rotated); err == nil {
			return rotated, nil
		}
	}

	// back to where it was
	_ = g.HostPlayer.Board.PlaceShip(last)
	return last, nil
}

// AutoPlaceRemaining fills the rest of the host fleet the
// same way the bot places its own.
func (g *Game) AutoPlaceRemaining() ([]*Ship, error) {
	if g.phase != GamePhaseSetup {
		return nil, cerr.ErrFleetAlreadyComplete()
	}

	placedBefore := g.HostPlayer.Board.ShipCount()
	for _, length := range g.RemainingShipLengths() {
		for {
			x := g.bot.rng.Intn(g.HostPlayer.Board.Size())
			y := g.bot.rng.Intn(g.HostPlayer.Board.Size())
			direction := Direction(g.bot.rng.Intn(4))

			if err := g.HostPlayer.Board.PlaceShip(NewShip(x, y, direction, length)); err == nil {
				break
			}
		}
	}
	return g.HostPlayer.Board.Ships()[placedBefore:], nil
}

// ReadyHost starts the match once the full fleet is placed.
func (g *Game) ReadyHost() error {
	if g.phase != GamePhaseSetup {
		return cerr.ErrFleetAlreadyComplete()
	}

	placed := g.HostPlayer.Board.ShipCount()
	if placed != len(FleetShipLengths) {
		return cerr.ErrFleetNotComplete(placed, len(FleetShipLengths))
	}

	g.HostPlayer.IsReady = true
	g.HostPlayer.IsTurn = true
	g.phase = GamePhasePlaying
	return nil
}

// ShotResult is the outcome of a single resolved shot.
// SunkShipCoordinates is only set when this shot sank a ship.
type ShotResult struct {
	X                   int
	Y                   int
	PositionState       uint8
	SunkShipCoordinates []Coordinates
	Defeated            bool
}

// FireHost resolves the host shot against the bot board.
// Invalid targets fail without consuming the turn.
func (g *Game) FireHost(x, y int) (ShotResult, error) {
	if g.phase != GamePhasePlaying {
		return ShotResult{}, cerr.ErrGameNotInProgress()
	}

	state, ship, err := g.BotPlayer.Board.Fire(x, y)
	if err != nil {
		return ShotResult{}, err
	}

	result := ShotResult{X: x, Y: y, PositionState: state}
	if ship != nil && ship.IsSunk() {
		result.SunkShipCoordinates = ship.Coordinates()
	}

	if g.BotPlayer.Board.IsDefeated() {
		result.Defeated = true
		g.finish(g.HostPlayer)
	}
	return result, nil
}

// FireBot lets the bot take its answering shot at the host
// board.
func (g *Game) FireBot() (ShotResult, error) {
	if g.phase != GamePhasePlaying {
		return ShotResult{}, cerr.ErrGameNotInProgress()
	}

	c := g.bot.NextShot(g.HostPlayer.Board)
	state, ship, err := g.HostPlayer.Board.Fire(c.X, c.Y)
	if err != nil {
		// NextShot only yields neutral cells
		return ShotResult{}, err
	}

	sunk := ship != nil && ship.IsSunk()
	g.bot.RecordShot(g.HostPlayer.Board, c, state, sunk)

	result := ShotResult{X: c.X, Y: c.Y, PositionState: state}
	if sunk {
		result.SunkShipCoordinates = ship.Coordinates()
	}

	if g.HostPlayer.Board.IsDefeated() {
		result.Defeated = true
		g.finish(g.BotPlayer)
	}
	return result, nil
}

func (g *Game) finish(winner *Player) {
	g.phase = GamePhaseFinished
	winner.MatchStatus = PlayerMatchStatusWon

	if winner == g.HostPlayer {
		g.BotPlayer.MatchStatus = PlayerMatchStatusLost
	} else {
		g.HostPlayer.MatchStatus = PlayerMatchStatusLost
	}
}

// Reset prepares a rematch: fresh boards on both sides, a
// new bot fleet, and the host back in the setup phase.
func (g *Game) Reset() error {
	if g.phase != GamePhaseFinished {
		return cerr.ErrGameNotFinished()
	}

	g.HostPlayer.ResetForRematch(GameGridSize)
	g.BotPlayer.ResetForRematch(GameGridSize)

	g.bot = NewBot(g.difficulty, g.bot.rng)
	g.bot.PlaceFleet(g.BotPlayer.Board)
	g.BotPlayer.IsReady = true

	g.phase = GamePhaseSetup
	return nil
}
