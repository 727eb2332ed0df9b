package battleship

import (
	"math/rand"
	"testing"
)

func newTestGame(t *testing.T, difficulty uint8) *Game {
	t.Helper()
	return newGame(difficulty, "abc123", "session-id", rand.New(rand.NewSource(42)))
}

func TestNewGameBotFleetPlaced(t *testing.T) {
	game := newTestGame(t, GameDifficultyEasy)

	if game.Phase() != GamePhaseSetup {
		t.Fatalf("new game must be in setup phase, got: %d", game.Phase())
	}
	if game.BotPlayer.Board.ShipCount() != len(FleetShipLengths) {
		t.Fatalf("bot fleet must be placed at creation, ships: %d", game.BotPlayer.Board.ShipCount())
	}
	if !game.BotPlayer.IsReady {
		t.Fatal("bot player must be ready at creation")
	}
	if game.HostPlayer.Board.ShipCount() != 0 {
		t.Fatal("host board must start empty")
	}
}

func TestPlaceHostShip(t *testing.T) {
	game := newTestGame(t, GameDifficultyEasy)

	ship, err := game.PlaceHostShip(0, 0, DirectionSouth, 6)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(ship.Coordinates()) != 6 {
		t.Fatalf("expected 6 ship cells, got: %d", len(ship.Coordinates()))
	}

	remaining := game.RemainingShipLengths()
	if len(remaining) != len(FleetShipLengths)-1 {
		t.Fatalf("expected %d remaining lengths, got: %d", len(FleetShipLengths)-1, len(remaining))
	}
	for _, l := range remaining {
		if l == 6 {
			t.Fatal("placed length must be removed from the remaining fleet")
		}
	}

	// only one 6-length ship in the fleet
	if _, err := game.PlaceHostShip(5, 0, DirectionSouth, 6); err == nil {
		t.Fatal("expected invalid length error, got nil")
	}

	// overlap with the first ship
	if _, err := game.PlaceHostShip(0, 3, DirectionEast, 4); err == nil {
		t.Fatal("expected overlap error, got nil")
	}
}

func TestRotateLastShip(t *testing.T) {
	game := newTestGame(t, GameDifficultyEasy)

	if _, err := game.RotateLastShip(); err == nil {
		t.Fatal("rotating with no placed ship must fail")
	}

	placed, err := game.PlaceHostShip(4, 4, DirectionSouth, 4)
	if err != nil {
		t.Fatal(err)
	}

	rotated, err := game.RotateLastShip()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if rotated.Origin() != placed.Origin() {
		t.Fatalf("rotation must keep the origin, expected: %+v\t got: %+v", placed.Origin(), rotated.Origin())
	}
	if rotated.Direction() == placed.Direction() {
		t.Fatal("rotation must change the direction")
	}
	if game.HostPlayer.Board.ShipCount() != 1 {
		t.Fatalf("rotation must not change the ship count, got: %d", game.HostPlayer.Board.ShipCount())
	}
}

func TestReadyHost(t *testing.T) {
	game := newTestGame(t, GameDifficultyEasy)

	if err := game.ReadyHost(); err == nil {
		t.Fatal("ready with an incomplete fleet must fail")
	}

	ships, err := game.AutoPlaceRemaining()
	if err != nil {
		t.Fatal(err)
	}
	if len(ships) != len(FleetShipLengths) {
		t.Fatalf("expected %d auto placed ships, got: %d", len(FleetShipLengths), len(ships))
	}

	if err := game.ReadyHost(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if game.Phase() != GamePhasePlaying {
		t.Fatalf("expected playing phase, got: %d", game.Phase())
	}

	// setup operations are rejected once playing
	if _, err := game.PlaceHostShip(0, 0, DirectionSouth, 2); err == nil {
		t.Fatal("placing after ready must fail")
	}
	if _, err := game.AutoPlaceRemaining(); err == nil {
		t.Fatal("auto placing after ready must fail")
	}
}

func TestFireBeforeReady(t *testing.T) {
	game := newTestGame(t, GameDifficultyEasy)

	if _, err := game.FireHost(0, 0); err == nil {
		t.Fatal("firing during setup must fail")
	}
}

func startedTestGame(t *testing.T, difficulty uint8) *Game {
	t.Helper()

	game := newTestGame(t, difficulty)
	if _, err := game.AutoPlaceRemaining(); err != nil {
		t.Fatal(err)
	}
	if err := game.ReadyHost(); err != nil {
		t.Fatal(err)
	}
	return game
}

func TestFireHostUntilVictory(t *testing.T) {
	game := startedTestGame(t, GameDifficultyEasy)

	var targets []Coordinates
	for _, ship := range game.BotPlayer.Board.Ships() {
		targets = append(targets, ship.Coordinates()...)
	}

	for i, c := range targets {
		result, err := game.FireHost(c.X, c.Y)
		if err != nil {
			t.Fatalf("shot %d failed: %v", i, err)
		}
		if result.PositionState != PositionStateHit {
			t.Fatalf("shot %d at a ship cell expected hit, got state: %d", i, result.PositionState)
		}

		if i < len(targets)-1 {
			if game.IsFinished() {
				t.Fatalf("game must not finish before the last ship cell, shot %d", i)
			}
			continue
		}

		if !result.Defeated {
			t.Fatal("last shot must report the defeat")
		}
	}

	if !game.IsFinished() {
		t.Fatal("game must be finished once the bot fleet is sunk")
	}
	if game.HostPlayer.MatchStatus != PlayerMatchStatusWon {
		t.Fatalf("expected host match status: %d\t got: %d", PlayerMatchStatusWon, game.HostPlayer.MatchStatus)
	}
	if game.BotPlayer.MatchStatus != PlayerMatchStatusLost {
		t.Fatalf("expected bot match status: %d\t got: %d", PlayerMatchStatusLost, game.BotPlayer.MatchStatus)
	}
}

func TestFireHostRejectsRepeatedShot(t *testing.T) {
	game := startedTestGame(t, GameDifficultyEasy)

	if _, err := game.FireHost(3, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := game.FireHost(3, 3); err == nil {
		t.Fatal("firing twice at the same cell must be rejected the second time")
	}
}

func TestFireBotAnswersOnHostBoard(t *testing.T) {
	game := startedTestGame(t, GameDifficultyNormal)

	result, err := game.FireBot()
	if err != nil {
		t.Fatal(err)
	}
	if !game.HostPlayer.Board.IsTargeted(result.X, result.Y) {
		t.Fatalf("bot shot must be recorded on the host board at %+v", NewCoordinates(result.X, result.Y))
	}
}

func TestRematchReset(t *testing.T) {
	game := startedTestGame(t, GameDifficultyEasy)

	if err := game.Reset(); err == nil {
		t.Fatal("rematch before the game is finished must fail")
	}

	for _, ship := range game.BotPlayer.Board.Ships() {
		for _, c := range ship.Coordinates() {
			if _, err := game.FireHost(c.X, c.Y); err != nil {
				t.Fatal(err)
			}
		}
	}
	if !game.IsFinished() {
		t.Fatal("game must be finished")
	}

	if err := game.Reset(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if game.Phase() != GamePhaseSetup {
		t.Fatalf("rematch must go back to setup, phase: %d", game.Phase())
	}
	if game.HostPlayer.Board.ShipCount() != 0 {
		t.Fatal("host board must be fresh after rematch")
	}
	if game.BotPlayer.Board.ShipCount() != len(FleetShipLengths) {
		t.Fatal("bot fleet must be re-placed after rematch")
	}
	if game.HostPlayer.MatchStatus != PlayerMatchStatusUndefined {
		t.Fatal("match statuses must be cleared after rematch")
	}
}
