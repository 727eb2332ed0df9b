package error

import "fmt"

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("game exists in manager but is nil, uuid: %s", gameUuid)
}

func ErrInvalidGameDifficulty() error {
	return fmt.Errorf("difficulty must be easy, normal or hard")
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session exists in manager but is nil, id: %s", sessionId)
}

func ErrShipOutOfBounds(x, y int) error {
	return fmt.Errorf("ship cell falls outside of grid bounds\tx: %d\ty: %d", x, y)
}

func ErrShipsOverlap(x, y int) error {
	return fmt.Errorf("ship overlaps an already placed ship\tx: %d\ty: %d", x, y)
}

func ErrInvalidShipLength(length int) error {
	return fmt.Errorf("no ship of this length is left to place, length: %d", length)
}

func ErrFleetAlreadyComplete() error {
	return fmt.Errorf("all ships of the fleet are already placed")
}

func ErrFleetNotComplete(placed, total int) error {
	return fmt.Errorf("fleet is not complete yet, placed %d of %d ships", placed, total)
}

func ErrNoShipToRotate() error {
	return fmt.Errorf("no ship has been placed yet to rotate")
}

func ErrPositionOutOfBounds(x, y int) error {
	return fmt.Errorf("incoming x or y is out of game grid bound\tx: %d\ty: %d", x, y)
}

func ErrPositionAlreadyShot(x, y int) error {
	return fmt.Errorf("this position was already shot in previous rounds\tx: %d\ty: %d", x, y)
}

func ErrGameNotInProgress() error {
	return fmt.Errorf("game is not in progress; fire is only valid after both fleets are ready")
}

func ErrGameNotFinished() error {
	return fmt.Errorf("rematch is only valid once the game is finished")
}
