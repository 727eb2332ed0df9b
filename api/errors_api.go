package api

const (
	ConstErrInvalidPayload = "failed to parse the incoming payload"
	ConstErrCreateGame     = "failed to create a new game"
	ConstErrPlaceShip      = "failed to place the ship"
	ConstErrRotateShip     = "failed to rotate the last placed ship"
	ConstErrReady          = "failed to make the player ready"
	ConstErrFire           = "fire operation failed"
	ConstErrRematch        = "failed to start a rematch"
	ConstErrNoGame         = "no game has been created for this session"
)
