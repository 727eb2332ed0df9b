package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	CodeCreateGame

	// Fleet setup codes. PlaceShip and RotateShip mirror the
	// click-to-place / click-to-rotate setup flow; AutoPlace
	// fills the remaining ships randomly.
	CodePlaceShip
	CodeRotateShip
	CodeAutoPlace

	CodeReady
	CodeStartGame

	// Fire carries the player shot; the bot answer comes back
	// as a separate BotFire message.
	CodeFire
	CodeBotFire

	CodeEndGame

	// Start over against a fresh bot fleet once the game
	// is finished
	CodeRematch

	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
