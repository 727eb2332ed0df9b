package connection

import (
	mb "github.com/mlodzikos/seabattle-backend/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid         string `json:"game_uuid"`
	HostUuid         string `json:"host_uuid"`
	GridSize         int    `json:"grid_size"`
	FleetShipLengths []int  `json:"fleet_ship_lengths"`
}

type RespPlaceShip struct {
	ShipCoordinates      []mb.Coordinates `json:"ship_coordinates"`
	RemainingShipLengths []int            `json:"remaining_ship_lengths"`
}

type RespFire struct {
	X                   int              `json:"x"`
	Y                   int              `json:"y"`
	PositionState       uint8            `json:"position_state"`
	SunkShipCoordinates []mb.Coordinates `json:"sunk_ship_coordinates,omitempty"`
	IsTurn              bool             `json:"is_turn"`
}

type RespEndGame struct {
	PlayerMatchStatus int `json:"player_match_status"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
