package api

import (
	"encoding/json"

	mb "github.com/mlodzikos/seabattle-backend/models/battleship"
	mc "github.com/mlodzikos/seabattle-backend/models/connection"
)

type RequestHandler interface {
	HandleCreateGame(gameManager mb.GameManager, sessionId string) (*mb.Game, mc.Message[mc.RespCreateGame])
	HandlePlaceShip(game *mb.Game) mc.Message[mc.RespPlaceShip]
	HandleRotateShip(game *mb.Game) mc.Message[mc.RespPlaceShip]
	HandleAutoPlace(game *mb.Game) mc.Message[mc.RespPlaceShip]
	HandleReadyPlayer(game *mb.Game) mc.Message[mc.NoPayload]
	HandleFire(game *mb.Game) (mc.Message[mc.RespFire], *mc.Message[mc.RespFire])
	HandleRematch(game *mb.Game) mc.Message[mc.NoPayload]
}

// Every incoming valid request is wrapped in this struct.
// The request then is handled in line with the
// RequestHandler interface.
type Request struct {
	payload []byte
}

var _ RequestHandler = (*Request)(nil)

func NewRequest(payload ...[]byte) *Request {
	r := Request{}
	if len(payload) != 0 {
		r.payload = payload[0]
	}
	return &r
}

func (r *Request) HandleCreateGame(gameManager mb.GameManager, sessionId string) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	var reqCreateGame mc.Message[mc.ReqCreateGame]
	if err := json.Unmarshal(r.payload, &reqCreateGame); err != nil {
		resp.AddError(err.Error(), ConstErrInvalidPayload)
		return nil, resp
	}

	game, err := gameManager.CreateGame(reqCreateGame.Payload.GameDifficulty, sessionId)
	if err != nil {
		resp.AddError(err.Error(), ConstErrCreateGame)
		return nil, resp
	}

	resp.AddPayload(mc.RespCreateGame{
		GameUuid:         game.Uuid(),
		HostUuid:         game.HostPlayer.Uuid,
		GridSize:         mb.GameGridSize,
		FleetShipLengths: mb.FleetShipLengths[:],
	})
	return game, resp
}

func (r *Request) HandlePlaceShip(game *mb.Game) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)

	var reqPlaceShip mc.Message[mc.ReqPlaceShip]
	if err := json.Unmarshal(r.payload, &reqPlaceShip); err != nil {
		resp.AddError(err.Error(), ConstErrInvalidPayload)
		return resp
	}

	ship, err := game.PlaceHostShip(
		reqPlaceShip.Payload.X,
		reqPlaceShip.Payload.Y,
		mb.Direction(reqPlaceShip.Payload.Direction),
		reqPlaceShip.Payload.Length,
	)
	if err != nil {
		resp.AddError(err.Error(), ConstErrPlaceShip)
		return resp
	}

	resp.AddPayload(mc.RespPlaceShip{
		ShipCoordinates:      ship.Coordinates(),
		RemainingShipLengths: game.RemainingShipLengths(),
	})
	return resp
}

func (r *Request) HandleRotateShip(game *mb.Game) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodeRotateShip)

	ship, err := game.RotateLastShip()
	if err != nil {
		resp.AddError(err.Error(), ConstErrRotateShip)
		return resp
	}

	resp.AddPayload(mc.RespPlaceShip{
		ShipCoordinates:      ship.Coordinates(),
		RemainingShipLengths: game.RemainingShipLengths(),
	})
	return resp
}

func (r *Request) HandleAutoPlace(game *mb.Game) mc.Message[mc.RespPlaceShip] {
	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodeAutoPlace)

	ships, err := game.AutoPlaceRemaining()
	if err != nil {
		resp.AddError(err.Error(), ConstErrPlaceShip)
		return resp
	}

	coordinates := make([]mb.Coordinates, 0, len(ships))
	for _, ship := range ships {
		coordinates = append(coordinates, ship.Coordinates()...)
	}

	resp.AddPayload(mc.RespPlaceShip{
		ShipCoordinates:      coordinates,
		RemainingShipLengths: game.RemainingShipLengths(),
	})
	return resp
}

func (r *Request) HandleReadyPlayer(game *mb.Game) mc.Message[mc.NoPayload] {
	resp := mc.NewMessage[mc.NoPayload](mc.CodeReady)

	if err := game.ReadyHost(); err != nil {
		resp.AddError(err.Error(), ConstErrReady)
	}
	return resp
}

// HandleFire resolves the host shot and, when the game is
// still running afterwards, lets the bot answer. The second
// return value is nil if the host shot failed or already
// decided the game.
func (r *Request) HandleFire(game *mb.Game) (mc.Message[mc.RespFire], *mc.Message[mc.RespFire]) {
	resp := mc.NewMessage[mc.RespFire](mc.CodeFire)

	var reqFire mc.Message[mc.ReqFire]
	if err := json.Unmarshal(r.payload, &reqFire); err != nil {
		resp.AddError(err.Error(), ConstErrInvalidPayload)
		return resp, nil
	}

	result, err := game.FireHost(reqFire.Payload.X, reqFire.Payload.Y)
	if err != nil {
		resp.AddError(err.Error(), ConstErrFire)
		return resp, nil
	}

	resp.AddPayload(mc.RespFire{
		X:                   result.X,
		Y:                   result.Y,
		PositionState:       result.PositionState,
		SunkShipCoordinates: result.SunkShipCoordinates,
		IsTurn:              !result.Defeated,
	})
	if result.Defeated {
		return resp, nil
	}

	botResult, err := game.FireBot()
	if err != nil {
		// should not happen; NextShot only yields valid cells
		return resp, nil
	}

	botResp := mc.NewMessage[mc.RespFire](mc.CodeBotFire)
	botResp.AddPayload(mc.RespFire{
		X:                   botResult.X,
		Y:                   botResult.Y,
		PositionState:       botResult.PositionState,
		SunkShipCoordinates: botResult.SunkShipCoordinates,
		IsTurn:              !botResult.Defeated,
	})
	return resp, &botResp
}

func (r *Request) HandleRematch(game *mb.Game) mc.Message[mc.NoPayload] {
	resp := mc.NewMessage[mc.NoPayload](mc.CodeRematch)

	if err := game.Reset(); err != nil {
		resp.AddError(err.Error(), ConstErrRematch)
	}
	return resp
}
