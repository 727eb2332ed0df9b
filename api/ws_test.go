package api

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	mb "github.com/mlodzikos/seabattle-backend/models/battleship"
	mc "github.com/mlodzikos/seabattle-backend/models/connection"
)

const (
	testWsUrl = "ws://127.0.0.1:7272/seabattle"
)

var (
	HostConn      *websocket.Conn
	HostSessionID string

	testGame     *mb.Game
	testGameUuid string

	testGameManager    *mb.SeaBattleGameManager
	testSessionManager *mc.SeaBattleSessionManager

	dialer = websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
)

func TestMain(m *testing.M) {
	go func() {
		testSessionManager = mc.NewSeaBattleSessionManager()
		go testSessionManager.CleanupPeriodically()

		testGameManager = mb.NewSeaBattleGameManager()

		// nil querier: games must run fine without analytics
		rp := NewRequestProcessor(testSessionManager, testGameManager, nil)

		mux := http.NewServeMux()
		mux.Handle("GET /seabattle", rp)

		log.Println("Listening to port 7272...")
		if err := http.ListenAndServe(":7272", mux); err != nil {
			log.Println(err)
			os.Exit(0)
		}
	}()

	// Give the server time to start
	time.Sleep(time.Second * 2)

	log.Println("dialing...")
	c, _, err := dialer.Dial(testWsUrl, nil)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	HostConn = c

	// Read host session ID
	var respSessionId mc.Message[mc.RespSessionId]
	_ = HostConn.ReadJSON(&respSessionId)
	HostSessionID = respSessionId.Payload.SessionID

	log.Println("Host session ID:", HostSessionID)
	os.Exit(m.Run())
}

func TestInvalidCode(t *testing.T) {
	tests := []struct {
		name         string
		reqPayload   mc.Message[mc.NoPayload]
		expectedCode uint8
	}{
		{
			name:         "random invalid code",
			reqPayload:   mc.NewMessage[mc.NoPayload](255),
			expectedCode: mc.CodeInvalidSignal,
		},
		{
			name:         "another random invalid code",
			reqPayload:   mc.NewMessage[mc.NoPayload](200),
			expectedCode: mc.CodeInvalidSignal,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := HostConn.WriteJSON(test.reqPayload); err != nil {
				t.Fatal(err)
			}

			var resp mc.Message[mc.NoPayload]
			if err := HostConn.ReadJSON(&resp); err != nil {
				t.Fatal(err)
			}

			if resp.Code != test.expectedCode {
				t.Fatalf("expected code: %d\t got: %d", test.expectedCode, resp.Code)
			}
		})
	}
}

func TestFireWithoutGame(t *testing.T) {
	req := mc.Message[mc.ReqFire]{Code: mc.CodeFire, Payload: mc.ReqFire{X: 0, Y: 0}}
	if err := HostConn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}

	var resp mc.Message[mc.NoPayload]
	if err := HostConn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}

	if resp.Error == nil {
		t.Fatal("firing without a game must fail")
	}
}

func TestCreateGame(t *testing.T) {
	req := mc.Message[mc.ReqCreateGame]{
		Code:    mc.CodeCreateGame,
		Payload: mc.ReqCreateGame{GameDifficulty: mb.GameDifficultyEasy},
	}
	if err := HostConn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}

	var resp mc.Message[mc.RespCreateGame]
	if err := HostConn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}

	if resp.Code != mc.CodeCreateGame {
		t.Fatalf("expected code: %d\t got: %d", mc.CodeCreateGame, resp.Code)
	}
	if resp.Error != nil {
		t.Fatalf("error: %s", resp.Error.ErrorDetails)
	}
	if resp.Payload.GridSize != mb.GameGridSize {
		t.Fatalf("expected grid size: %d\t got: %d", mb.GameGridSize, resp.Payload.GridSize)
	}
	if len(resp.Payload.FleetShipLengths) != len(mb.FleetShipLengths) {
		t.Fatalf("expected %d fleet lengths, got: %d", len(mb.FleetShipLengths), len(resp.Payload.FleetShipLengths))
	}

	testGameUuid = resp.Payload.GameUuid
	game, err := testGameManager.GetGame(testGameUuid)
	if err != nil {
		t.Fatal(err)
	}
	testGame = game
}

func TestFleetSetup(t *testing.T) {
	// the only 6-length ship of the fleet
	reqPlace := mc.Message[mc.ReqPlaceShip]{
		Code: mc.CodePlaceShip,
		Payload: mc.ReqPlaceShip{
			GameUuid:  testGameUuid,
			X:         0,
			Y:         0,
			Direction: uint8(mb.DirectionSouth),
			Length:    6,
		},
	}
	if err := HostConn.WriteJSON(reqPlace); err != nil {
		t.Fatal(err)
	}

	var respPlace mc.Message[mc.RespPlaceShip]
	if err := HostConn.ReadJSON(&respPlace); err != nil {
		t.Fatal(err)
	}
	if respPlace.Error != nil {
		t.Fatalf("error: %s", respPlace.Error.ErrorDetails)
	}
	if len(respPlace.Payload.ShipCoordinates) != 6 {
		t.Fatalf("expected 6 ship cells, got: %d", len(respPlace.Payload.ShipCoordinates))
	}
	if len(respPlace.Payload.RemainingShipLengths) != len(mb.FleetShipLengths)-1 {
		t.Fatalf("expected %d remaining lengths, got: %d",
			len(mb.FleetShipLengths)-1, len(respPlace.Payload.RemainingShipLengths))
	}

	// a second 6-length ship must be rejected
	reqPlace.Payload.X = 5
	if err := HostConn.WriteJSON(reqPlace); err != nil {
		t.Fatal(err)
	}
	if err := HostConn.ReadJSON(&respPlace); err != nil {
		t.Fatal(err)
	}
	if respPlace.Error == nil {
		t.Fatal("placing a second 6-length ship must fail")
	}

	// rotating the last placed ship keeps the origin
	reqRotate := mc.Message[mc.ReqRotateShip]{
		Code:    mc.CodeRotateShip,
		Payload: mc.ReqRotateShip{GameUuid: testGameUuid},
	}
	if err := HostConn.WriteJSON(reqRotate); err != nil {
		t.Fatal(err)
	}

	var respRotate mc.Message[mc.RespPlaceShip]
	if err := HostConn.ReadJSON(&respRotate); err != nil {
		t.Fatal(err)
	}
	if respRotate.Error != nil {
		t.Fatalf("error: %s", respRotate.Error.ErrorDetails)
	}
	if len(respRotate.Payload.ShipCoordinates) != 6 {
		t.Fatalf("rotation must keep the length, got %d cells", len(respRotate.Payload.ShipCoordinates))
	}
	if respRotate.Payload.ShipCoordinates[0] != (mb.Coordinates{X: 0, Y: 0}) {
		t.Fatalf("rotation must keep the origin, got: %+v", respRotate.Payload.ShipCoordinates[0])
	}

	// auto place the rest of the fleet
	reqAuto := mc.Message[mc.ReqAutoPlace]{
		Code:    mc.CodeAutoPlace,
		Payload: mc.ReqAutoPlace{GameUuid: testGameUuid},
	}
	if err := HostConn.WriteJSON(reqAuto); err != nil {
		t.Fatal(err)
	}

	var respAuto mc.Message[mc.RespPlaceShip]
	if err := HostConn.ReadJSON(&respAuto); err != nil {
		t.Fatal(err)
	}
	if respAuto.Error != nil {
		t.Fatalf("error: %s", respAuto.Error.ErrorDetails)
	}
	if len(respAuto.Payload.RemainingShipLengths) != 0 {
		t.Fatalf("fleet must be complete after auto place, remaining: %v", respAuto.Payload.RemainingShipLengths)
	}
}

func TestReadyStartsGame(t *testing.T) {
	req := mc.Message[mc.ReqReady]{Code: mc.CodeReady, Payload: mc.ReqReady{GameUuid: testGameUuid}}
	if err := HostConn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}

	var respReady mc.Message[mc.NoPayload]
	if err := HostConn.ReadJSON(&respReady); err != nil {
		t.Fatal(err)
	}
	if respReady.Error != nil {
		t.Fatalf("error: %s", respReady.Error.ErrorDetails)
	}

	var respStart mc.Message[mc.NoPayload]
	if err := HostConn.ReadJSON(&respStart); err != nil {
		t.Fatal(err)
	}
	if respStart.Code != mc.CodeStartGame {
		t.Fatalf("expected start game code: %d\t got: %d", mc.CodeStartGame, respStart.Code)
	}
}

func TestFireUntilVictory(t *testing.T) {
	var targets []mb.Coordinates
	for _, ship := range testGame.BotPlayer.Board.Ships() {
		targets = append(targets, ship.Coordinates()...)
	}

	for i, c := range targets {
		req := mc.Message[mc.ReqFire]{
			Code:    mc.CodeFire,
			Payload: mc.ReqFire{GameUuid: testGameUuid, X: c.X, Y: c.Y},
		}
		if err := HostConn.WriteJSON(req); err != nil {
			t.Fatal(err)
		}

		var respFire mc.Message[mc.RespFire]
		if err := HostConn.ReadJSON(&respFire); err != nil {
			t.Fatal(err)
		}
		if respFire.Error != nil {
			t.Fatalf("shot %d error: %s", i, respFire.Error.ErrorDetails)
		}
		if respFire.Payload.PositionState != mb.PositionStateHit {
			t.Fatalf("shot %d at a ship cell expected hit, got state: %d", i, respFire.Payload.PositionState)
		}

		if i < len(targets)-1 {
			// the bot answers every non-deciding shot
			var respBot mc.Message[mc.RespFire]
			if err := HostConn.ReadJSON(&respBot); err != nil {
				t.Fatal(err)
			}
			if respBot.Code != mc.CodeBotFire {
				t.Fatalf("shot %d expected bot fire code: %d\t got: %d", i, mc.CodeBotFire, respBot.Code)
			}

			if i == 0 {
				// firing twice at the same cell is rejected the
				// second time, with no answering bot shot
				if err := HostConn.WriteJSON(req); err != nil {
					t.Fatal(err)
				}
				var respRepeat mc.Message[mc.RespFire]
				if err := HostConn.ReadJSON(&respRepeat); err != nil {
					t.Fatal(err)
				}
				if respRepeat.Error == nil {
					t.Fatal("repeated shot must fail")
				}
			}
			continue
		}

		var respEnd mc.Message[mc.RespEndGame]
		if err := HostConn.ReadJSON(&respEnd); err != nil {
			t.Fatal(err)
		}
		if respEnd.Code != mc.CodeEndGame {
			t.Fatalf("expected end game code: %d\t got: %d", mc.CodeEndGame, respEnd.Code)
		}
		if respEnd.Payload.PlayerMatchStatus != mb.PlayerMatchStatusWon {
			t.Fatalf("expected match status: %d\t got: %d", mb.PlayerMatchStatusWon, respEnd.Payload.PlayerMatchStatus)
		}
	}

	if !testGame.IsFinished() {
		t.Fatal("game must be finished after the last ship cell is hit")
	}
}

func TestRematch(t *testing.T) {
	req := mc.Message[mc.ReqRematch]{Code: mc.CodeRematch, Payload: mc.ReqRematch{GameUuid: testGameUuid}}
	if err := HostConn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}

	var resp mc.Message[mc.NoPayload]
	if err := HostConn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != nil {
		t.Fatalf("error: %s", resp.Error.ErrorDetails)
	}
	if resp.Code != mc.CodeRematch {
		t.Fatalf("expected code: %d\t got: %d", mc.CodeRematch, resp.Code)
	}

	// back in setup: placing works again
	reqPlace := mc.Message[mc.ReqPlaceShip]{
		Code: mc.CodePlaceShip,
		Payload: mc.ReqPlaceShip{
			GameUuid:  testGameUuid,
			X:         2,
			Y:         2,
			Direction: uint8(mb.DirectionEast),
			Length:    6,
		},
	}
	if err := HostConn.WriteJSON(reqPlace); err != nil {
		t.Fatal(err)
	}

	var respPlace mc.Message[mc.RespPlaceShip]
	if err := HostConn.ReadJSON(&respPlace); err != nil {
		t.Fatal(err)
	}
	if respPlace.Error != nil {
		t.Fatalf("error: %s", respPlace.Error.ErrorDetails)
	}
}

func TestReconnectWithInvalidSessionId(t *testing.T) {
	conn, _, err := dialer.Dial(testWsUrl+"?sessionID=bogus", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	var resp mc.Message[mc.NoPayload]
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != mc.CodeReceivedInvalidSessionID {
		t.Fatalf("expected code: %d\t got: %d", mc.CodeReceivedInvalidSessionID, resp.Code)
	}
}
