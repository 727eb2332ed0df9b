package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/sqlc-dev/pqtype"

	"github.com/mlodzikos/seabattle-backend/db/sqlc"
	mb "github.com/mlodzikos/seabattle-backend/models/battleship"
	mc "github.com/mlodzikos/seabattle-backend/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

var upgrader = websocket.Upgrader{

	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	// probably more than enough but this is a good average size
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	q              sqlc.Querier
	ipnet          net.IPNet
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	q sqlc.Querier,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		q:              q,
	}

	rp = rp.mustGetServerIpNet()
	return rp
}

func (rp RequestProcessor) mustGetServerIpNet() RequestProcessor {
	ifaces, err := net.Interfaces()
	if err != nil {
		panic(err)
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			panic(err)
		}

		for _, addr := range addrs {
			var ipnet *net.IPNet
			var ip net.IP

			switch v := addr.(type) {
			case *net.IPNet:
				ipnet = v
				ip = v.IP

			case *net.IPAddr:
				ip = v.IP
			}

			if ip != nil && ip.To4() != nil && !ip.IsLoopback() {
				rp.ipnet = *ipnet
				return rp
			}
		}
	}

	panic("ipnet could not be found!")
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

const (
	counterGamesCreated uint8 = iota
	counterRematchCalled
	counterShotsFired
)

// Analytics must never decide a game, so failures only get
// logged. A nil querier (no database configured) is skipped
// altogether.
func (rp RequestProcessor) incrementCounter(counter uint8) {
	if rp.q == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	serverIpNet := pqtype.Inet{IPNet: rp.ipnet, Valid: true}

	var err error
	switch counter {
	case counterGamesCreated:
		err = rp.q.IncrementGamesCreatedCount(ctx, serverIpNet)
	case counterRematchCalled:
		err = rp.q.IncrementRematchCalledCount(ctx, serverIpNet)
	case counterShotsFired:
		err = rp.q.IncrementShotsFiredCount(ctx, serverIpNet)
	}

	if err != nil {
		log.Println(err)
	}
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
		go rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		session, err := rp.sessionManager.FindSession(sessionIdQuery)
		if err != nil {
			// This either means an expired session or invalid session ID
			_ = conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID))
			conn.Close()
			return
		}
		rp.sessionManager.ReconnectSession(session, conn)
	}
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := rp.sessionManager.GetSessionId(session)

	defer func() {
		if game := rp.sessionManager.GetSessionGame(session); game != nil {
			rp.gameManager.TerminateGame(game.Uuid())
		}
		if session != nil && session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(session)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// This error happens after retries. If it's not nil,
			// then something was wrong with the session connection
			// and couldn't be resolved
			break sessionLoop
		}

		var signal mc.Signal
		if err := json.Unmarshal(payload, &signal); err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		sessionGame := rp.sessionManager.GetSessionGame(session)

		switch signal.Code {

		// In this branch we initialize the game. The bot fleet
		// is placed at creation, so the host can start the setup
		// right away.
		case mc.CodeCreateGame:
			game, respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager, sessionId)
			if game != nil {
				rp.sessionManager.SetSessionGame(session, game)
				rp.incrementCounter(counterGamesCreated)
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodePlaceShip:
			if sessionGame == nil {
				if err := rp.writeNoGameErr(session, mc.CodePlaceShip); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg := NewRequest(payload).HandlePlaceShip(sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeRotateShip:
			if sessionGame == nil {
				if err := rp.writeNoGameErr(session, mc.CodeRotateShip); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg := NewRequest(payload).HandleRotateShip(sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeAutoPlace:
			if sessionGame == nil {
				if err := rp.writeNoGameErr(session, mc.CodeAutoPlace); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg := NewRequest(payload).HandleAutoPlace(sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// This code means the player has finished the fleet
		// setup and the match starts
		case mc.CodeReady:
			if sessionGame == nil {
				if err := rp.writeNoGameErr(session, mc.CodeReady); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg := NewRequest(payload).HandleReadyPlayer(sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			if respMsg.Error != nil {
				continue sessionLoop
			}

			respStartGame := mc.NewMessage[mc.NoPayload](mc.CodeStartGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respStartGame, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// This branch takes care of the shot logic. A valid host
		// shot is followed by the bot's answering shot; if either
		// shot decided the game, an end game message closes the
		// round.
		case mc.CodeFire:
			if sessionGame == nil {
				if err := rp.writeNoGameErr(session, mc.CodeFire); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg, botRespMsg := NewRequest(payload).HandleFire(sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			// This means fire operation did not complete
			if respMsg.Error != nil {
				continue sessionLoop
			}

			rp.incrementCounter(counterShotsFired)

			if botRespMsg != nil {
				if err := rp.sessionManager.WriteToSessionConn(session, *botRespMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

			if sessionGame.IsFinished() {
				respEndGame := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
				respEndGame.AddPayload(mc.RespEndGame{PlayerMatchStatus: sessionGame.HostPlayer.MatchStatus})
				if err := rp.sessionManager.WriteToSessionConn(session, respEndGame, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		case mc.CodeRematch:
			if sessionGame == nil {
				if err := rp.writeNoGameErr(session, mc.CodeRematch); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg := NewRequest(payload).HandleRematch(sessionGame)
			if respMsg.Error == nil {
				rp.incrementCounter(counterRematchCalled)
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

func (rp *RequestProcessor) writeNoGameErr(session *mc.Session, code uint8) error {
	msg := mc.NewMessage[mc.NoPayload](code)
	msg.AddError(ConstErrNoGame, "")
	return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)
}
