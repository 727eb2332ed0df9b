package connection

import (
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	cerr "github.com/mlodzikos/seabattle-backend/internal/error"
	mb "github.com/mlodzikos/seabattle-backend/models/battleship"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically()

	FindSession(sessionId string) (*Session, error)
	TerminateSession(session *Session)
	ReconnectSession(session *Session, conn *websocket.Conn)
	HandleAbnormalClosureSession(session *Session) error
	GetSessionId(session *Session) string

	GetSessionGame(session *Session) *mb.Game
	SetSessionGame(session *Session, game *mb.Game)

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
}

type SeaBattleSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

func NewSeaBattleSessionManager() *SeaBattleSessionManager {
	initMapSize := 10

	return &SeaBattleSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: time.Minute * 20,
	}
}

var _ SessionManager = (*SeaBattleSessionManager)(nil)

func (ssm *SeaBattleSessionManager) GetSessionGame(session *Session) *mb.Game {
	return session.game
}

func (ssm *SeaBattleSessionManager) SetSessionGame(session *Session, game *mb.Game) {
	session.game = game
}

func (ssm *SeaBattleSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))

	ssm.mu.Lock()
	ssm.sessions[sessionId] = NewSession(sessionId, conn)
	session := ssm.sessions[sessionId]
	ssm.mu.Unlock()

	return session
}

func (ssm *SeaBattleSessionManager) FindSession(sessionId string) (*Session, error) {
	ssm.mu.RLock()
	defer ssm.mu.RUnlock()

	session, prs := ssm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (ssm *SeaBattleSessionManager) TerminateSession(session *Session) {
	ssm.mu.Lock()
	delete(ssm.sessions, session.id)
	ssm.mu.Unlock()
}

func (ssm *SeaBattleSessionManager) ReconnectSession(session *Session, conn *websocket.Conn) {
	session.reconnectionAfterAbnormalClosure(conn)
}

// To ensure that there are no dangling connections, the
// session manager marks connections with a lifetime of more
// than 20 mins as stale and deletes them.
func (ssm *SeaBattleSessionManager) CleanupPeriodically() {
	assumedClosedConns := 10

	for {
		time.Sleep(ssm.cleanupInterval)

		ssm.mu.Lock()
		toDelete := make([]string, 0, assumedClosedConns)

		for ID, session := range ssm.sessions {
			if time.Since(session.createdAt) > ssm.cleanupInterval {
				toDelete = append(toDelete, ID)
			}
		}

		log.Println("Clean up sessions:")
		for _, ID := range toDelete {
			delete(ssm.sessions, ID)
			log.Printf("removed: %s", ID)
		}
		ssm.mu.Unlock()
	}
}

// Abnormal closures happen due to backgrounding in IOS
// clients or any other unexpected reasons for web apps.
// The bot opponent does not mind waiting, so the session
// just sits in a grace period until the player reconnects
// with their session id or the period runs out.
func (ssm *SeaBattleSessionManager) HandleAbnormalClosureSession(s *Session) error {
	if s.game == nil {
		return NewConnErr(ConnLoopBreak).AddDesc("session has no game; not worth a grace period")
	}

	log.Printf("starting grace period for %s\n", s.id)
	timer := time.NewTimer(gracePeriod)

	select {
	case <-timer.C:
		log.Printf("session terminated: %s\n", s.id)
		return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + s.id)

	case <-s.reconnectionSignalChan:
		log.Printf("player reconnected, session: %s\n", s.id)
		return nil
	}
}

func (ssm *SeaBattleSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	err := session.writeToConnWithRetry(msg, msgType)

	if err != nil {
		connErr, ok := err.(ConnErr)
		if !ok {
			panic("this will never happen")
		}

		switch connErr.Code() {
		case ConnLoopBreak, ConnInvalidMsgType:
			return connErr

		case ConnLoopAbnormalClosureRetry:
			if err := ssm.HandleAbnormalClosureSession(session); err != nil {
				return connErr
			}
		}
	}

	return nil
}

func (ssm *SeaBattleSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := ssm.HandleAbnormalClosureSession(session); err != nil {
				return -1, []byte{}, err
			}

		default:
			return -1, []byte{}, err
		}
	}
}

func (ssm *SeaBattleSessionManager) GetSessionId(session *Session) string {
	return session.id
}
