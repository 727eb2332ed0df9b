package battleship

import (
	"github.com/google/uuid"
)

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

type Player struct {
	Uuid        string
	IsBot       bool
	IsTurn      bool
	IsReady     bool
	MatchStatus int
	Board       *Board
	SessionID   string
}

func NewPlayer(isBot, isTurn bool, sessionID string, gridSize int) *Player {
	return &Player{
		IsBot:       isBot,
		IsTurn:      isTurn,
		IsReady:     false,
		MatchStatus: PlayerMatchStatusUndefined,
		Uuid:        uuid.NewString()[:10],
		Board:       NewBoard(gridSize),
		SessionID:   sessionID,
	}
}

// Fresh board and statuses for a rematch; the uuid and
// session binding survive.
func (p *Player) ResetForRematch(gridSize int) {
	p.Board = NewBoard(gridSize)
	p.IsReady = false
	p.IsTurn = false
	p.MatchStatus = PlayerMatchStatusUndefined
}
