package battleship

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	cerr "github.com/mlodzikos/seabattle-backend/internal/error"
)

type GameManager interface {
	CreateGame(difficulty uint8, sessionID string) (*Game, error)
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)

	isDifficultyValid(uint8) bool
}

type SeaBattleGameManager struct {
	games map[string]*Game
	mu    sync.RWMutex
}

var _ GameManager = (*SeaBattleGameManager)(nil)

func NewSeaBattleGameManager() *SeaBattleGameManager {
	return &SeaBattleGameManager{
		games: make(map[string]*Game, 10),
	}
}

func (sgm *SeaBattleGameManager) CreateGame(difficulty uint8, sessionID string) (*Game, error) {
	if !sgm.isDifficultyValid(difficulty) {
		return nil, cerr.ErrInvalidGameDifficulty()
	}

	gameUuid := uuid.NewString()[:6]
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	sgm.mu.Lock()
	sgm.games[gameUuid] = newGame(difficulty, gameUuid, sessionID, rng)
	game := sgm.games[gameUuid]
	sgm.mu.Unlock()

	return game, nil
}

func (sgm *SeaBattleGameManager) GetGame(gameUuid string) (*Game, error) {
	sgm.mu.RLock()
	game, prs := sgm.games[gameUuid]
	sgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	if game == nil {
		return nil, cerr.ErrGameIsNil(gameUuid)
	}

	return game, nil
}

func (sgm *SeaBattleGameManager) TerminateGame(gameUuid string) {
	sgm.mu.Lock()
	delete(sgm.games, gameUuid)
	sgm.mu.Unlock()
}

func (sgm *SeaBattleGameManager) isDifficultyValid(difficulty uint8) bool {
	return !(difficulty != GameDifficultyEasy && difficulty != GameDifficultyNormal && difficulty != GameDifficultyHard)
}
