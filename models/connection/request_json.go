package connection

type ReqCreateGame struct {
	GameDifficulty uint8 `json:"game_difficulty"`
}

type ReqPlaceShip struct {
	GameUuid  string `json:"game_uuid"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction uint8  `json:"direction"`
	Length    int    `json:"length"`
}

type ReqRotateShip struct {
	GameUuid string `json:"game_uuid"`
}

type ReqAutoPlace struct {
	GameUuid string `json:"game_uuid"`
}

type ReqReady struct {
	GameUuid string `json:"game_uuid"`
}

type ReqFire struct {
	GameUuid string `json:"game_uuid"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

type ReqRematch struct {
	GameUuid string `json:"game_uuid"`
}
