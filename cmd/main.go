package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/mlodzikos/seabattle-backend/api"
	"github.com/mlodzikos/seabattle-backend/db"
	"github.com/mlodzikos/seabattle-backend/db/sqlc"
	mb "github.com/mlodzikos/seabattle-backend/models/battleship"
	mc "github.com/mlodzikos/seabattle-backend/models/connection"
)

func main() {
	if os.Getenv("STAGE") != "prod" {
		if err := godotenv.Load(".env"); err != nil {
			panic(err)
		}
	}
	stage := os.Getenv("STAGE")
	if stage != "dev" && stage != "prod" {
		panic("stage must be either dev or prod")
	}

	portEnv := os.Getenv("PORT")
	port, err := strconv.Atoi(portEnv)
	if err != nil {
		panic(err)
	}

	// The analytics counters are optional in dev; without a
	// database url the server runs games without them.
	var querier sqlc.Querier
	psqlUrl := os.Getenv("DATABASE_URL")
	if psqlUrl != "" {
		querier = sqlc.New(db.MustConnectToDb(psqlUrl))
	} else {
		if stage == "prod" {
			panic("DATABASE_URL must be set in prod")
		}
		log.Println("no DATABASE_URL set; running without analytics")
	}

	sessionManager := mc.NewSeaBattleSessionManager()
	go sessionManager.CleanupPeriodically()

	gameManager := mb.NewSeaBattleGameManager()

	rp := api.NewRequestProcessor(sessionManager, gameManager, querier)

	mux := http.NewServeMux()
	mux.Handle("GET /seabattle", rp)

	log.Printf("Listening to port %d\n", port)
	log.Fatalln(http.ListenAndServe("0.0.0.0:"+fmt.Sprintf("%d", port), mux))
}
