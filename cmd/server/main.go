package main

import (
	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app"
	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/config"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	app.InitLogging(cfg)

	app.MustInitDB()
	app.InitStripe()

	router, err := app.NewRouter()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize router")
	}
	router.Run("0.0.0.0:8080")
}
