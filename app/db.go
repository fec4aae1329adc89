package app

import (
	"database/sql"
	"fmt"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/config"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// MustInitDB connects to Postgres and installs it as the active storage.
// It logs fatally on error; the server cannot run without its ledger.
func MustInitDB() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		cfg.DB.Username,
		cfg.DB.Password,
		cfg.DB.URL,
		cfg.DB.Port,
		cfg.DB.Name,
	)

	d, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}

	if err := d.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	log.Info().Msg("connected to Postgres")
	store = NewPostgresStorage(d)
}
