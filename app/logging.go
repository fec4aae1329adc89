package app

import (
	"os"
	"time"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogging configures the global zerolog logger from LOG_STYLE/LOG_LEVEL.
// JSON output is the default; "console" switches to the human-readable writer.
func InitLogging(cfg *config.Config) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Logs.Level))

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Logs.Style == "console" {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
	log.Logger = logger
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
