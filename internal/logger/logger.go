package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. DEV gets a human readable console
// writer at debug level, everything else JSON at info level.
func Setup(env string, debug bool) zerolog.Logger {
	dev := env == "DEV"
	level := zerolog.InfoLevel
	if dev || debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	if dev {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, FormatTimestamp: func(i any) string {
			return time.Now().Format(time.RFC3339)
		}}).Level(level).With().Caller().Logger()
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = logger
	return logger
}
