package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New initializes the process-wide zerolog.Logger.
// "dev" gets human-readable console output; anything else gets JSON.
func New(appEnv string) zerolog.Logger {
	if appEnv == "dev" {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
		return zerolog.New(consoleWriter).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
