package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development gets the console writer and
// debug level so dropped-row summaries are visible while tuning imports.
func New(env string) zerolog.Logger {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if env == "development" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}
	return log
}
