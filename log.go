package constellation

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(nil).Output(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.TimeOnly,
}).With().Timestamp().Logger().Level(zerolog.InfoLevel)

func Log() *zerolog.Logger {
	return &log
}

// SetLogger replaces the package logger. The clients only ever log at
// debug level (absorbed health check failures); the cmd binaries log
// normally.
func SetLogger(logger zerolog.Logger) {
	log = logger
}

func init() {
	zerolog.TimeFieldFormat = time.TimeOnly
}
