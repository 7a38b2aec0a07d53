package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = newLogger(os.Stdout)

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Configure switches between console output for development and JSON lines
// everywhere else.
func Configure(environment string) {
	if environment == "development" {
		log = newLogger(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	log = newLogger(os.Stdout)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// SetOutput redirects all log output, mostly useful in tests.
func SetOutput(w io.Writer) {
	log = newLogger(w)
}

func Info(format string, v ...interface{}) {
	log.Info().Msgf(format, v...)
}

func Error(format string, v ...interface{}) {
	log.Error().Msgf(format, v...)
}

func Debug(format string, v ...interface{}) {
	log.Debug().Msgf(format, v...)
}

func Warn(format string, v ...interface{}) {
	log.Warn().Msgf(format, v...)
}

// With returns a logger carrying the given fields, for call sites that want
// structured keys instead of a formatted line.
func With(fields map[string]interface{}) zerolog.Logger {
	return log.With().Fields(fields).Logger()
}

// LogLeaseTransition records a signature attempt on a lease.
func LogLeaseTransition(leaseID, actorID, from, to string, applied bool) {
	log.Info().
		Str("lease_id", leaseID).
		Str("actor_id", actorID).
		Str("from", from).
		Str("to", to).
		Bool("applied", applied).
		Msg("lease signature")
}

// Fatal logs and exits the process.
func Fatal(format string, v ...interface{}) {
	log.Fatal().Msgf(format, v...)
}
