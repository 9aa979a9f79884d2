// Package logging wires the process-wide log output.
package logging

import (
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. When SENTRY_DSN is set
// in the environment, error-level events are mirrored to Sentry.
func Setup(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Warn().Err(err).Msg("sentry init failed, continuing without it")
			return
		}
		log.Logger = log.Logger.Hook(sentryHook{})
	}
}

// sentryHook forwards error-level log events to Sentry.
type sentryHook struct{}

func (sentryHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if level >= zerolog.ErrorLevel {
		sentry.CaptureMessage(msg)
	}
}

// Flush drains buffered Sentry events before the process exits. Safe
// to call when Sentry was never initialized.
func Flush() {
	sentry.Flush(2 * time.Second)
}
