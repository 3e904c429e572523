// Package report wraps Sentry error reporting. Reporting is optional: with
// no DSN configured every call is a no-op.
package report

import (
	"time"

	"github.com/getsentry/sentry-go"
)

var enabled bool

// Setup initialises Sentry with the given DSN. An empty DSN disables
// reporting entirely.
func Setup(dsn, env string) error {
	if dsn == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
	}); err != nil {
		return err
	}
	enabled = true
	return nil
}

// Flush drains queued events before shutdown.
func Flush() {
	if enabled {
		sentry.Flush(2 * time.Second)
	}
}

// RefreshFailed reports a failed refresh cycle, tagged with the source name.
func RefreshFailed(source string, err error) {
	if !enabled || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("source", source)
		scope.SetLevel(sentry.LevelError)
		sentry.CaptureException(err)
	})
}
