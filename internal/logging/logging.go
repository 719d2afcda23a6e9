// Package logging is a thin facade over github.com/joeycumines/logiface,
// backed by github.com/rs/zerolog via the github.com/joeycumines/izerolog
// adapter. cmd/dsinterpd and internal/replfrontend log through it. Its
// domain helpers pick levels the way lagopus_msg_info/warning/error did in
// the original: state transitions, commit success and auto-load recovery at
// info, commit and auto-load failure at warning, rollback failure at error.
// No other package in this module calls the domain helpers.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

// Event is the concrete logiface event type used throughout this module.
type Event = izerolog.Event

// Builder is the fluent field-builder returned by the Logger's level methods.
type Builder = logiface.Builder[*Event]

// Logger wraps a configured logiface.Logger, exposing its level-builder
// methods (Info, Warning, Err, Debug, Trace, Fatal, ...) directly.
type Logger struct {
	*logiface.Logger[*Event]
}

// New constructs a Logger writing newline-delimited JSON to w (os.Stderr if
// nil), filtered at the given level (see ParseLevel).
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).With().Timestamp().Logger()
	return &Logger{
		Logger: logiface.New[*Event](
			izerolog.WithZerolog(zl),
			logiface.WithLevel[*Event](ParseLevel(level)),
		),
	}
}

// ParseLevel maps a syslog-style level name to a logiface.Level, defaulting
// to LevelInformational for an empty or unrecognised name.
func ParseLevel(level string) logiface.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logiface.LevelTrace
	case "debug":
		return logiface.LevelDebug
	case "", "info", "informational":
		return logiface.LevelInformational
	case "notice":
		return logiface.LevelNotice
	case "warn", "warning":
		return logiface.LevelWarning
	case "error", "err":
		return logiface.LevelError
	case "crit", "critical":
		return logiface.LevelCritical
	case "alert":
		return logiface.LevelAlert
	case "emerg", "emergency":
		return logiface.LevelEmergency
	default:
		return logiface.LevelInformational
	}
}

// StateTransition logs a gstate kind transition at info level.
func (l *Logger) StateTransition(from, to string) {
	l.Info().Str("from", from).Str("to", to).Log("state transition")
}

// CommitSucceeded logs a successfully applied transaction at info level.
func (l *Logger) CommitSucceeded(txnID uint64) {
	l.Info().Uint64("txn", txnID).Log("commit succeeded")
}

// CommitFailed logs a transaction that failed validation or apply, and is
// about to be rolled back, at warning level.
func (l *Logger) CommitFailed(txnID uint64, err error) {
	l.Warning().Uint64("txn", txnID).Err(err).Log("commit failed, rolling back")
}

// RollbackFailed logs a failure to undo a partially-applied transaction, at
// error level: the in-memory tree may now be inconsistent with the applied
// objects.
func (l *Logger) RollbackFailed(txnID uint64, err error) {
	l.Err().Uint64("txn", txnID).Err(err).Log("rollback failed")
}

// AutoloadRecovered logs a successful replay of a saved configuration file
// at info level.
func (l *Logger) AutoloadRecovered(path string) {
	l.Info().Str("path", path).Log("auto-load recovery succeeded")
}

// AutoloadFailed logs a failed replay of a saved configuration file at
// warning level.
func (l *Logger) AutoloadFailed(path string, err error) {
	l.Warning().Str("path", path).Err(err).Log("auto-load recovery failed")
}

// Default is the package-wide Logger used by components that are not given
// an explicit one, writing to os.Stderr at LevelInformational.
var Default = New(os.Stderr, "info")
