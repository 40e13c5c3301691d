// Package stdlogger adapts the global zerolog logger to a printf-style
// logger interface expected by libraries that do not speak zerolog.
package stdlogger

import (
	"github.com/rs/zerolog/log"
)

// Logger is a printf-style logger backed by zerolog.
type Logger struct{}

// New creates a new printf-style logger backed by the global zerolog logger.
func New() *Logger {
	return &Logger{}
}

// Debugf logs a formatted message at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	log.Debug().Msgf(format, args...)
}

// Infof logs a formatted message at info level.
func (l *Logger) Infof(format string, args ...any) {
	log.Info().Msgf(format, args...)
}

// Warningf logs a formatted message at warn level.
func (l *Logger) Warningf(format string, args ...any) {
	log.Warn().Msgf(format, args...)
}

// Errorf logs a formatted message at error level.
func (l *Logger) Errorf(format string, args ...any) {
	log.Error().Msgf(format, args...)
}
