package logging

import (
	"context"
	"log/slog"
)

// Sink adapts a *slog.Logger to the Trace/Info/Warn/Critical interface used
// by the organizer and orchestrator.
type Sink struct {
	logger *slog.Logger
}

// NewSink wraps logger. A nil logger discards everything.
func NewSink(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.New(NoopHandler{})
	}
	return &Sink{logger: logger}
}

// Nop returns a Sink that discards all records.
func Nop() *Sink {
	return NewSink(nil)
}

// With returns a Sink whose records carry the extra attributes.
func (s *Sink) With(args ...any) *Sink {
	return &Sink{logger: s.logger.With(args...)}
}

// Component tags records with the component name shown on the console.
func (s *Sink) Component(name string) *Sink {
	return s.With(FieldComponent, name)
}

// Trace logs detail shown on the console only when verbose.
func (s *Sink) Trace(msg string, args ...any) {
	s.logger.Log(context.Background(), LevelTrace, msg, args...)
}

// Info logs a progress message.
func (s *Sink) Info(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

// Warn logs a recoverable failure; err is added as the error attribute.
func (s *Sink) Warn(msg string, err error, args ...any) {
	s.logger.Warn(msg, withError(err, args)...)
}

// Critical logs the failure that ended the run.
func (s *Sink) Critical(msg string, err error, args ...any) {
	s.logger.Log(context.Background(), LevelCritical, msg, withError(err, args)...)
}

func withError(err error, args []any) []any {
	if err == nil {
		return args
	}
	out := make([]any, 0, len(args)+2)
	out = append(out, args...)
	return append(out, slog.String("error", err.Error()))
}
