// Package logging builds the leveled slog logger used by prefixsub.
//
// Records fan out to a human-readable console handler, gated at info or at
// trace when verbose, and to an optional JSON logfile that always receives
// every level. Two levels extend slog's set: LevelTrace below debug and
// LevelCritical above error. Sink adapts a *slog.Logger to the four-method
// interface the organizer and orchestrator log through.
package logging
