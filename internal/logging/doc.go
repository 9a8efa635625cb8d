// Package logging provides structured logging for the formwidgets command.
//
// It wraps a process-wide zap logger that stays silent (a nop logger) unless a
// level is set explicitly or through FORMWIDGETS_LOG_LEVEL, so rendering to
// stdout is never interleaved with log output by accident.
//
// Initialize logging once at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Library packages do not import this package; they accept a *zap.Logger
// option instead and default to a nop logger.
package logging
