// Package logging provides structured logging for hubview.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// context propagation. The terminal belongs to the TUI while hubview runs, so
// logs are written to a file in the state directory and rotated by size.
//
// # Basic Usage
//
//	logger, err := logging.NewLoggerWithRotation(stateDir, "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	runLog := logger.WithRun(assembly.ID())
//	runLog.WithRow(3).Warn("row omitted", "error", err.Error())
//
// # Rotation
//
// When the file would exceed MaxSizeMB it is renamed to debug.log.1, older
// backups shift up by one and anything beyond MaxBackups is removed.
//
// # Testing
//
// Use [NopLogger] to discard all output.
package logging
