// Package logger provides structured logging for igprofile.
//
// It wraps zerolog behind a small Logger interface so the Instagram client,
// the error classifier and the CLI can log with fields without depending on
// zerolog directly.
//
//	log, err := logger.New(&cfg.Logging)
//	log.WithField("username", "natgeo").Info("Fetching profile")
//
// Tests either capture events with NewTestLogger or silence them with
// NewNopLogger.
package logger
