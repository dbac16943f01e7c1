// Package logging builds the slog loggers used across strata.
//
// Loggers are constructed once from config and handed down to components,
// which tag themselves with a component attribute:
//
//	logger, err := logging.New(logging.Config{Level: "debug", Format: "json"})
//	if err != nil {
//		return err
//	}
//	parserLog := logging.Component(logger, "vmf.parser")
//
// Import sessions attach per-run fields (session id, source path) to the
// context; ContextLogger lifts them onto a logger so every record from one
// run carries the same identifiers.
package logging
