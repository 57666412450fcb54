// Package logger provides structured logging helpers built on Go's standard slog package.
//
// New builds a *slog.Logger from functional options; the attribute helpers give
// common keys a consistent name across the codebase.
//
//	log := logger.New(logger.WithDevelopment("posctl"))
//	log.Info("session started",
//		logger.Component("sessionkeeper"),
//		logger.Event("start"),
//		logger.Duration(30*time.Minute),
//	)
//
// Helpers return an empty slog.Attr for nil or empty input, which slog drops:
//
//	log.Error("keep-alive failed", logger.Error(err)) // err may be nil
//
// Libraries in this module accept an optional *slog.Logger and default to Nop.
//
// Capture logs in tests with WithOutput:
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//	log.Info("msg", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger
