// Package logger provides structured logging utilities built on Go's standard
// slog package: a logger factory with environment presets, context-aware
// attribute extraction and attribute helpers for signal dispatch.
//
// # Features
//
//   - Built on log/slog, no custom logging interface
//   - Environment presets (development, staging, production)
//   - JSON and text output
//   - Context extractors that inject attributes into every record
//   - Attribute helpers with nil safety (logger.Error(nil) is an empty Attr)
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/signals/core/logger"
//
//	log := logger.New(
//		logger.WithDevelopment("sisi"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("dispatcher ready",
//		logger.Component("signals"),
//		logger.Count("connections", n),
//	)
//
// # Environment Configurations
//
//	// Development: text format, debug level, stdout
//	devLogger := logger.New(logger.WithDevelopment("sisi"))
//
//	// Production and staging: JSON format, info level, stdout
//	prodLogger := logger.New(logger.WithProduction("sisi"))
//
//	// Picked by name, e.g. from APP_ENV
//	log := logger.New(logger.WithEnvironment(cfg.Env, cfg.Name))
//
// # Context-Aware Logging
//
// Extractors run for every record logged with a context. The dispatcher stores
// the emission ID in the context it passes to receivers, so an extractor can
// tag every receiver log line with it:
//
//	log := logger.New(
//		logger.WithProduction("sisi"),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			if id := signals.EmissionID(ctx); id != "" {
//				return logger.EmissionID(id), true
//			}
//			return slog.Attr{}, false
//		}),
//	)
//
// WithContextValue covers the simple case of logging a raw context value:
//
//	log := logger.New(logger.WithContextValue("tenant", tenantKey{}))
//
// # Attribute Helpers
//
//	log.Error("receiver failed",
//		logger.Signal(signal),
//		logger.Sender(sender),
//		logger.Receiver(name),
//		logger.Duration(time.Since(start)),
//		logger.Result("failure"),
//		logger.Error(err),
//	)
//
//	// Joined errors keep their position: errors.0, errors.2 ...
//	log.Warn("auto-connect incomplete", logger.Errors(errs...))
//
// # Testing with Custom Output
//
//	var buf bytes.Buffer
//	log := logger.New(
//		logger.WithJSONFormatter(),
//		logger.WithOutput(&buf),
//	)
//
//	log.Info("Test message", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger
