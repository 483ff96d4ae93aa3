// Package logger builds log/slog loggers with environment-aware defaults
// and a handler decorator that copies request-scoped values (such as the
// request id) from the context into every record.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "authgate"),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(httpserver.RequestIDExtractor()),
//	)
package logger
