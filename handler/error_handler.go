package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authgate/pkg/logger"
)

// Classifier maps an error to a status code and a user-facing message.
type Classifier func(err error) (status int, message string)

func isClientError(status int) bool {
	return status >= http.StatusBadRequest && status < http.StatusInternalServerError
}

// NewErrorHandler logs err with request details and renders it as an envelope.
// A nil classify falls back to 400 for binding failures and 500 otherwise.
func NewErrorHandler(log *slog.Logger, classify Classifier) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if classify == nil {
		classify = func(err error) (int, string) {
			if isBindError(err) {
				return http.StatusBadRequest, http.StatusText(http.StatusBadRequest)
			}
			return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
		}
	}

	return func(ctx Context, err error) {
		status, message := classify(err)

		level := slog.LevelError
		if isClientError(status) {
			level = slog.LevelWarn
		}
		r := ctx.Request()
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := Fail(status, message).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.Error("failed to render error response",
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}
