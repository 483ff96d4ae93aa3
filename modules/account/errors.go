package account

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/authgate/handler"
	"github.com/dmitrymomot/authgate/pkg/binder"
	"github.com/dmitrymomot/authgate/svc/auth"
)

const logoutFailedMessage = "logout failed"

// statusFor maps core errors to HTTP statuses. Business rejections are 400.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrInternal):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func fail(err error) handler.Response {
	return handler.Fail(statusFor(err), auth.Message(err))
}

// classify renders binding and render failures for the error handler.
func classify(err error) (int, string) {
	if errors.Is(err, binder.ErrFailedToParseJSON) ||
		errors.Is(err, binder.ErrFailedToParseForm) ||
		errors.Is(err, binder.ErrFailedToParseQuery) {
		return http.StatusBadRequest, "invalid request parameters"
	}
	return http.StatusInternalServerError, auth.ErrInternal.Error()
}
