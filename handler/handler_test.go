package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/handler"
	"github.com/dmitrymomot/authgate/pkg/binder"
	"github.com/dmitrymomot/authgate/pkg/logger"
)

type greetRequest struct {
	Name string `json:"name" form:"name" query:"name"`
}

var greet handler.HandlerFunc[handler.Context, greetRequest] = func(_ handler.Context, req greetRequest) handler.Response {
	if req.Name == "" {
		return handler.Fail(http.StatusBadRequest, "name is required")
	}
	return handler.OK(map[string]string{"greeting": "hello " + req.Name})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handler.Envelope {
	t.Helper()
	var env handler.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestWrap(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(greet, handler.WithBinders[handler.Context, greetRequest](binder.JSON(), binder.Form()))

	t.Run("json body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ann"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decode(t, rec)
		assert.Equal(t, 200, env.Code)
		assert.Equal(t, "success", env.Message)
		assert.Equal(t, map[string]any{"greeting": "hello ann"}, env.Data)
	})

	t.Run("form body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=bob"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		h(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"greeting": "hello bob"}, decode(t, rec).Data)
	})

	t.Run("no applicable binder leaves request empty", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=bob"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()

		h(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decode(t, rec)
		assert.Equal(t, 400, env.Code)
		assert.Equal(t, "name is required", env.Message)
	})

	t.Run("malformed json uses the error handler", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWrap_DecoratorsOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	trace := func(name string) handler.Decorator[handler.Context, greetRequest] {
		return func(next handler.HandlerFunc[handler.Context, greetRequest]) handler.HandlerFunc[handler.Context, greetRequest] {
			return func(ctx handler.Context, req greetRequest) handler.Response {
				calls = append(calls, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(greet,
		handler.WithBinders[handler.Context, greetRequest](binder.Query()),
		handler.WithDecorators(trace("outer"), trace("inner")),
	)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/?name=cy", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap(
		handler.HandlerFunc[handler.Context, greetRequest](func(handler.Context, greetRequest) handler.Response { return nil }),
		handler.WithErrorHandler[handler.Context, greetRequest](func(ctx handler.Context, err error) {
			got = err
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}),
	)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.ErrorIs(t, got, handler.ErrNilResponse)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	errConflict := errors.New("conflict")
	eh := handler.NewErrorHandler(logger.Discard(), func(err error) (int, string) {
		if errors.Is(err, errConflict) {
			return http.StatusConflict, "already exists"
		}
		return http.StatusInternalServerError, "internal"
	})

	rec := httptest.NewRecorder()
	ctx := handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	eh(ctx, errConflict)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, handler.Envelope{Code: 409, Message: "already exists"}, decode(t, rec))
}
