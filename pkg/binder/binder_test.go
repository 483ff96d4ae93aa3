package binder_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/binder"
)

type credentials struct {
	Username string `json:"username" form:"username" query:"username"`
	Password string `json:"password" form:"password"`
	Remember bool   `json:"remember" form:"remember"`
	Attempts *int   `json:"attempts,omitempty" form:"attempts"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"alice","password":"pw","remember":true}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		var got credentials
		require.NoError(t, binder.JSON()(req, &got))
		assert.Equal(t, credentials{Username: "alice", Password: "pw", Remember: true}, got)
	})

	t.Run("skips other content types", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("username=alice"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got credentials
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrBinderNotApplicable)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"alice","admin":true}`))
		req.Header.Set("Content-Type", "application/json")

		var got credentials
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrFailedToParseJSON)
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"a"}{"username":"b"}`))
		req.Header.Set("Content-Type", "application/json")

		var got credentials
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrFailedToParseJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		req.Header.Set("Content-Type", "application/json")

		var got credentials
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrFailedToParseJSON)
	})
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("decodes urlencoded body", func(t *testing.T) {
		t.Parallel()
		body := url.Values{"username": {"alice"}, "password": {"pw"}, "remember": {"on"}, "attempts": {"3"}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got credentials
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "pw", got.Password)
		assert.True(t, got.Remember)
		require.NotNil(t, got.Attempts)
		assert.Equal(t, 3, *got.Attempts)
	})

	t.Run("ignores query string", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/?username=mallory", strings.NewReader("password=pw"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got credentials
		require.NoError(t, binder.Form()(req, &got))
		assert.Empty(t, got.Username)
	})

	t.Run("skips json", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		var got credentials
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrBinderNotApplicable)
	})

	t.Run("bad number", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("attempts=many"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got credentials
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrFailedToParseForm)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	type askCode struct {
		Email string `query:"email"`
		Type  string `query:"type"`
	}

	req := httptest.NewRequest(http.MethodGet, "/?email=u%40test.com&type=register", nil)

	var got askCode
	require.NoError(t, binder.Query()(req, &got))
	assert.Equal(t, askCode{Email: "u@test.com", Type: "register"}, got)

	assert.ErrorIs(t, binder.Query()(req, got), binder.ErrFailedToParseQuery, "non-pointer target")
}

func TestQueryFieldKinds(t *testing.T) {
	t.Parallel()

	type filter struct {
		Name    *string `query:"name"`
		Limit   int64   `query:"limit"`
		Active  bool    `query:"active"`
		Ignored string  `query:"-"`
		Page    int
	}

	t.Run("binds supported kinds", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?name=bob&limit=20&active=yes&Ignored=x&-=y&page=2", nil)

		var got filter
		require.NoError(t, binder.Query()(req, &got))
		require.NotNil(t, got.Name)
		assert.Equal(t, "bob", *got.Name)
		assert.Equal(t, int64(20), got.Limit)
		assert.True(t, got.Active)
		assert.Empty(t, got.Ignored)
		assert.Equal(t, 2, got.Page)
	})

	t.Run("absent pointer stays nil", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?limit=1", nil)

		var got filter
		require.NoError(t, binder.Query()(req, &got))
		assert.Nil(t, got.Name)
	})

	t.Run("rejects bad bool", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?active=maybe", nil)

		var got filter
		assert.ErrorIs(t, binder.Query()(req, &got), binder.ErrFailedToParseQuery)
	})

	t.Run("rejects unsupported kinds", func(t *testing.T) {
		t.Parallel()
		type scores struct {
			Ratio float64 `query:"ratio"`
		}
		req := httptest.NewRequest(http.MethodGet, "/?ratio=0.5", nil)

		var got scores
		assert.ErrorIs(t, binder.Query()(req, &got), binder.ErrFailedToParseQuery)
	})
}
