package auth_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/svc/auth"
	"github.com/dmitrymomot/authgate/svc/mail"
)

func storedCode(t *testing.T, f *fixture, email string) (string, bool) {
	t.Helper()
	code, ok, err := f.store.Get(context.Background(), auth.CodeKeyPrefix+email)
	require.NoError(t, err)
	return code, ok
}

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	for range 500 {
		code, err := auth.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestCodeIssuer_Issue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores and publishes the code", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		require.NoError(t, f.issuer.Issue(ctx, mail.TypeRegister, "u@test.com", "1.2.3.4"))

		code, ok := storedCode(t, f, "u@test.com")
		require.True(t, ok)
		assert.Len(t, code, 6)
		assert.Equal(t, mail.Message{Type: mail.TypeRegister, Email: "u@test.com", Code: code, ValidFor: auth.DefaultCodeTTL}, f.publisher.Last())
	})

	t.Run("code expires after three minutes", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		require.NoError(t, f.issuer.Issue(ctx, mail.TypeRegister, "u@test.com", "1.2.3.4"))

		f.clock.Advance(auth.DefaultCodeTTL - time.Second)
		_, ok := storedCode(t, f, "u@test.com")
		assert.True(t, ok)

		f.clock.Advance(time.Second)
		_, ok = storedCode(t, f, "u@test.com")
		assert.False(t, ok)
	})

	t.Run("same ip is blocked inside the window", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		require.NoError(t, f.issuer.Issue(ctx, mail.TypeRegister, "a@test.com", "1.2.3.4"))
		err := f.issuer.Issue(ctx, mail.TypeRegister, "b@test.com", "1.2.3.4")
		assert.ErrorIs(t, err, auth.ErrTooFrequent)

		_, ok := storedCode(t, f, "b@test.com")
		assert.False(t, ok, "denied request must not store a code")
		assert.Len(t, f.publisher.Messages(), 1, "denied request must not publish")

		f.clock.Advance(auth.DefaultRateWindow)
		assert.NoError(t, f.issuer.Issue(ctx, mail.TypeRegister, "b@test.com", "1.2.3.4"))
	})

	t.Run("different ips are independent", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		require.NoError(t, f.issuer.Issue(ctx, mail.TypeRegister, "a@test.com", "10.0.0.1"))
		assert.NoError(t, f.issuer.Issue(ctx, mail.TypeRegister, "a@test.com", "10.0.0.2"))
	})

	t.Run("new request overwrites the live code", func(t *testing.T) {
		t.Parallel()

		codes := []string{"111111", "222222"}
		f := newFixture(t)
		issuer, err := auth.NewCodeIssuer(f.store, f.publisher,
			auth.WithClock(f.clock.Now),
			auth.WithCodeGenerator(func() (string, error) {
				code := codes[0]
				codes = codes[1:]
				return code, nil
			}),
		)
		require.NoError(t, err)

		require.NoError(t, issuer.Issue(ctx, mail.TypeRegister, "a@test.com", "10.0.0.1"))
		require.NoError(t, issuer.Issue(ctx, mail.TypeRegister, "a@test.com", "10.0.0.2"))

		code, ok := storedCode(t, f, "a@test.com")
		require.True(t, ok)
		assert.Equal(t, "222222", code)
	})

	t.Run("publish failure is not surfaced", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.publisher.err = mail.ErrQueueFull

		require.NoError(t, f.issuer.Issue(ctx, mail.TypeRegister, "a@test.com", "1.2.3.4"))
		_, ok := storedCode(t, f, "a@test.com")
		assert.True(t, ok)
	})

	t.Run("unknown type still stores the code", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		require.NoError(t, f.issuer.Issue(ctx, "newsletter", "a@test.com", "1.2.3.4"))
		_, ok := storedCode(t, f, "a@test.com")
		assert.True(t, ok)
		assert.Equal(t, "newsletter", f.publisher.Last().Type)
	})
}

func TestCodeIssuer_StoreFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storeErr := errors.New("i/o timeout")

	t.Run("limiter unavailable", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("SetIfAbsent", mock.Anything, auth.RateLimitKeyPrefix+"1.2.3.4", "", auth.DefaultRateWindow).
			Return(false, storeErr)
		publisher := &recordingPublisher{}

		issuer, err := auth.NewCodeIssuer(store, publisher)
		require.NoError(t, err)

		err = issuer.Issue(ctx, mail.TypeRegister, "a@test.com", "1.2.3.4")
		assert.ErrorIs(t, err, auth.ErrInternal)
		assert.Empty(t, publisher.Messages())
		store.AssertExpectations(t)
	})

	t.Run("code write fails", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("SetIfAbsent", mock.Anything, mock.Anything, "", mock.Anything).Return(true, nil)
		store.On("Set", mock.Anything, auth.CodeKeyPrefix+"a@test.com", "123456", auth.DefaultCodeTTL).
			Return(storeErr)

		issuer, err := auth.NewCodeIssuer(store, &recordingPublisher{},
			auth.WithCodeGenerator(func() (string, error) { return "123456", nil }),
		)
		require.NoError(t, err)

		err = issuer.Issue(ctx, mail.TypeRegister, "a@test.com", "1.2.3.4")
		assert.ErrorIs(t, err, auth.ErrInternal)
		store.AssertExpectations(t)
	})
}
