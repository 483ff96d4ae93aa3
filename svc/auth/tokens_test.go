package auth_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/jwt"
	"github.com/dmitrymomot/authgate/svc/auth"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	issued, err := f.tokens.Issue(ctx, 42, "alice", []string{"ROLE_user"})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, f.clock.Now().Add(auth.DefaultTokenTTL), issued.ExpiresAt)

	id, err := f.tokens.Validate(ctx, bearer(issued.Token))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.ID)
	assert.Equal(t, "alice", id.Name)
	assert.Equal(t, []string{"ROLE_user"}, id.Authorities)
	assert.NotEmpty(t, id.TokenID)
	assert.True(t, issued.ExpiresAt.Equal(id.ExpiresAt))
}

func TestTokenService_IssueFreshTokenID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	a, err := f.tokens.Issue(ctx, 1, "bob", []string{"ROLE_user"})
	require.NoError(t, err)
	b, err := f.tokens.Issue(ctx, 1, "bob", []string{"ROLE_user"})
	require.NoError(t, err)

	idA, err := f.tokens.Validate(ctx, bearer(a.Token))
	require.NoError(t, err)
	idB, err := f.tokens.Validate(ctx, bearer(b.Token))
	require.NoError(t, err)
	assert.NotEqual(t, idA.TokenID, idB.TokenID)
}

func TestTokenService_ValidateRejects(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	issued, err := f.tokens.Issue(ctx, 7, "carol", []string{"ROLE_user"})
	require.NoError(t, err)

	other, err := jwt.NewFromString("some-other-secret")
	require.NoError(t, err)
	forged, err := other.Sign(jwt.Claims{
		SubjectID:   7,
		Name:        "carol",
		Authorities: []string{"ROLE_admin"},
		TokenID:     "forged",
		IssuedAt:    f.clock.Now(),
		ExpiresAt:   f.clock.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"missing prefix", issued.Token},
		{"lowercase prefix", "bearer " + issued.Token},
		{"double space", "Bearer  " + issued.Token},
		{"garbage", "Bearer not.a.token"},
		{"wrong key", bearer(forged)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, err := f.tokens.Validate(ctx, tt.header)
			assert.Nil(t, id)
			assert.ErrorIs(t, err, auth.ErrUnauthorized)
		})
	}
}

func TestTokenService_ValidateExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	issued, err := f.tokens.Issue(ctx, 1, "dave", nil)
	require.NoError(t, err)

	f.clock.Advance(auth.DefaultTokenTTL - time.Second)
	_, err = f.tokens.Validate(ctx, bearer(issued.Token))
	require.NoError(t, err)

	f.clock.Advance(2 * time.Second)
	_, err = f.tokens.Validate(ctx, bearer(issued.Token))
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestTokenService_Revoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("first revoke succeeds, second reports false", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		issued, err := f.tokens.Issue(ctx, 3, "erin", []string{"ROLE_user"})
		require.NoError(t, err)

		ok, err := f.tokens.Revoke(ctx, bearer(issued.Token))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = f.tokens.Revoke(ctx, bearer(issued.Token))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("concurrent revokes have one winner", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		issued, err := f.tokens.Issue(ctx, 3, "erin", nil)
		require.NoError(t, err)

		const callers = 16
		var (
			wg   sync.WaitGroup
			wins atomic.Int32
		)
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := f.tokens.Revoke(ctx, bearer(issued.Token))
				assert.NoError(t, err)
				if ok {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())
		_, err = f.tokens.Validate(ctx, bearer(issued.Token))
		assert.ErrorIs(t, err, auth.ErrUnauthorized)
	})

	t.Run("revoked token stays rejected until expiry", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		issued, err := f.tokens.Issue(ctx, 3, "erin", []string{"ROLE_user"})
		require.NoError(t, err)
		ok, err := f.tokens.Revoke(ctx, bearer(issued.Token))
		require.NoError(t, err)
		require.True(t, ok)

		for _, step := range []time.Duration{0, time.Hour, 24 * time.Hour, auth.DefaultTokenTTL} {
			f.clock.Advance(step)
			_, err := f.tokens.Validate(ctx, bearer(issued.Token))
			assert.ErrorIs(t, err, auth.ErrUnauthorized)
		}
	})

	t.Run("marker lives exactly as long as the token", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		issued, err := f.tokens.Issue(ctx, 3, "erin", nil)
		require.NoError(t, err)
		f.clock.Advance(time.Hour)

		ok, err := f.tokens.Revoke(ctx, bearer(issued.Token))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 1, f.store.Len())

		f.clock.Advance(auth.DefaultTokenTTL - time.Hour - time.Second)
		assert.Equal(t, 1, f.store.Len())

		f.clock.Advance(time.Second)
		assert.Equal(t, 0, f.store.Len())
	})

	t.Run("other tokens of the same subject stay valid", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		a, err := f.tokens.Issue(ctx, 9, "frank", nil)
		require.NoError(t, err)
		b, err := f.tokens.Issue(ctx, 9, "frank", nil)
		require.NoError(t, err)

		ok, err := f.tokens.Revoke(ctx, bearer(a.Token))
		require.NoError(t, err)
		require.True(t, ok)

		_, err = f.tokens.Validate(ctx, bearer(b.Token))
		assert.NoError(t, err)
	})

	t.Run("malformed and expired tokens report false", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		ok, err := f.tokens.Revoke(ctx, "Bearer nope")
		require.NoError(t, err)
		assert.False(t, ok)

		issued, err := f.tokens.Issue(ctx, 1, "gina", nil)
		require.NoError(t, err)
		f.clock.Advance(auth.DefaultTokenTTL + time.Minute)

		ok, err = f.tokens.Revoke(ctx, bearer(issued.Token))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, f.store.Len())
	})
}

func TestTokenService_StoreFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	codec, err := jwt.NewFromString(testSecret)
	require.NoError(t, err)

	store := &mockStore{}
	storeErr := errors.New("connection refused")
	store.On("Exists", mock.Anything, mock.Anything).Return(false, storeErr)
	store.On("SetIfAbsent", mock.Anything, mock.Anything, "", mock.Anything).Return(false, storeErr)

	tokens := auth.NewTokenService(codec, auth.NewRevocationStore(store), auth.WithClock(clock.Now))
	issued, err := tokens.Issue(ctx, 1, "hank", nil)
	require.NoError(t, err)

	_, err = tokens.Validate(ctx, bearer(issued.Token))
	assert.ErrorIs(t, err, auth.ErrInternal)
	assert.NotErrorIs(t, err, auth.ErrUnauthorized)

	_, err = tokens.Revoke(ctx, bearer(issued.Token))
	assert.ErrorIs(t, err, auth.ErrInternal)

	store.AssertExpectations(t)
}

func TestTokenService_CustomTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	codec, err := jwt.NewFromString(testSecret)
	require.NoError(t, err)

	tokens := auth.NewTokenService(codec, auth.NewRevocationStore(&mockStore{}),
		auth.WithClock(clock.Now),
		auth.WithExpireDays(2),
	)

	issued, err := tokens.Issue(context.Background(), 1, "ivy", nil)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(48*time.Hour), issued.ExpiresAt)
}

func TestRevocationStore_FloorsZeroTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &mockStore{}
	store.On("SetIfAbsent", ctx, auth.RevocationKeyPrefix+"jti-1", "", time.Second).Return(true, nil).Once()

	created, err := auth.NewRevocationStore(store).MarkRevoked(ctx, "jti-1", 0)
	require.NoError(t, err)
	assert.True(t, created)
	store.AssertExpectations(t)
}
