package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authgate/pkg/jwt"
	"github.com/dmitrymomot/authgate/pkg/kvstore"
	"github.com/dmitrymomot/authgate/svc/account"
	"github.com/dmitrymomot/authgate/svc/auth"
	"github.com/dmitrymomot/authgate/svc/mail"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingPublisher captures published messages instead of sending mail.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []mail.Message
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, msg mail.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) Messages() []mail.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]mail.Message(nil), p.msgs...)
}

func (p *recordingPublisher) Last() mail.Message {
	msgs := p.Messages()
	if len(msgs) == 0 {
		return mail.Message{}
	}
	return msgs[len(msgs)-1]
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStore) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, ttl)
	return args.Bool(0), args.Error(1)
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) FindByUsernameOrEmail(ctx context.Context, text string) (*account.Account, error) {
	args := m.Called(ctx, text)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *mockRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) Insert(ctx context.Context, acc *account.Account) error {
	return m.Called(ctx, acc).Error(0)
}

const testSecret = "test-signing-secret"

// fixture wires every service against in-memory collaborators and one fake clock.
type fixture struct {
	clock      *fakeClock
	store      *kvstore.MemoryStore
	accounts   *account.MemoryRepository
	publisher  *recordingPublisher
	tokens     *auth.TokenService
	issuer     *auth.CodeIssuer
	registrar  *auth.Registrar
	authorizer *auth.Authenticator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := newFakeClock()
	store := kvstore.NewMemoryStore(kvstore.WithClock(clock.Now), kvstore.WithCleanupInterval(0))
	t.Cleanup(func() { _ = store.Close() })

	codec, err := jwt.NewFromString(testSecret)
	require.NoError(t, err)

	opts := []auth.Option{
		auth.WithClock(clock.Now),
		auth.WithHasher(auth.NewBcryptHasher(bcrypt.MinCost)),
	}

	f := &fixture{
		clock:     clock,
		store:     store,
		accounts:  account.NewMemoryRepository(),
		publisher: &recordingPublisher{},
	}
	f.tokens = auth.NewTokenService(codec, auth.NewRevocationStore(store), opts...)
	f.issuer, err = auth.NewCodeIssuer(store, f.publisher, opts...)
	require.NoError(t, err)
	f.registrar = auth.NewRegistrar(store, f.accounts, opts...)
	f.authorizer = auth.NewAuthenticator(f.accounts, f.tokens, opts...)
	return f
}

func bearer(token string) string {
	return jwt.BearerPrefix + token
}
