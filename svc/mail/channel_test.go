package mail_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/svc/mail"
)

type collector struct {
	mu   sync.Mutex
	msgs []mail.Message
}

func (c *collector) Handle(_ context.Context, msg mail.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *collector) Messages() []mail.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]mail.Message(nil), c.msgs...)
}

func TestChannelPublisher_DeliversAll(t *testing.T) {
	t.Parallel()

	sink := &collector{}
	pub := mail.NewChannelPublisher(sink, mail.WithWorkers(3), mail.WithBuffer(16))

	for i := range 10 {
		err := pub.Publish(context.Background(), mail.Message{Type: mail.TypeRegister, Email: "a@example.com", Code: string(rune('0' + i))})
		require.NoError(t, err)
	}
	require.NoError(t, pub.Close())

	assert.Len(t, sink.Messages(), 10)
}

func TestChannelPublisher_Full(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	blocking := mail.HandlerFunc(func(context.Context, mail.Message) error {
		started <- struct{}{}
		<-release
		return nil
	})

	pub := mail.NewChannelPublisher(blocking, mail.WithWorkers(1), mail.WithBuffer(1))

	ctx := context.Background()
	require.NoError(t, pub.Publish(ctx, mail.Message{Type: "a"}))
	<-started // worker busy, buffer empty
	require.NoError(t, pub.Publish(ctx, mail.Message{Type: "b"}))
	assert.ErrorIs(t, pub.Publish(ctx, mail.Message{Type: "c"}), mail.ErrQueueFull)

	close(release)
	require.NoError(t, pub.Close())
}

func TestChannelPublisher_Closed(t *testing.T) {
	t.Parallel()

	pub := mail.NewChannelPublisher(&collector{})
	require.NoError(t, pub.Close())
	require.NoError(t, pub.Close())

	err := pub.Publish(context.Background(), mail.Message{})
	assert.ErrorIs(t, err, mail.ErrPublisherClosed)
}

func TestChannelPublisher_HandlerFailureDoesNotStopWorkers(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	calls := 0
	h := mail.HandlerFunc(func(_ context.Context, msg mail.Message) error {
		mu.Lock()
		calls++
		mu.Unlock()
		if msg.Type == "panic" {
			panic("boom")
		}
		return errors.New("smtp down")
	})

	pub := mail.NewChannelPublisher(h, mail.WithWorkers(1))
	require.NoError(t, pub.Publish(context.Background(), mail.Message{Type: "panic"}))
	require.NoError(t, pub.Publish(context.Background(), mail.Message{Type: "register"}))
	require.NoError(t, pub.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls)
}
