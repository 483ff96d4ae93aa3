package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/authgate/pkg/logger"
)

// ChannelPublisher is an in-process Publisher: a bounded buffer drained by a
// fixed pool of workers that call the Handler.
type ChannelPublisher struct {
	queue          chan Message
	handler        Handler
	log            *slog.Logger
	handlerTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// ChannelOption configures a ChannelPublisher.
type ChannelOption func(*channelConfig)

type channelConfig struct {
	workers        int
	buffer         int
	handlerTimeout time.Duration
	log            *slog.Logger
}

// WithWorkers sets the number of delivery goroutines.
func WithWorkers(n int) ChannelOption {
	return func(c *channelConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithBuffer sets the queue capacity; Publish fails with ErrQueueFull beyond it.
func WithBuffer(n int) ChannelOption {
	return func(c *channelConfig) {
		if n >= 0 {
			c.buffer = n
		}
	}
}

// WithHandlerTimeout bounds each delivery attempt.
func WithHandlerTimeout(d time.Duration) ChannelOption {
	return func(c *channelConfig) {
		if d > 0 {
			c.handlerTimeout = d
		}
	}
}

func WithChannelLogger(l *slog.Logger) ChannelOption {
	return func(c *channelConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// NewChannelPublisher starts the workers immediately. Call Close to drain and stop them.
func NewChannelPublisher(handler Handler, opts ...ChannelOption) *ChannelPublisher {
	cfg := channelConfig{
		workers:        2,
		buffer:         128,
		handlerTimeout: 30 * time.Second,
		log:            logger.Discard(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &ChannelPublisher{
		queue:          make(chan Message, cfg.buffer),
		handler:        handler,
		log:            cfg.log.With(logger.Component("mail.channel")),
		handlerTimeout: cfg.handlerTimeout,
	}

	for range cfg.workers {
		p.wg.Add(1)
		go p.work()
	}
	return p
}

// Publish enqueues msg without waiting. A full buffer is reported, never waited on.
func (p *ChannelPublisher) Publish(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting messages and waits until queued ones are handled.
func (p *ChannelPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

func (p *ChannelPublisher) work() {
	defer p.wg.Done()
	for msg := range p.queue {
		p.handle(msg)
	}
}

func (p *ChannelPublisher) handle(msg Message) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("mail handler panicked", slog.Any("panic", r), slog.String("type", msg.Type))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), p.handlerTimeout)
	defer cancel()

	if err := p.handler.Handle(ctx, msg); err != nil {
		p.log.Error("mail delivery failed",
			slog.String("type", msg.Type),
			logger.Email(msg.Email),
			logger.Error(err),
		)
	}
}
