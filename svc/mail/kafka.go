package mail

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dmitrymomot/authgate/pkg/logger"
)

// KafkaConfig is shared by the publisher (serve) and the consumer (mailer).
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_MAIL_TOPIC" envDefault:"mail"`
	GroupID string   `env:"KAFKA_GROUP_ID" envDefault:"authgate-mailer"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes messages asynchronously; the write result is only logged.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher keys messages by recipient so one mailbox stays on one partition.
func NewKafkaPublisher(cfg KafkaConfig, log *slog.Logger) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrMissingBrokers
	}
	if cfg.Topic == "" {
		return nil, ErrMissingTopic
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("mail.kafka"))

	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.Hash{},
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("kafka mail write failed", slog.Int("messages", len(messages)), logger.Error(err))
			}
		},
	}}, nil
}

func newKafkaPublisherWithWriter(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish encodes msg and queues it on the writer without waiting for the broker.
func (p *KafkaPublisher) Publish(ctx context.Context, msg Message) error {
	payload, err := encode(msg)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Email),
		Value: payload,
		Time:  time.Now().UTC(),
	})
}

// Close flushes pending async writes.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConsumer reads verification messages from the mail topic and passes them to a Handler.
type KafkaConsumer struct {
	reader messageReader
	log    *slog.Logger
}

// NewKafkaConsumer joins cfg.GroupID on cfg.Topic.
func NewKafkaConsumer(cfg KafkaConfig, log *slog.Logger) (*KafkaConsumer, error) {
	switch {
	case len(cfg.Brokers) == 0:
		return nil, ErrMissingBrokers
	case cfg.Topic == "":
		return nil, ErrMissingTopic
	case cfg.GroupID == "":
		return nil, ErrMissingGroupID
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
	return newKafkaConsumerWithReader(reader, log), nil
}

func newKafkaConsumerWithReader(r messageReader, log *slog.Logger) *KafkaConsumer {
	if log == nil {
		log = logger.Discard()
	}
	return &KafkaConsumer{reader: r, log: log.With(logger.Component("mail.consumer"))}
}

// Run consumes until ctx is cancelled. Malformed payloads and handler errors are
// logged and committed: verification codes are short-lived, so redelivery would
// only send stale codes.
func (c *KafkaConsumer) Run(ctx context.Context, h Handler) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		if msg, err := decode(m.Value); err != nil {
			c.log.WarnContext(ctx, "dropping malformed mail message", slog.Int64("offset", m.Offset), logger.Error(err))
		} else if err := h.Handle(ctx, msg); err != nil {
			c.log.ErrorContext(ctx, "mail delivery failed", slog.String("type", msg.Type), logger.Email(msg.Email), logger.Error(err))
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			return err
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
