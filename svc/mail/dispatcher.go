package mail

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/authgate/pkg/email"
	"github.com/dmitrymomot/authgate/pkg/email/templates"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/metrics"
)

// Dispatcher renders verification messages and sends them. Unknown types are dropped.
type Dispatcher struct {
	sender   email.EmailSender
	log      *slog.Logger
	validity time.Duration
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithCodeValidity sets the lifetime quoted for messages that carry none.
func WithCodeValidity(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.validity = d
		}
	}
}

// NewDispatcher sends through sender. A nil log discards records.
func NewDispatcher(sender email.EmailSender, log *slog.Logger, opts ...DispatcherOption) *Dispatcher {
	if log == nil {
		log = logger.Discard()
	}
	d := &Dispatcher{
		sender:   sender,
		log:      log.With(logger.Component("mail.dispatcher")),
		validity: DefaultCodeValidity,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle renders and sends msg. The quoted lifetime is msg.ValidFor when set.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) error {
	tpl, ok := mailTemplates[msg.Type]
	if !ok {
		metrics.MailMessagesTotal.WithLabelValues("unknown", "dropped").Inc()
		d.log.WarnContext(ctx, "dropping mail with unknown type", slog.String("type", msg.Type), logger.Email(msg.Email))
		return nil
	}

	body, err := templates.Render(ctx, verificationBody(tpl, msg.Code, d.validFor(msg)))
	if err != nil {
		metrics.MailMessagesTotal.WithLabelValues(msg.Type, "failed").Inc()
		return err
	}

	err = d.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   msg.Email,
		Subject:  tpl.subject,
		BodyHTML: body,
		Tag:      "verify-" + msg.Type,
	})
	if err != nil {
		metrics.MailMessagesTotal.WithLabelValues(msg.Type, "failed").Inc()
		return err
	}

	metrics.MailMessagesTotal.WithLabelValues(msg.Type, "sent").Inc()
	d.log.DebugContext(ctx, "verification mail sent", slog.String("type", msg.Type), logger.Email(msg.Email))
	return nil
}

func (d *Dispatcher) validFor(msg Message) time.Duration {
	if msg.ValidFor > 0 {
		return msg.ValidFor
	}
	return d.validity
}
