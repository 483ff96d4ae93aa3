package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/svc/mail"
)

func newMailerCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mailer",
		Short: "Deliver verification mail published to Kafka",
		Long: `mailer consumes the topic serve publishes to when MAIL_TRANSPORT=kafka
and sends each message through Postmark, or to MAIL_DEV_DIR when
Postmark tokens are not set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sender, err := a.newSender()
			if err != nil {
				return err
			}
			consumer, err := mail.NewKafkaConsumer(a.cfg.Kafka, a.log)
			if err != nil {
				return err
			}
			defer func() {
				if err := consumer.Close(); err != nil {
					a.log.Error("failed to close kafka reader", logger.Error(err))
				}
			}()

			a.log.Info("mailer started")
			return consumer.Run(ctx, mail.NewDispatcher(sender, a.log, mail.WithCodeValidity(a.cfg.VerifyCodeTTL)))
		},
	}
}
