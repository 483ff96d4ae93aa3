package main

import (
	"context"
	"fmt"
	"log/slog"

	accountmod "github.com/dmitrymomot/authgate/modules/account"
	"github.com/dmitrymomot/authgate/pkg/config"
	"github.com/dmitrymomot/authgate/pkg/email"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/jwt"
	"github.com/dmitrymomot/authgate/pkg/kvstore"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/pg"
	"github.com/dmitrymomot/authgate/pkg/redis"
	"github.com/dmitrymomot/authgate/svc/account"
	"github.com/dmitrymomot/authgate/svc/auth"
	"github.com/dmitrymomot/authgate/svc/mail"
)

// deps holds everything serve builds, plus the closers to run on exit in reverse order.
type deps struct {
	store     kvstore.Store
	accounts  account.Repository
	publisher mail.Publisher
	checks    []httpserver.Check
	closers   []func() error
}

func (d *deps) onClose(fn func() error) {
	d.closers = append(d.closers, fn)
}

func (d *deps) close(log *slog.Logger) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			log.Error("failed to release resource", logger.Error(err))
		}
	}
}

func (a *app) buildDeps(ctx context.Context) (_ *deps, err error) {
	d := &deps{}
	defer func() {
		if err != nil {
			d.close(a.log)
		}
	}()

	if err := a.openStore(ctx, d); err != nil {
		return nil, err
	}
	if err := a.openAccounts(ctx, d); err != nil {
		return nil, err
	}
	if err := a.openPublisher(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (a *app) openStore(ctx context.Context, d *deps) error {
	switch a.cfg.StoreBackend {
	case backendMemory:
		mem := kvstore.NewMemoryStore()
		d.onClose(mem.Close)
		d.store = kvstore.WithTimeout(mem, a.cfg.StoreTimeout)
	default:
		client, err := redis.Connect(ctx, a.cfg.Redis)
		if err != nil {
			return err
		}
		d.onClose(client.Close)
		d.store = kvstore.WithTimeout(redis.NewStorageFromConfig(client, a.cfg.Redis), a.cfg.StoreTimeout)
		d.checks = append(d.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	}
	return nil
}

func (a *app) openAccounts(ctx context.Context, d *deps) error {
	switch a.cfg.AccountBackend {
	case backendMemory:
		a.log.Warn("accounts are kept in memory and lost on restart")
		d.accounts = account.NewMemoryRepository()
	default:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		d.onClose(func() error { pool.Close(); return nil })
		d.accounts = account.WithTimeout(account.NewPostgresRepository(pool), a.cfg.StoreTimeout)
		d.checks = append(d.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
	}
	return nil
}

func (a *app) openPublisher(d *deps) error {
	switch a.cfg.MailTransport {
	case transportKafka:
		pub, err := mail.NewKafkaPublisher(a.cfg.Kafka, a.log)
		if err != nil {
			return err
		}
		d.onClose(pub.Close)
		d.publisher = pub
	default:
		sender, err := a.newSender()
		if err != nil {
			return err
		}
		pub := mail.NewChannelPublisher(
			mail.NewDispatcher(sender, a.log, mail.WithCodeValidity(a.cfg.VerifyCodeTTL)),
			mail.WithWorkers(a.cfg.MailWorkers),
			mail.WithBuffer(a.cfg.MailBuffer),
			mail.WithChannelLogger(a.log),
		)
		d.onClose(pub.Close)
		d.publisher = pub
	}
	return nil
}

func (a *app) newSender() (email.EmailSender, error) {
	if a.cfg.Email.UsePostmark() {
		return email.NewPostmarkClient(a.cfg.Email)
	}
	a.log.Warn("postmark is not configured, writing mail to disk", slog.String("dir", a.cfg.Email.DevDir))
	return email.NewDevSender(a.cfg.Email.DevDir), nil
}

func (a *app) newServices(d *deps) (accountmod.Services, error) {
	codec, err := jwt.NewFromString(a.cfg.JWTSecret, a.cfg.JWTPreviousSecrets...)
	if err != nil {
		return accountmod.Services{}, fmt.Errorf("JWT_SECRET: %w", err)
	}

	opts := []auth.Option{
		auth.WithLogger(a.log),
		auth.WithExpireDays(a.cfg.JWTExpireDays),
		auth.WithCodeTTL(a.cfg.VerifyCodeTTL),
		auth.WithRateWindow(a.cfg.VerifyRateWindow),
		auth.WithHasher(auth.NewBcryptHasher(a.cfg.BcryptCost)),
	}

	tokens := auth.NewTokenService(codec, auth.NewRevocationStore(d.store), opts...)
	codes, err := auth.NewCodeIssuer(d.store, d.publisher, opts...)
	if err != nil {
		return accountmod.Services{}, err
	}

	return accountmod.Services{
		Tokens:        tokens,
		Codes:         codes,
		Registrar:     auth.NewRegistrar(d.store, d.accounts, opts...),
		Authenticator: auth.NewAuthenticator(d.accounts, tokens, opts...),
	}, nil
}
