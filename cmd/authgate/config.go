package main

import (
	"errors"
	"time"

	"github.com/dmitrymomot/authgate/pkg/email"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/redis"
	"github.com/dmitrymomot/authgate/svc/mail"
)

const (
	backendRedis    = "redis"
	backendPostgres = "postgres"
	backendMemory   = "memory"

	transportMemory = "memory"
	transportKafka  = "kafka"
)

var ErrUnknownBackend = errors.New("authgate: unknown backend")

// AppConfig aggregates every setting the commands read. Postgres settings
// are loaded separately because PG_CONN_URL is only required by the
// postgres account backend and the migrate command.
type AppConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"authgate"`
	LogLevel string `env:"LOG_LEVEL"`

	JWTSecret          string   `env:"JWT_SECRET"` // required by serve
	JWTPreviousSecrets []string `env:"JWT_PREVIOUS_SECRETS" envSeparator:","`
	JWTExpireDays      int      `env:"JWT_EXPIRE_DAYS" envDefault:"7"`
	BcryptCost         int      `env:"BCRYPT_COST" envDefault:"10"`

	VerifyCodeTTL    time.Duration `env:"VERIFY_CODE_TTL" envDefault:"3m"`
	VerifyRateWindow time.Duration `env:"VERIFY_RATE_WINDOW" envDefault:"60s"`

	StoreBackend   string        `env:"STORE_BACKEND" envDefault:"redis"`
	AccountBackend string        `env:"ACCOUNT_BACKEND" envDefault:"postgres"`
	StoreTimeout   time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`

	MailTransport string `env:"MAIL_TRANSPORT" envDefault:"memory"`
	MailWorkers   int    `env:"MAIL_WORKERS" envDefault:"2"`
	MailBuffer    int    `env:"MAIL_BUFFER" envDefault:"128"`

	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	HTTP  httpserver.Config
	Redis redis.Config
	Email email.Config
	Kafka mail.KafkaConfig
}

func (c AppConfig) validate() error {
	switch c.StoreBackend {
	case backendRedis, backendMemory:
	default:
		return errors.Join(ErrUnknownBackend, errors.New("STORE_BACKEND="+c.StoreBackend))
	}
	switch c.AccountBackend {
	case backendPostgres, backendMemory:
	default:
		return errors.Join(ErrUnknownBackend, errors.New("ACCOUNT_BACKEND="+c.AccountBackend))
	}
	switch c.MailTransport {
	case transportMemory, transportKafka:
	default:
		return errors.Join(ErrUnknownBackend, errors.New("MAIL_TRANSPORT="+c.MailTransport))
	}
	return nil
}
