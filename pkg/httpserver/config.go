package httpserver

import "time"

// Config is loaded from the environment with pkg/config.
type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// NewFromConfig creates a Server from cfg. Zero values keep the defaults;
// opts are applied after the config.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	configOpts := []Option{
		func(c *config) {
			if cfg.Addr != "" {
				c.addr = cfg.Addr
			}
			c.readTimeout = cfg.ReadTimeout
			c.readHeaderTimeout = cfg.ReadHeaderTimeout
			c.writeTimeout = cfg.WriteTimeout
			c.idleTimeout = cfg.IdleTimeout
			if cfg.ShutdownTimeout > 0 {
				c.shutdownTimeout = cfg.ShutdownTimeout
			}
		},
	}
	return New(append(configOpts, opts...)...)
}
