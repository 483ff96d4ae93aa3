package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/config"
)

type sampleConfig struct {
	Addr    string        `env:"CFG_TEST_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"CFG_TEST_TIMEOUT" envDefault:"3s"`
	Keys    []string      `env:"CFG_TEST_KEYS" envSeparator:","`
}

type requiredConfig struct {
	Secret string `env:"CFG_TEST_REQUIRED_SECRET,required"`
}

type cachedConfig struct {
	Name string `env:"CFG_TEST_CACHED_NAME"`
}

// Tests mutate process env, so they do not run in parallel.

func TestLoad(t *testing.T) {
	config.Reset()
	t.Setenv("CFG_TEST_TIMEOUT", "10s")
	t.Setenv("CFG_TEST_KEYS", "a,b")

	var cfg sampleConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"a", "b"}, cfg.Keys)
}

func TestLoad_Required(t *testing.T) {
	config.Reset()

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() {
		var again requiredConfig
		config.MustLoad(&again)
	})
}

func TestLoad_Cached(t *testing.T) {
	config.Reset()
	t.Setenv("CFG_TEST_CACHED_NAME", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("CFG_TEST_CACHED_NAME", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Name)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *sampleConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}
