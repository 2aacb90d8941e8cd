package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfigDefaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, DefaultHost, cfg.Host())
	assert.Equal(t, DefaultPort, cfg.Port())
	assert.Equal(t, "INFO", cfg.LogLevel())
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())
	assert.Equal(t, DefaultSearchLimit, cfg.SearchLimit())
	assert.Equal(t, DefaultBackfillConcurrency, cfg.BackfillConcurrency())
	assert.True(t, cfg.EnforceAccess())
	assert.Nil(t, cfg.EmbeddingEndpoint())
	assert.Empty(t, cfg.APIKeys())
	assert.Equal(t, "sqlite:///"+filepath.Join(cfg.DataDir(), "reportd.db"), cfg.DBURL())
}

func TestAppConfigApply(t *testing.T) {
	cfg := NewAppConfig().Apply(
		WithHost("127.0.0.1"),
		WithPort(9090),
		WithSearchLimit(25),
		WithEnforceAccess(false),
	)

	assert.Equal(t, "127.0.0.1", cfg.Host())
	assert.Equal(t, 9090, cfg.Port())
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, 25, cfg.SearchLimit())
	assert.False(t, cfg.EnforceAccess())
}

func TestAppConfigApplyIgnoresInvalidLimits(t *testing.T) {
	cfg := NewAppConfig().Apply(
		WithSearchLimit(0),
		WithBackfillConcurrency(-1),
	)

	assert.Equal(t, DefaultSearchLimit, cfg.SearchLimit())
	assert.Equal(t, DefaultBackfillConcurrency, cfg.BackfillConcurrency())
}

func TestWithDataDirRewritesDefaultDBURL(t *testing.T) {
	cfg := NewAppConfig().Apply(WithDataDir("/tmp/rd"))
	assert.Equal(t, "sqlite:///"+filepath.Join("/tmp/rd", "reportd.db"), cfg.DBURL())

	// An explicit DB URL survives a later data dir change.
	cfg = NewAppConfig().Apply(
		WithDBURL("postgres://u:p@localhost/reports"),
		WithDataDir("/tmp/rd"),
	)
	assert.Equal(t, "postgres://u:p@localhost/reports", cfg.DBURL())
}

func TestAPIKeysDefensiveCopy(t *testing.T) {
	keys := []string{"k1", "k2"}
	cfg := NewAppConfig().Apply(WithAPIKeys(keys))
	keys[0] = "mutated"

	got := cfg.APIKeys()
	assert.Equal(t, []string{"k1", "k2"}, got)

	got[1] = "mutated"
	assert.Equal(t, []string{"k1", "k2"}, cfg.APIKeys())
}

func TestParseAPIKeys(t *testing.T) {
	assert.Empty(t, ParseAPIKeys(""))
	assert.Equal(t, []string{"a"}, ParseAPIKeys("a"))
	assert.Equal(t, []string{"a", "b"}, ParseAPIKeys(" a , b "))
	assert.Equal(t, []string{"a"}, ParseAPIKeys("a,,"))
}

func TestEndpointDefaults(t *testing.T) {
	e := NewEndpoint()

	assert.Equal(t, DefaultEndpointTimeout, e.Timeout())
	assert.Equal(t, DefaultEndpointMaxRetries, e.MaxRetries())
	assert.False(t, e.IsConfigured())

	e = NewEndpointWithOptions(
		WithAPIKey("sk-test"),
		WithModel("text-embedding-3-small"),
	)
	assert.True(t, e.IsConfigured())
	assert.Equal(t, "text-embedding-3-small", e.Model())
}

func TestEnvConfigToAppConfig(t *testing.T) {
	env := EnvConfig{
		Host:                "10.0.0.1",
		Port:                8888,
		DBURL:               "sqlite:///:memory:",
		LogLevel:            "DEBUG",
		LogFormat:           "JSON",
		APIKeys:             "k1,k2",
		SearchLimit:         5,
		BackfillConcurrency: 4,
		EnforceAccess:       false,
		Embedding: EndpointEnv{
			APIKey:        "sk-test",
			Model:         "text-embedding-3-small",
			Timeout:       10,
			MaxRetries:    2,
			InitialDelay:  1,
			BackoffFactor: 1.5,
		},
	}

	cfg := env.ToAppConfig()

	assert.Equal(t, "10.0.0.1", cfg.Host())
	assert.Equal(t, 8888, cfg.Port())
	assert.Equal(t, "sqlite:///:memory:", cfg.DBURL())
	assert.Equal(t, "DEBUG", cfg.LogLevel())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, []string{"k1", "k2"}, cfg.APIKeys())
	assert.Equal(t, 5, cfg.SearchLimit())
	assert.Equal(t, 4, cfg.BackfillConcurrency())
	assert.False(t, cfg.EnforceAccess())

	ep := cfg.EmbeddingEndpoint()
	require.NotNil(t, ep)
	assert.Equal(t, "sk-test", ep.APIKey())
	assert.Equal(t, 10*time.Second, ep.Timeout())
	assert.Equal(t, 2, ep.MaxRetries())
}

func TestEnvConfigUnconfiguredEndpointStaysNil(t *testing.T) {
	env := EnvConfig{Embedding: EndpointEnv{Model: "text-embedding-3-small"}}
	cfg := env.ToAppConfig()
	assert.Nil(t, cfg.EmbeddingEndpoint(), "an endpoint without a key is not configured")
}
