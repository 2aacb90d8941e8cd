package reportd

import (
	"github.com/clustertune/reportd/domain/search"
	"github.com/clustertune/reportd/internal/config"
	"github.com/clustertune/reportd/internal/log"
)

type options struct {
	config   config.AppConfig
	logger   *log.Logger
	embedder search.Embedder
}

func defaultOptions() options {
	return options{config: config.NewAppConfig()}
}

// Option configures the client.
type Option func(*options)

// WithConfig replaces the whole configuration.
func WithConfig(cfg config.AppConfig) Option {
	return func(o *options) { o.config = cfg }
}

// WithDBURL sets the database connection URL ("sqlite:///path" or
// "postgres://...").
func WithDBURL(url string) Option {
	return func(o *options) { o.config = o.config.Apply(config.WithDBURL(url)) }
}

// WithSQLite stores data in a SQLite database at the given path. Vector
// queries run as exact linear scans.
func WithSQLite(path string) Option {
	return WithDBURL("sqlite:///" + path)
}

// WithPostgres stores data in PostgreSQL. Requires the pgvector extension;
// vector queries use native distance ordering.
func WithPostgres(url string) Option {
	return WithDBURL(url)
}

// WithOpenAI configures the OpenAI embedding provider. An empty model
// keeps the default.
func WithOpenAI(apiKey, model string) Option {
	return func(o *options) {
		opts := []config.EndpointOption{config.WithAPIKey(apiKey)}
		if model != "" {
			opts = append(opts, config.WithModel(model))
		}
		o.config = o.config.Apply(config.WithEmbeddingEndpoint(config.NewEndpointWithOptions(opts...)))
	}
}

// WithEmbedder injects a custom embedding provider, bypassing the OpenAI
// endpoint configuration. Used by tests.
func WithEmbedder(e search.Embedder) Option {
	return func(o *options) { o.embedder = e }
}

// WithLogger injects a logger. By default one is built from the
// configuration's log level and format.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAccessEnforcement toggles access-grant enforcement on similarity
// searches.
func WithAccessEnforcement(enforce bool) Option {
	return func(o *options) { o.config = o.config.Apply(config.WithEnforceAccess(enforce)) }
}

// WithSearchLimit sets the default similarity search result limit.
func WithSearchLimit(n int) Option {
	return func(o *options) { o.config = o.config.Apply(config.WithSearchLimit(n)) }
}

// WithBackfillConcurrency bounds how many embedding calls a backfill run
// may have in flight.
func WithBackfillConcurrency(n int) Option {
	return func(o *options) { o.config = o.config.Apply(config.WithBackfillConcurrency(n)) }
}

// WithoutEmbedder allows constructing a client with no embedding provider.
// Similarity search still works for entities that already have embeddings;
// embedding generation and backfill are unavailable.
func WithoutEmbedder() Option {
	return func(o *options) {
		o.config = o.config.Apply(config.WithSkipProviderValidation(true))
	}
}
