// Package reportd provides a report management backend for database
// cluster tuning analyses, with access-controlled vector similarity search
// over report and finding embeddings.
package reportd

import (
	"context"
	"errors"
	"fmt"

	appservice "github.com/clustertune/reportd/application/service"
	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/search"
	domainservice "github.com/clustertune/reportd/domain/service"
	"github.com/clustertune/reportd/infrastructure/persistence"
	"github.com/clustertune/reportd/infrastructure/provider"
	"github.com/clustertune/reportd/internal/config"
	"github.com/clustertune/reportd/internal/database"
	"github.com/clustertune/reportd/internal/log"
)

// ErrNoEmbedder indicates no embedding provider was configured. Configure
// an OpenAI endpoint, inject a custom Embedder, or opt out of provider
// validation for read-only use.
var ErrNoEmbedder = errors.New("no embedding provider configured")

// Client is the root entry point. Construct one per process with New and
// share it; all services are safe for concurrent use.
type Client struct {
	// Reports manages report CRUD, comments, and status history.
	Reports *appservice.ReportService

	// Findings manages findings and their recommended actions.
	Findings *appservice.FindingService

	// Access manages users and per-customer access grants.
	Access *appservice.AccessService

	// Search runs access-controlled similarity queries.
	Search *appservice.SearchService

	// Backfill generates embeddings for entities that lack one. Nil when
	// no embedding provider is configured.
	Backfill *domainservice.BackfillService

	config     config.AppConfig
	logger     *log.Logger
	db         database.Database
	embedder   search.Embedder
	systemUser report.User
}

// New creates a fully wired client: it opens the database, runs
// migrations, bootstraps the system user, and constructs the embedding
// provider once for the client's lifetime.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = log.NewLogger(o.config)
	}

	db, err := database.NewDatabase(ctx, o.config.DBURL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	reports := persistence.NewReportStore(db)
	findings := persistence.NewFindingStore(db)
	actions := persistence.NewActionStore(db)
	comments := persistence.NewCommentStore(db)
	users := persistence.NewUserStore(db)
	grants := persistence.NewAccessGrantStore(db)
	history := persistence.NewStatusHistoryStore(db)

	systemUser, err := persistence.EnsureSystemUser(ctx, users)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	embedder := o.embedder
	if embedder == nil {
		if endpoint := o.config.EmbeddingEndpoint(); endpoint != nil && endpoint.IsConfigured() {
			embedder = provider.NewOpenAIEmbedderFromConfig(provider.OpenAIConfig{
				APIKey:        endpoint.APIKey(),
				BaseURL:       endpoint.BaseURL(),
				Model:         endpoint.Model(),
				Timeout:       endpoint.Timeout(),
				MaxRetries:    endpoint.MaxRetries(),
				InitialDelay:  endpoint.InitialDelay(),
				BackoffFactor: endpoint.BackoffFactor(),
			})
		} else if !o.config.SkipProviderValidation() {
			_ = db.Close()
			return nil, ErrNoEmbedder
		}
	}

	slogger := logger.Slog()

	var embedding *domainservice.EmbeddingService
	var backfill *domainservice.BackfillService
	if embedder != nil {
		embedding = domainservice.NewEmbeddingService(embedder, reports, findings, slogger)
		backfill = domainservice.NewBackfillService(embedding, reports, findings, slogger,
			domainservice.WithConcurrency(o.config.BackfillConcurrency()))
	}

	resolver := domainservice.NewAccessResolver(users, grants)
	vectors := persistence.NewVectorStore(db)
	engine := domainservice.NewSimilarityEngine(reports, findings, resolver, vectors, slogger)

	return &Client{
		Reports:    appservice.NewReportService(reports, findings, actions, comments, history, embedding, slogger),
		Findings:   appservice.NewFindingService(reports, findings, actions, history, embedding, slogger),
		Access:     appservice.NewAccessService(users, grants),
		Search:     appservice.NewSearchService(engine, o.config.SearchLimit()),
		Backfill:   backfill,
		config:     o.config,
		logger:     logger,
		db:         db,
		embedder:   embedder,
		systemUser: systemUser,
	}, nil
}

// Config returns the effective configuration.
func (c *Client) Config() config.AppConfig { return c.config }

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger { return c.logger }

// DB returns the underlying database handle.
func (c *Client) DB() database.Database { return c.db }

// Embedder returns the configured embedding provider, nil when absent.
func (c *Client) Embedder() search.Embedder { return c.embedder }

// SystemUser returns the built-in user automated writes are attributed to.
func (c *Client) SystemUser() report.User { return c.systemUser }

// EnforceAccess reports whether similarity searches apply access grants.
func (c *Client) EnforceAccess() bool { return c.config.EnforceAccess() }

// Close releases the database connection.
func (c *Client) Close() error {
	return c.db.Close()
}
