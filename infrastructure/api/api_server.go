package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"

	"github.com/clustertune/reportd"
	apimiddleware "github.com/clustertune/reportd/infrastructure/api/middleware"
	v1 "github.com/clustertune/reportd/infrastructure/api/v1"
	mcpinternal "github.com/clustertune/reportd/internal/mcp"
)

// APIServer provides an HTTP API backed by a reportd Client.
type APIServer struct {
	client       *reportd.Client
	apiKeys      []string
	server       *Server
	router       chi.Router
	routerCalled bool
	logger       *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given reportd Client.
// apiKeys protects the whole API: with at least one key configured, every
// request must present a valid key. With none, authentication is disabled.
func NewAPIServer(client *reportd.Client, apiKeys []string) *APIServer {
	return &APIServer{
		client:  client,
		apiKeys: apiKeys,
		logger:  client.Logger().Slog(),
	}
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call
// MountRoutes(). If not called, ListenAndServe creates a default router
// with all standard routes.
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up all v1 API routes on the router. Call this after
// adding any custom middleware via Router().Use().
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

// mountRoutes wires up all v1 API routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-API-Key", "X-User-ID"},
		MaxAge:         300,
	}))
	router.Use(apimiddleware.Logging(a.logger))

	reportsRouter := v1.NewReportsRouter(c)
	findingsRouter := v1.NewFindingsRouter(c)
	actionsRouter := v1.NewActionsRouter(c)
	usersRouter := v1.NewUsersRouter(c)
	backfillRouter := v1.NewBackfillRouter(c)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Use(apimiddleware.APIKeyAuth(a.apiKeys, a.logger))

		r.Mount("/reports", reportsRouter.Routes())
		r.Mount("/findings", findingsRouter.Routes())
		r.Mount("/actions", actionsRouter.Routes())
		r.Mount("/users", usersRouter.Routes())
		r.Mount("/backfill", backfillRouter.Routes())
	})

	// MCP (Model Context Protocol) endpoint. No timeout middleware: MCP
	// uses streaming responses and manages its own session state via
	// response headers, which is incompatible with chi's Timeout
	// middleware wrapping the ResponseWriter.
	mcpSrv := mcpinternal.NewServer(c.Search, c.Reports, c.EnforceAccess(), "1.0.0", a.logger)
	httpHandler := server.NewStreamableHTTPServer(mcpSrv.MCPServer())
	router.Mount("/mcp", httpHandler)
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server

	if a.routerCalled && a.router != nil {
		server.Router().Mount("/", a.router)
	} else {
		a.mountRoutes(server.Router())
	}

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
