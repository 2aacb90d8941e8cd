package v1

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clustertune/reportd"
	"github.com/clustertune/reportd/domain/search"
	"github.com/clustertune/reportd/infrastructure/api/middleware"
)

// BackfillRouter handles embedding backfill endpoints.
type BackfillRouter struct {
	client *reportd.Client
	logger *slog.Logger
}

// NewBackfillRouter creates a new BackfillRouter.
func NewBackfillRouter(client *reportd.Client) *BackfillRouter {
	return &BackfillRouter{
		client: client,
		logger: client.Logger().Slog(),
	}
}

// Routes returns the chi router for backfill endpoints.
func (r *BackfillRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/{kind}", r.Run)

	return router
}

// Run handles POST /api/v1/backfill/{kind}. The run is synchronous; the
// response carries the aggregate counts.
func (r *BackfillRouter) Run(w http.ResponseWriter, req *http.Request) {
	if r.client.Backfill == nil {
		middleware.WriteError(w, req, errors.New("no embedding provider configured"), r.logger)
		return
	}

	kind := parseEntityKind(chi.URLParam(req, "kind"))
	stats, err := r.client.Backfill.Backfill(req.Context(), kind)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, BackfillResponse{
		Kind:      string(kind),
		Attempted: stats.Attempted,
		Succeeded: stats.Succeeded,
		Failed:    stats.Failed,
	})
}

// parseEntityKind accepts both singular and plural path forms.
func parseEntityKind(raw string) search.EntityKind {
	switch raw {
	case "reports":
		return search.KindReport
	case "findings":
		return search.KindFinding
	default:
		return search.EntityKind(raw)
	}
}
