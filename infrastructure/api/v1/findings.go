package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clustertune/reportd"
	appservice "github.com/clustertune/reportd/application/service"
	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/search"
	"github.com/clustertune/reportd/infrastructure/api/middleware"
)

// FindingsRouter handles finding and action API endpoints.
type FindingsRouter struct {
	client *reportd.Client
	logger *slog.Logger
}

// NewFindingsRouter creates a new FindingsRouter.
func NewFindingsRouter(client *reportd.Client) *FindingsRouter {
	return &FindingsRouter{
		client: client,
		logger: client.Logger().Slog(),
	}
}

// Routes returns the chi router for finding endpoints.
func (r *FindingsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", r.Get)
	router.Delete("/{id}", r.Delete)
	router.Post("/{id}/status", r.ChangeStatus)
	router.Post("/{id}/actions", r.CreateAction)
	router.Get("/{id}/actions", r.Actions)
	router.Get("/{id}/similar", r.Similar)

	return router
}

// Get handles GET /api/v1/findings/{id}.
func (r *FindingsRouter) Get(w http.ResponseWriter, req *http.Request) {
	f, err := r.client.Findings.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, newFindingResponse(f))
}

// Delete handles DELETE /api/v1/findings/{id}.
func (r *FindingsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	if err := r.client.Findings.Delete(req.Context(), chi.URLParam(req, "id")); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangeStatus handles POST /api/v1/findings/{id}/status.
func (r *FindingsRouter) ChangeStatus(w http.ResponseWriter, req *http.Request) {
	var body ChangeStatusBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	f, err := r.client.Findings.ChangeStatus(req.Context(), chi.URLParam(req, "id"),
		report.FindingStatus(body.Status), middleware.CallerID(req), body.Reason)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, newFindingResponse(f))
}

// CreateAction handles POST /api/v1/findings/{id}/actions.
func (r *FindingsRouter) CreateAction(w http.ResponseWriter, req *http.Request) {
	var body CreateActionBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	a, err := r.client.Findings.CreateAction(req.Context(), appservice.CreateActionRequest{
		FindingID:   chi.URLParam(req, "id"),
		Title:       body.Title,
		Description: body.Description,
		ActionType:  report.ActionType(body.ActionType),
		Priority:    body.Priority,
		CreatedBy:   middleware.CallerID(req),
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, newActionResponse(a))
}

// Actions handles GET /api/v1/findings/{id}/actions.
func (r *FindingsRouter) Actions(w http.ResponseWriter, req *http.Request) {
	actions, err := r.client.Findings.Actions(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	out := make([]ActionResponse, len(actions))
	for i, a := range actions {
		out[i] = newActionResponse(a)
	}
	middleware.WriteJSON(w, http.StatusOK, ListResponse[ActionResponse]{Data: out})
}

// Similar handles GET /api/v1/findings/{id}/similar.
func (r *FindingsRouter) Similar(w http.ResponseWriter, req *http.Request) {
	results, err := r.client.Search.SimilarTo(req.Context(), appservice.SimilarRequest{
		Kind:          search.KindFinding,
		EntityID:      chi.URLParam(req, "id"),
		Limit:         parseIntParam(req.URL.Query().Get("limit")),
		CallerID:      middleware.CallerID(req),
		EnforceAccess: r.client.EnforceAccess(),
		Filters:       parseFilters(req),
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, ListResponse[SimilarityResultResponse]{
		Data: newSimilarityResults(results),
	})
}

// ActionsRouter handles the action endpoints not nested under a finding.
type ActionsRouter struct {
	client *reportd.Client
	logger *slog.Logger
}

// NewActionsRouter creates a new ActionsRouter.
func NewActionsRouter(client *reportd.Client) *ActionsRouter {
	return &ActionsRouter{
		client: client,
		logger: client.Logger().Slog(),
	}
}

// Routes returns the chi router for action endpoints.
func (r *ActionsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/{id}/status", r.ChangeStatus)

	return router
}

// ChangeStatus handles POST /api/v1/actions/{id}/status.
func (r *ActionsRouter) ChangeStatus(w http.ResponseWriter, req *http.Request) {
	var body ChangeStatusBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	a, err := r.client.Findings.ChangeActionStatus(req.Context(), chi.URLParam(req, "id"),
		report.ActionStatus(body.Status), middleware.CallerID(req), body.Notes)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, newActionResponse(a))
}
