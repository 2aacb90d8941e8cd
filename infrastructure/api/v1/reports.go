package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/clustertune/reportd"
	appservice "github.com/clustertune/reportd/application/service"
	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/search"
	"github.com/clustertune/reportd/infrastructure/api/middleware"
)

// ReportsRouter handles report API endpoints.
type ReportsRouter struct {
	client *reportd.Client
	logger *slog.Logger
}

// NewReportsRouter creates a new ReportsRouter.
func NewReportsRouter(client *reportd.Client) *ReportsRouter {
	return &ReportsRouter{
		client: client,
		logger: client.Logger().Slog(),
	}
}

// Routes returns the chi router for report endpoints.
func (r *ReportsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Create)
	router.Get("/", r.List)
	router.Get("/{id}", r.Get)
	router.Patch("/{id}", r.Update)
	router.Delete("/{id}", r.Delete)
	router.Post("/{id}/status", r.ChangeStatus)
	router.Get("/{id}/history", r.History)
	router.Post("/{id}/comments", r.AddComment)
	router.Get("/{id}/comments", r.Comments)
	router.Post("/{id}/findings", r.CreateFinding)
	router.Get("/{id}/findings", r.Findings)
	router.Get("/{id}/similar", r.Similar)

	return router
}

// Create handles POST /api/v1/reports.
func (r *ReportsRouter) Create(w http.ResponseWriter, req *http.Request) {
	var body CreateReportBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	created, embedded, err := r.client.Reports.Create(req.Context(), appservice.CreateReportRequest{
		ClusterID:      body.ClusterID,
		Title:          body.Title,
		Description:    body.Description,
		CustomerID:     body.CustomerID,
		Region:         body.Region,
		PIIFlag:        body.PIIFlag,
		ClusterVersion: body.ClusterVersion,
		CreatedBy:      middleware.CallerID(req),
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, CreateEntityResponse[ReportResponse]{
		Data:               newReportResponse(created),
		EmbeddingGenerated: embedded,
	})
}

// List handles GET /api/v1/reports.
func (r *ReportsRouter) List(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	listReq := appservice.ListReportsRequest{
		ClusterID:  q.Get("cluster_id"),
		CustomerID: q.Get("customer_id"),
		Status:     q.Get("status"),
		Limit:      parseIntParam(q.Get("limit")),
		Offset:     parseIntParam(q.Get("offset")),
	}

	reports, err := r.client.Reports.List(req.Context(), listReq)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	out := make([]ReportResponse, len(reports))
	for i, rep := range reports {
		out[i] = newReportResponse(rep)
	}
	middleware.WriteJSON(w, http.StatusOK, ListResponse[ReportResponse]{Data: out})
}

// Get handles GET /api/v1/reports/{id}.
func (r *ReportsRouter) Get(w http.ResponseWriter, req *http.Request) {
	rep, err := r.client.Reports.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, newReportResponse(rep))
}

// Update handles PATCH /api/v1/reports/{id}.
func (r *ReportsRouter) Update(w http.ResponseWriter, req *http.Request) {
	var body UpdateReportBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	updated, embedded, err := r.client.Reports.Update(req.Context(), chi.URLParam(req, "id"), appservice.UpdateReportRequest{
		Title:       body.Title,
		Description: body.Description,
		Region:      body.Region,
		PIIFlag:     body.PIIFlag,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, CreateEntityResponse[ReportResponse]{
		Data:               newReportResponse(updated),
		EmbeddingGenerated: embedded,
	})
}

// Delete handles DELETE /api/v1/reports/{id}.
func (r *ReportsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	if err := r.client.Reports.Delete(req.Context(), chi.URLParam(req, "id")); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangeStatus handles POST /api/v1/reports/{id}/status.
func (r *ReportsRouter) ChangeStatus(w http.ResponseWriter, req *http.Request) {
	var body ChangeStatusBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	rep, err := r.client.Reports.ChangeStatus(req.Context(), chi.URLParam(req, "id"),
		report.Status(body.Status), middleware.CallerID(req), body.Reason)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, newReportResponse(rep))
}

// History handles GET /api/v1/reports/{id}/history.
func (r *ReportsRouter) History(w http.ResponseWriter, req *http.Request) {
	changes, err := r.client.Reports.History(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	out := make([]StatusChangeResponse, len(changes))
	for i, c := range changes {
		out[i] = newStatusChangeResponse(c)
	}
	middleware.WriteJSON(w, http.StatusOK, ListResponse[StatusChangeResponse]{Data: out})
}

// AddComment handles POST /api/v1/reports/{id}/comments.
func (r *ReportsRouter) AddComment(w http.ResponseWriter, req *http.Request) {
	var body CreateCommentBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	c, err := r.client.Reports.AddComment(req.Context(), chi.URLParam(req, "id"),
		body.ParentID, middleware.CallerID(req), body.Content)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, newCommentResponse(c))
}

// Comments handles GET /api/v1/reports/{id}/comments.
func (r *ReportsRouter) Comments(w http.ResponseWriter, req *http.Request) {
	comments, err := r.client.Reports.Comments(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	out := make([]CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = newCommentResponse(c)
	}
	middleware.WriteJSON(w, http.StatusOK, ListResponse[CommentResponse]{Data: out})
}

// CreateFinding handles POST /api/v1/reports/{id}/findings.
func (r *ReportsRouter) CreateFinding(w http.ResponseWriter, req *http.Request) {
	var body CreateFindingBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	f, embedded, err := r.client.Findings.Create(req.Context(), appservice.CreateFindingRequest{
		ReportID:    chi.URLParam(req, "id"),
		Category:    report.Category(body.Category),
		Severity:    report.Severity(body.Severity),
		Title:       body.Title,
		Description: body.Description,
		Tags:        body.Tags,
		CreatedBy:   middleware.CallerID(req),
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, CreateEntityResponse[FindingResponse]{
		Data:               newFindingResponse(f),
		EmbeddingGenerated: embedded,
	})
}

// Findings handles GET /api/v1/reports/{id}/findings.
func (r *ReportsRouter) Findings(w http.ResponseWriter, req *http.Request) {
	findings, err := r.client.Findings.ListByReport(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	out := make([]FindingResponse, len(findings))
	for i, f := range findings {
		out[i] = newFindingResponse(f)
	}
	middleware.WriteJSON(w, http.StatusOK, ListResponse[FindingResponse]{Data: out})
}

// Similar handles GET /api/v1/reports/{id}/similar.
func (r *ReportsRouter) Similar(w http.ResponseWriter, req *http.Request) {
	results, err := r.client.Search.SimilarTo(req.Context(), appservice.SimilarRequest{
		Kind:          search.KindReport,
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

// parseIntParam parses a positive integer query parameter, 0 when absent
// or malformed.
func parseIntParam(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseFilters builds similarity filters from query parameters. Statuses
// accept a comma-separated list.
func parseFilters(req *http.Request) search.Filters {
	q := req.URL.Query()
	var options []search.FilterOption

	if raw := q.Get("status"); raw != "" {
		statuses := strings.Split(raw, ",")
		for i := range statuses {
			statuses[i] = strings.TrimSpace(statuses[i])
		}
		options = append(options, search.WithStatuses(statuses...))
	}
	if region := q.Get("region"); region != "" {
		options = append(options, search.WithRegion(region))
	}
	if category := q.Get("category"); category != "" {
		options = append(options, search.WithCategory(category))
	}
	if severity := q.Get("severity"); severity != "" {
		options = append(options, search.WithSeverity(severity))
	}

	return search.NewFilters(options...)
}
