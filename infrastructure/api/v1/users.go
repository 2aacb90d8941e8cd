package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clustertune/reportd"
	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/infrastructure/api/middleware"
)

// UsersRouter handles user and access grant API endpoints.
type UsersRouter struct {
	client *reportd.Client
	logger *slog.Logger
}

// NewUsersRouter creates a new UsersRouter.
func NewUsersRouter(client *reportd.Client) *UsersRouter {
	return &UsersRouter{
		client: client,
		logger: client.Logger().Slog(),
	}
}

// Routes returns the chi router for user endpoints.
func (r *UsersRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Create)
	router.Get("/{id}", r.Get)
	router.Post("/{id}/grants", r.Grant)
	router.Get("/{id}/grants", r.Grants)
	router.Delete("/{id}/grants/{customerID}", r.Revoke)

	return router
}

// Create handles POST /api/v1/users.
func (r *UsersRouter) Create(w http.ResponseWriter, req *http.Request) {
	var body CreateUserBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	u, err := r.client.Access.CreateUser(req.Context(), body.Name, body.Email, report.Role(body.Role))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, newUserResponse(u))
}

// Get handles GET /api/v1/users/{id}.
func (r *UsersRouter) Get(w http.ResponseWriter, req *http.Request) {
	u, err := r.client.Access.GetUser(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, newUserResponse(u))
}

// Grant handles POST /api/v1/users/{id}/grants.
func (r *UsersRouter) Grant(w http.ResponseWriter, req *http.Request) {
	var body CreateGrantBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	g, err := r.client.Access.Grant(req.Context(), chi.URLParam(req, "id"),
		body.CustomerID, report.AccessLevel(body.Level), middleware.CallerID(req))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, newGrantResponse(g))
}

// Grants handles GET /api/v1/users/{id}/grants.
func (r *UsersRouter) Grants(w http.ResponseWriter, req *http.Request) {
	grants, err := r.client.Access.Grants(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	out := make([]GrantResponse, len(grants))
	for i, g := range grants {
		out[i] = newGrantResponse(g)
	}
	middleware.WriteJSON(w, http.StatusOK, ListResponse[GrantResponse]{Data: out})
}

// Revoke handles DELETE /api/v1/users/{id}/grants/{customerID}.
func (r *UsersRouter) Revoke(w http.ResponseWriter, req *http.Request) {
	err := r.client.Access.Revoke(req.Context(),
		chi.URLParam(req, "id"), chi.URLParam(req, "customerID"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
