package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reportd "github.com/clustertune/reportd"
	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/infrastructure/api"
	v1 "github.com/clustertune/reportd/infrastructure/api/v1"
)

// unitEmbedder always returns the same vector so every entity embeds.
type unitEmbedder struct{}

func (unitEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return []float64{1, 0, 0}, nil
}

func (unitEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{1, 0, 0}
	}
	return out, nil
}

func newTestServer(t *testing.T, apiKeys []string) (*httptest.Server, *reportd.Client) {
	t.Helper()
	client, err := reportd.New(context.Background(),
		reportd.WithSQLite(":memory:"),
		reportd.WithEmbedder(unitEmbedder{}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	apiServer := api.NewAPIServer(client, apiKeys)
	router := apiServer.Router()
	apiServer.MountRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, client
}

func doJSON(t *testing.T, method, url string, body any, decorate func(*http.Request)) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAPIServer_ReportLifecycle(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/reports", v1.CreateReportBody{
		ClusterID:  "pg-prod-7",
		Title:      "Slow queries",
		CustomerID: "cust-1",
		Region:     "eu-west-1",
	}, func(r *http.Request) { r.Header.Set("X-User-ID", "user-1") })
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decode[v1.CreateEntityResponse[v1.ReportResponse]](t, resp)
	assert.True(t, created.EmbeddingGenerated)
	assert.Equal(t, "draft", created.Data.Status)
	assert.Equal(t, "user-1", created.Data.CreatedBy)
	id := created.Data.ID

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/reports/"+id, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[v1.ReportResponse](t, resp)
	assert.Equal(t, "Slow queries", got.Title)
	assert.True(t, got.EmbeddingGenerated)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/reports/"+id+"/status", v1.ChangeStatusBody{
		Status: "published",
		Reason: "reviewed",
	}, func(r *http.Request) { r.Header.Set("X-User-ID", "user-2") })
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/reports/"+id+"/history", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := decode[v1.ListResponse[v1.StatusChangeResponse]](t, resp)
	require.Len(t, history.Data, 1)
	assert.Equal(t, "published", history.Data[0].NewStatus)
	assert.Equal(t, "reviewed", history.Data[0].Reason)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/reports/"+id, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/reports/"+id, nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIServer_UnknownReportIs404(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/reports/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIServer_APIKeyProtection(t *testing.T) {
	srv, _ := newTestServer(t, []string{"secret"})

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/reports", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/reports", nil, func(r *http.Request) {
		r.Header.Set("X-API-Key", "secret")
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/reports", nil, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer secret")
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPIServer_SimilarReports(t *testing.T) {
	srv, client := newTestServer(t, nil)
	sysID := client.SystemUser().ID()

	createPublished := func(title string) string {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/reports", v1.CreateReportBody{
			ClusterID:  "pg-prod-7",
			Title:      title,
			CustomerID: "cust-1",
		}, func(r *http.Request) { r.Header.Set("X-User-ID", sysID) })
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		id := decode[v1.CreateEntityResponse[v1.ReportResponse]](t, resp).Data.ID

		resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/reports/"+id+"/status", v1.ChangeStatusBody{
			Status: "published",
		}, func(r *http.Request) { r.Header.Set("X-User-ID", sysID) })
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return id
	}

	anchor := createPublished("Write latency spikes")
	other := createPublished("Commit latency regression")

	url := fmt.Sprintf("%s/api/v1/reports/%s/similar", srv.URL, anchor)
	resp := doJSON(t, http.MethodGet, url, nil, func(r *http.Request) {
		r.Header.Set("X-User-ID", sysID)
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	results := decode[v1.ListResponse[v1.SimilarityResultResponse]](t, resp)
	require.Len(t, results.Data, 1)
	assert.Equal(t, other, results.Data[0].ID)
	assert.InDelta(t, 1.0, results.Data[0].Similarity, 1e-9)
}

func TestAPIServer_UsersAndGrants(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/users", v1.CreateUserBody{
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  string(report.RoleAnalyst),
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decode[v1.UserResponse](t, resp)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/users/"+user.ID+"/grants", v1.CreateGrantBody{
		CustomerID: "cust-1",
		Level:      string(report.AccessLevelRead),
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/users/"+user.ID+"/grants", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	grants := decode[v1.ListResponse[v1.GrantResponse]](t, resp)
	require.Len(t, grants.Data, 1)
	assert.Equal(t, "cust-1", grants.Data[0].CustomerID)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/users/"+user.ID+"/grants/cust-1", nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAPIServer_Backfill(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/backfill/reports", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := decode[v1.BackfillResponse](t, resp)
	assert.Equal(t, "report", stats.Kind)
	assert.Zero(t, stats.Attempted)
}

func TestAPIServer_BackfillUnknownKind(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/backfill/bogus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
