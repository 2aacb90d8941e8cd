package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/clustertune/reportd/domain/report"
	domainservice "github.com/clustertune/reportd/domain/service"
	"github.com/clustertune/reportd/infrastructure/persistence"
	"github.com/clustertune/reportd/internal/testdb"
)

// stubEmbedder returns a fixed unit vector, or fails every call when broken
// is set.
type stubEmbedder struct {
	calls  atomic.Int32
	broken bool
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	s.calls.Add(1)
	if s.broken {
		return nil, errors.New("embedder offline")
	}
	return []float64{1, 0, 0}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, 0, len(texts))
	for _, t := range texts {
		vec, err := s.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, vec)
	}
	return out, nil
}

// testEnv wires the application services against an in-memory database.
type testEnv struct {
	embedder *stubEmbedder
	reports  *persistence.ReportStore
	findings *persistence.FindingStore
	comments *persistence.CommentStore
	actions  *persistence.ActionStore
	history  *persistence.StatusHistoryStore
	users    *persistence.UserStore
	grants   *persistence.AccessGrantStore

	reportSvc  *ReportService
	findingSvc *FindingService
	accessSvc  *AccessService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testdb.New(t)

	env := &testEnv{
		embedder: &stubEmbedder{},
		reports:  persistence.NewReportStore(db),
		findings: persistence.NewFindingStore(db),
		comments: persistence.NewCommentStore(db),
		actions:  persistence.NewActionStore(db),
		history:  persistence.NewStatusHistoryStore(db),
		users:    persistence.NewUserStore(db),
		grants:   persistence.NewAccessGrantStore(db),
	}

	embedding := domainservice.NewEmbeddingService(env.embedder, env.reports, env.findings, nil)
	env.reportSvc = NewReportService(env.reports, env.findings, env.actions, env.comments, env.history, embedding, nil)
	env.findingSvc = NewFindingService(env.reports, env.findings, env.actions, env.history, embedding, nil)
	env.accessSvc = NewAccessService(env.users, env.grants)
	return env
}

func (e *testEnv) createReport(t *testing.T, title string) report.Report {
	t.Helper()
	r, _, err := e.reportSvc.Create(context.Background(), CreateReportRequest{
		ClusterID:  "pg-prod-7",
		Title:      title,
		CustomerID: "cust-1",
		Region:     "eu-west-1",
		CreatedBy:  "user-1",
	})
	if err != nil {
		t.Fatalf("create report %q: %v", title, err)
	}
	return r
}

func (e *testEnv) createFinding(t *testing.T, reportID, title string) report.Finding {
	t.Helper()
	f, _, err := e.findingSvc.Create(context.Background(), CreateFindingRequest{
		ReportID:  reportID,
		Category:  report.CategoryPerformance,
		Severity:  report.SeverityHigh,
		Title:     title,
		CreatedBy: "user-1",
	})
	if err != nil {
		t.Fatalf("create finding %q: %v", title, err)
	}
	return f
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
