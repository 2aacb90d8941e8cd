package service

import (
	"context"
	"errors"
	"sync"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/domain/search"
	"github.com/clustertune/reportd/internal/database"
)

// condValue extracts the value of an equality condition from query options.
func condValue(field string, options []repository.Option) (any, bool) {
	q := repository.Build(options...)
	for _, c := range q.Conditions() {
		if c.Field() == field {
			return c.Value(), true
		}
	}
	return nil, false
}

// hasMissingEmbeddingClause reports whether the options include the
// missing-embedding raw filter.
func hasMissingEmbeddingClause(options []repository.Option) bool {
	q := repository.Build(options...)
	for _, c := range q.Conditions() {
		if c.Raw() == "embedding IS NULL" {
			return true
		}
	}
	return false
}

type fakeReportStore struct {
	mu      sync.Mutex
	reports map[string]report.Report
}

func newFakeReportStore(reports ...report.Report) *fakeReportStore {
	s := &fakeReportStore{reports: make(map[string]report.Report)}
	for _, r := range reports {
		s.reports[r.ID()] = r
	}
	return s
}

func (s *fakeReportStore) Create(_ context.Context, r report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID()] = r
	return nil
}

func (s *fakeReportStore) Save(ctx context.Context, r report.Report) error {
	return s.Create(ctx, r)
}

func (s *fakeReportStore) FindOne(_ context.Context, options ...repository.Option) (report.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := condValue("id", options); ok {
		if r, ok := s.reports[id.(string)]; ok {
			return r, nil
		}
	}
	return report.Report{}, database.ErrNotFound
}

func (s *fakeReportStore) Find(_ context.Context, options ...repository.Option) ([]report.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	missingOnly := hasMissingEmbeddingClause(options)
	var out []report.Report
	for _, r := range s.reports {
		if missingOnly && r.HasEmbedding() {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *fakeReportStore) Count(ctx context.Context, options ...repository.Option) (int64, error) {
	found, err := s.Find(ctx, options...)
	return int64(len(found)), err
}

func (s *fakeReportStore) DeleteBy(_ context.Context, options ...repository.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := condValue("id", options); ok {
		delete(s.reports, id.(string))
	}
	return nil
}

func (s *fakeReportStore) UpdateEmbedding(_ context.Context, id string, embedding []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return database.ErrNotFound
	}
	s.reports[id] = r.WithEmbedding(embedding)
	return nil
}

func (s *fakeReportStore) get(id string) report.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports[id]
}

type fakeFindingStore struct {
	mu       sync.Mutex
	findings map[string]report.Finding
}

func newFakeFindingStore(findings ...report.Finding) *fakeFindingStore {
	s := &fakeFindingStore{findings: make(map[string]report.Finding)}
	for _, f := range findings {
		s.findings[f.ID()] = f
	}
	return s
}

func (s *fakeFindingStore) Create(_ context.Context, f report.Finding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findings[f.ID()] = f
	return nil
}

func (s *fakeFindingStore) Save(ctx context.Context, f report.Finding) error {
	return s.Create(ctx, f)
}

func (s *fakeFindingStore) FindOne(_ context.Context, options ...repository.Option) (report.Finding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := condValue("id", options); ok {
		if f, ok := s.findings[id.(string)]; ok {
			return f, nil
		}
	}
	return report.Finding{}, database.ErrNotFound
}

func (s *fakeFindingStore) Find(_ context.Context, options ...repository.Option) ([]report.Finding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	missingOnly := hasMissingEmbeddingClause(options)
	var out []report.Finding
	for _, f := range s.findings {
		if missingOnly && f.HasEmbedding() {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *fakeFindingStore) Count(ctx context.Context, options ...repository.Option) (int64, error) {
	found, err := s.Find(ctx, options...)
	return int64(len(found)), err
}

func (s *fakeFindingStore) DeleteBy(_ context.Context, options ...repository.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := condValue("id", options); ok {
		delete(s.findings, id.(string))
	}
	return nil
}

func (s *fakeFindingStore) UpdateEmbedding(_ context.Context, id string, embedding []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.findings[id]
	if !ok {
		return database.ErrNotFound
	}
	s.findings[id] = f.WithEmbedding(embedding)
	return nil
}

type fakeUserStore struct {
	users map[string]report.User
	err   error
}

func newFakeUserStore(users ...report.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]report.User)}
	for _, u := range users {
		s.users[u.ID()] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, u report.User) error {
	s.users[u.ID()] = u
	return nil
}

func (s *fakeUserStore) FindOne(_ context.Context, options ...repository.Option) (report.User, error) {
	if s.err != nil {
		return report.User{}, s.err
	}
	if id, ok := condValue("id", options); ok {
		if u, ok := s.users[id.(string)]; ok {
			return u, nil
		}
	}
	return report.User{}, database.ErrNotFound
}

func (s *fakeUserStore) Find(context.Context, ...repository.Option) ([]report.User, error) {
	var out []report.User
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeGrantStore struct {
	grants []report.AccessGrant
	err    error
}

func (s *fakeGrantStore) Create(_ context.Context, g report.AccessGrant) error {
	s.grants = append(s.grants, g)
	return nil
}

func (s *fakeGrantStore) Find(_ context.Context, options ...repository.Option) ([]report.AccessGrant, error) {
	if s.err != nil {
		return nil, s.err
	}
	userID, _ := condValue("user_id", options)
	var out []report.AccessGrant
	for _, g := range s.grants {
		if userID == nil || g.UserID() == userID.(string) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *fakeGrantStore) DeleteBy(context.Context, ...repository.Option) error {
	return nil
}

type fakeVectorStore struct {
	mu      sync.Mutex
	queries []search.Query
	results []search.Result
	err     error
}

func (s *fakeVectorStore) Search(_ context.Context, q search.Query) ([]search.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func (s *fakeVectorStore) lastQuery() (search.Query, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return search.Query{}, false
	}
	return s.queries[len(s.queries)-1], true
}

type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
	embed func(text string) ([]float64, error)
}

func (e *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.embed != nil {
		return e.embed(text)
	}
	return []float64{1, 0, 0}, nil
}

func (e *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

var errStoreDown = errors.New("store down")
