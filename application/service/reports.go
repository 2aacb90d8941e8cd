// Package service implements the application-level facades consumed by the
// HTTP API, the MCP server, and the CLI.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	domainservice "github.com/clustertune/reportd/domain/service"
)

// CreateReportRequest carries the fields for a new report.
type CreateReportRequest struct {
	ClusterID      string
	Title          string
	Description    string
	CustomerID     string
	Region         string
	PIIFlag        bool
	ClusterVersion string
	CreatedBy      string
}

// UpdateReportRequest carries the updatable report fields. Nil pointers
// leave the field unchanged.
type UpdateReportRequest struct {
	Title       *string
	Description *string
	Region      *string
	PIIFlag     *bool
}

// ListReportsRequest filters and paginates report listings.
type ListReportsRequest struct {
	ClusterID  string
	CustomerID string
	Status     string
	Limit      int
	Offset     int
}

// ReportService provides report CRUD with status audit trails and
// best-effort embedding generation.
type ReportService struct {
	reports   report.ReportStore
	findings  report.FindingStore
	actions   report.ActionStore
	comments  report.CommentStore
	history   report.StatusHistoryStore
	embedding *domainservice.EmbeddingService
	logger    *slog.Logger
}

// NewReportService creates a report service.
func NewReportService(
	reports report.ReportStore,
	findings report.FindingStore,
	actions report.ActionStore,
	comments report.CommentStore,
	history report.StatusHistoryStore,
	embedding *domainservice.EmbeddingService,
	logger *slog.Logger,
) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		reports:   reports,
		findings:  findings,
		actions:   actions,
		comments:  comments,
		history:   history,
		embedding: embedding,
		logger:    logger,
	}
}

// Create persists a new draft report, then attempts embedding generation as
// a separate best-effort step. The returned flag reports whether an
// embedding was generated; a false value never fails the create.
func (s *ReportService) Create(ctx context.Context, req CreateReportRequest) (report.Report, bool, error) {
	r := report.NewReport(req.ClusterID, req.Title, req.Description, req.CustomerID, req.CreatedBy)
	r = r.WithTenancy(req.CustomerID, req.Region, req.PIIFlag)
	if req.ClusterVersion != "" {
		r = r.WithClusterVersion(req.ClusterVersion)
	}

	if err := s.reports.Create(ctx, r); err != nil {
		return report.Report{}, false, fmt.Errorf("create report: %w", err)
	}

	embedded := false
	if s.embedding != nil {
		embedded = s.embedding.TryGenerateForReport(ctx, r)
	}
	return r, embedded, nil
}

// Get retrieves one report by id.
func (s *ReportService) Get(ctx context.Context, id string) (report.Report, error) {
	return s.reports.FindOne(ctx, repository.WithID(id))
}

// List retrieves reports matching the request filters, newest first.
func (s *ReportService) List(ctx context.Context, req ListReportsRequest) ([]report.Report, error) {
	options := []repository.Option{repository.WithOrderDesc("created_at")}
	if req.ClusterID != "" {
		options = append(options, repository.WithClusterID(req.ClusterID))
	}
	if req.CustomerID != "" {
		options = append(options, repository.WithCustomerID(req.CustomerID))
	}
	if req.Status != "" {
		options = append(options, repository.WithStatus(req.Status))
	}
	if req.Limit > 0 {
		options = append(options, repository.WithLimit(req.Limit))
	}
	if req.Offset > 0 {
		options = append(options, repository.WithOffset(req.Offset))
	}
	return s.reports.Find(ctx, options...)
}

// Update edits a report's fields and attempts embedding regeneration when
// text fields changed. Regeneration is best-effort like on create.
func (s *ReportService) Update(ctx context.Context, id string, req UpdateReportRequest) (report.Report, bool, error) {
	r, err := s.reports.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return report.Report{}, false, err
	}

	textChanged := false
	if req.Title != nil && *req.Title != r.Title() {
		r = r.WithTitle(*req.Title)
		textChanged = true
	}
	if req.Description != nil && *req.Description != r.Description() {
		r = r.WithDescription(*req.Description)
		textChanged = true
	}
	if req.Region != nil || req.PIIFlag != nil {
		region := r.Region()
		pii := r.PIIFlag()
		if req.Region != nil {
			region = *req.Region
		}
		if req.PIIFlag != nil {
			pii = *req.PIIFlag
		}
		r = r.WithTenancy(r.CustomerID(), region, pii)
	}

	if err := s.reports.Save(ctx, r); err != nil {
		return report.Report{}, false, fmt.Errorf("update report %s: %w", id, err)
	}

	embedded := false
	if textChanged && s.embedding != nil {
		embedded = s.embedding.TryGenerateForReport(ctx, r)
	}
	return r, embedded, nil
}

// ChangeStatus transitions a report's lifecycle status and appends an
// audit record.
func (s *ReportService) ChangeStatus(ctx context.Context, id string, status report.Status, changedBy, reason string) (report.Report, error) {
	if !status.Valid() {
		return report.Report{}, fmt.Errorf("invalid report status %q", status)
	}

	r, err := s.reports.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return report.Report{}, err
	}

	old := r.Status()
	r = r.WithStatus(status, changedBy)
	if err := s.reports.Save(ctx, r); err != nil {
		return report.Report{}, fmt.Errorf("change report status: %w", err)
	}

	change := report.NewStatusChange(report.EntityKindReport, id, string(old), string(status), changedBy, reason)
	if err := s.history.Append(ctx, change); err != nil {
		s.logger.WarnContext(ctx, "failed to record status change",
			"report_id", id, "error", err)
	}
	return r, nil
}

// Delete removes a report and its dependent rows: findings, the findings'
// recommended actions, and comments. There is no database-level cascade,
// so the dependents are deleted here, deepest first.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	if _, err := s.reports.FindOne(ctx, repository.WithID(id)); err != nil {
		return err
	}

	findings, err := s.findings.Find(ctx, repository.WithReportID(id))
	if err != nil {
		return fmt.Errorf("list report findings: %w", err)
	}
	if len(findings) > 0 {
		ids := make([]string, len(findings))
		for i, f := range findings {
			ids[i] = f.ID()
		}
		if err := s.actions.DeleteBy(ctx, repository.WithFindingIDIn(ids)); err != nil {
			return fmt.Errorf("delete finding actions: %w", err)
		}
	}

	if err := s.findings.DeleteBy(ctx, repository.WithReportID(id)); err != nil {
		return fmt.Errorf("delete report findings: %w", err)
	}
	if err := s.comments.DeleteBy(ctx, repository.WithReportID(id)); err != nil {
		return fmt.Errorf("delete report comments: %w", err)
	}
	if err := s.reports.DeleteBy(ctx, repository.WithID(id)); err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	return nil
}

// History returns the status audit trail for a report, oldest first.
func (s *ReportService) History(ctx context.Context, id string) ([]report.StatusChange, error) {
	return s.history.Find(ctx,
		repository.WithCondition("entity_kind", string(report.EntityKindReport)),
		repository.WithCondition("entity_id", id),
		repository.WithOrderAsc("created_at"),
	)
}

// AddComment attaches a comment to a report.
func (s *ReportService) AddComment(ctx context.Context, reportID, parentID, authorID, content string) (report.Comment, error) {
	if _, err := s.reports.FindOne(ctx, repository.WithID(reportID)); err != nil {
		return report.Comment{}, err
	}
	c := report.NewComment(reportID, parentID, authorID, content)
	if err := s.comments.Create(ctx, c); err != nil {
		return report.Comment{}, fmt.Errorf("add comment: %w", err)
	}
	return c, nil
}

// Comments lists a report's comments, oldest first.
func (s *ReportService) Comments(ctx context.Context, reportID string) ([]report.Comment, error) {
	return s.comments.Find(ctx,
		repository.WithReportID(reportID),
		repository.WithOrderAsc("created_at"),
	)
}
