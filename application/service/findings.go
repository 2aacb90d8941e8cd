package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	domainservice "github.com/clustertune/reportd/domain/service"
)

// CreateFindingRequest carries the fields for a new finding.
type CreateFindingRequest struct {
	ReportID    string
	Category    report.Category
	Severity    report.Severity
	Title       string
	Description string
	Tags        []string
	CreatedBy   string
}

// CreateActionRequest carries the fields for a new recommended action.
type CreateActionRequest struct {
	FindingID   string
	Title       string
	Description string
	ActionType  report.ActionType
	Priority    int
	CreatedBy   string
}

// FindingService provides finding and action CRUD with audit trails and
// best-effort embedding generation.
type FindingService struct {
	reports   report.ReportStore
	findings  report.FindingStore
	actions   report.ActionStore
	history   report.StatusHistoryStore
	embedding *domainservice.EmbeddingService
	logger    *slog.Logger
}

// NewFindingService creates a finding service.
func NewFindingService(
	reports report.ReportStore,
	findings report.FindingStore,
	actions report.ActionStore,
	history report.StatusHistoryStore,
	embedding *domainservice.EmbeddingService,
	logger *slog.Logger,
) *FindingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FindingService{
		reports:   reports,
		findings:  findings,
		actions:   actions,
		history:   history,
		embedding: embedding,
		logger:    logger,
	}
}

// Create persists a new finding under its parent report, inheriting the
// report's tenancy, then attempts embedding generation best-effort.
func (s *FindingService) Create(ctx context.Context, req CreateFindingRequest) (report.Finding, bool, error) {
	if !req.Category.Valid() {
		return report.Finding{}, false, fmt.Errorf("invalid finding category %q", req.Category)
	}
	if !req.Severity.Valid() {
		return report.Finding{}, false, fmt.Errorf("invalid finding severity %q", req.Severity)
	}

	parent, err := s.reports.FindOne(ctx, repository.WithID(req.ReportID))
	if err != nil {
		return report.Finding{}, false, err
	}

	f := report.NewFinding(parent, req.Category, req.Severity, req.Title, req.Description, req.CreatedBy)
	if len(req.Tags) > 0 {
		f = f.WithTags(req.Tags)
	}

	if err := s.findings.Create(ctx, f); err != nil {
		return report.Finding{}, false, fmt.Errorf("create finding: %w", err)
	}

	embedded := false
	if s.embedding != nil {
		embedded = s.embedding.TryGenerateForFinding(ctx, f)
	}
	return f, embedded, nil
}

// Get retrieves one finding by id.
func (s *FindingService) Get(ctx context.Context, id string) (report.Finding, error) {
	return s.findings.FindOne(ctx, repository.WithID(id))
}

// ListByReport lists a report's findings, newest first.
func (s *FindingService) ListByReport(ctx context.Context, reportID string) ([]report.Finding, error) {
	return s.findings.Find(ctx,
		repository.WithReportID(reportID),
		repository.WithOrderDesc("created_at"),
	)
}

// ChangeStatus transitions a finding's triage status and appends an audit
// record.
func (s *FindingService) ChangeStatus(ctx context.Context, id string, status report.FindingStatus, changedBy, reason string) (report.Finding, error) {
	if !status.Valid() {
		return report.Finding{}, fmt.Errorf("invalid finding status %q", status)
	}

	f, err := s.findings.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return report.Finding{}, err
	}

	old := f.Status()
	f = f.WithStatus(status)
	if err := s.findings.Save(ctx, f); err != nil {
		return report.Finding{}, fmt.Errorf("change finding status: %w", err)
	}

	change := report.NewStatusChange(report.EntityKindFinding, id, string(old), string(status), changedBy, reason)
	if err := s.history.Append(ctx, change); err != nil {
		s.logger.WarnContext(ctx, "failed to record status change",
			"finding_id", id, "error", err)
	}
	return f, nil
}

// Delete removes a finding and its actions.
func (s *FindingService) Delete(ctx context.Context, id string) error {
	if _, err := s.findings.FindOne(ctx, repository.WithID(id)); err != nil {
		return err
	}
	if err := s.actions.DeleteBy(ctx, repository.WithFindingID(id)); err != nil {
		return fmt.Errorf("delete finding actions: %w", err)
	}
	if err := s.findings.DeleteBy(ctx, repository.WithID(id)); err != nil {
		return fmt.Errorf("delete finding %s: %w", id, err)
	}
	return nil
}

// CreateAction attaches a recommended action to a finding.
func (s *FindingService) CreateAction(ctx context.Context, req CreateActionRequest) (report.Action, error) {
	if !req.ActionType.Valid() {
		return report.Action{}, fmt.Errorf("invalid action type %q", req.ActionType)
	}
	if _, err := s.findings.FindOne(ctx, repository.WithID(req.FindingID)); err != nil {
		return report.Action{}, err
	}

	a := report.NewAction(req.FindingID, req.Title, req.Description, req.ActionType, req.Priority, req.CreatedBy)
	if err := s.actions.Create(ctx, a); err != nil {
		return report.Action{}, fmt.Errorf("create action: %w", err)
	}
	return a, nil
}

// Actions lists a finding's recommended actions by priority.
func (s *FindingService) Actions(ctx context.Context, findingID string) ([]report.Action, error) {
	return s.actions.Find(ctx,
		repository.WithFindingID(findingID),
		repository.WithOrderAsc("priority"),
	)
}

// ChangeActionStatus transitions an action's execution status and appends
// an audit record. Completion notes are stored when given.
func (s *FindingService) ChangeActionStatus(ctx context.Context, id string, status report.ActionStatus, changedBy, notes string) (report.Action, error) {
	if !status.Valid() {
		return report.Action{}, fmt.Errorf("invalid action status %q", status)
	}

	a, err := s.actions.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return report.Action{}, err
	}

	old := a.Status()
	a = a.WithStatus(status, changedBy)
	if notes != "" {
		a = a.WithImplementationNotes(notes)
	}
	if err := s.actions.Save(ctx, a); err != nil {
		return report.Action{}, fmt.Errorf("change action status: %w", err)
	}

	change := report.NewStatusChange(report.EntityKindAction, id, string(old), string(status), changedBy, "")
	if err := s.history.Append(ctx, change); err != nil {
		s.logger.WarnContext(ctx, "failed to record status change",
			"action_id", id, "error", err)
	}
	return a, nil
}
