// Package v1 implements the v1 REST API handlers.
package v1

import (
	"time"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/search"
)

// ReportResponse is the wire form of a report. The embedding itself is
// never exposed; only its presence is.
type ReportResponse struct {
	ID                 string    `json:"id"`
	ClusterID          string    `json:"cluster_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	Status             string    `json:"status"`
	CustomerID         string    `json:"customer_id"`
	Region             string    `json:"region,omitempty"`
	PIIFlag            bool      `json:"pii_flag"`
	ClusterVersion     string    `json:"cluster_version,omitempty"`
	EmbeddingGenerated bool      `json:"embedding_generated"`
	Version            int       `json:"version"`
	CreatedBy          string    `json:"created_by,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func newReportResponse(r report.Report) ReportResponse {
	return ReportResponse{
		ID:                 r.ID(),
		ClusterID:          r.ClusterID(),
		Title:              r.Title(),
		Description:        r.Description(),
		Status:             string(r.Status()),
		CustomerID:         r.CustomerID(),
		Region:             r.Region(),
		PIIFlag:            r.PIIFlag(),
		ClusterVersion:     r.ClusterVersion(),
		EmbeddingGenerated: r.HasEmbedding(),
		Version:            r.Version(),
		CreatedBy:          r.CreatedBy(),
		CreatedAt:          r.CreatedAt(),
		UpdatedAt:          r.UpdatedAt(),
	}
}

// FindingResponse is the wire form of a finding.
type FindingResponse struct {
	ID                 string    `json:"id"`
	ReportID           string    `json:"report_id"`
	Category           string    `json:"category"`
	Severity           string    `json:"severity"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	Status             string    `json:"status"`
	Tags               []string  `json:"tags,omitempty"`
	CustomerID         string    `json:"customer_id"`
	Region             string    `json:"region,omitempty"`
	PIIFlag            bool      `json:"pii_flag"`
	EmbeddingGenerated bool      `json:"embedding_generated"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func newFindingResponse(f report.Finding) FindingResponse {
	return FindingResponse{
		ID:                 f.ID(),
		ReportID:           f.ReportID(),
		Category:           string(f.Category()),
		Severity:           string(f.Severity()),
		Title:              f.Title(),
		Description:        f.Description(),
		Status:             string(f.Status()),
		Tags:               f.Tags(),
		CustomerID:         f.CustomerID(),
		Region:             f.Region(),
		PIIFlag:            f.PIIFlag(),
		EmbeddingGenerated: f.HasEmbedding(),
		CreatedAt:          f.CreatedAt(),
		UpdatedAt:          f.UpdatedAt(),
	}
}

// ActionResponse is the wire form of a recommended action.
type ActionResponse struct {
	ID                  string     `json:"id"`
	FindingID           string     `json:"finding_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	ActionType          string     `json:"action_type"`
	Priority            int        `json:"priority"`
	Status              string     `json:"status"`
	DueDate             *time.Time `json:"due_date,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	ImplementationNotes string     `json:"implementation_notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

func newActionResponse(a report.Action) ActionResponse {
	resp := ActionResponse{
		ID:                  a.ID(),
		FindingID:           a.FindingID(),
		Title:               a.Title(),
		Description:         a.Description(),
		ActionType:          string(a.Type()),
		Priority:            a.Priority(),
		Status:              string(a.Status()),
		ImplementationNotes: a.ImplementationNotes(),
		CreatedAt:           a.CreatedAt(),
	}
	if !a.DueDate().IsZero() {
		due := a.DueDate()
		resp.DueDate = &due
	}
	if !a.CompletedAt().IsZero() {
		done := a.CompletedAt()
		resp.CompletedAt = &done
	}
	return resp
}

// CommentResponse is the wire form of a comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	ReportID  string    `json:"report_id"`
	ParentID  string    `json:"parent_id,omitempty"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newCommentResponse(c report.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID(),
		ReportID:  c.ReportID(),
		ParentID:  c.ParentID(),
		AuthorID:  c.AuthorID(),
		Content:   c.Content(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// StatusChangeResponse is the wire form of a status history record.
type StatusChangeResponse struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entity_id"`
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newStatusChangeResponse(s report.StatusChange) StatusChangeResponse {
	return StatusChangeResponse{
		ID:        s.ID(),
		EntityID:  s.EntityID(),
		OldStatus: s.OldStatus(),
		NewStatus: s.NewStatus(),
		ChangedBy: s.ChangedBy(),
		Reason:    s.Reason(),
		CreatedAt: s.CreatedAt(),
	}
}

// UserResponse is the wire form of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u report.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Role:      string(u.Role()),
		CreatedAt: u.CreatedAt(),
	}
}

// GrantResponse is the wire form of an access grant.
type GrantResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CustomerID string    `json:"customer_id"`
	Level      string    `json:"level"`
	GrantedBy  string    `json:"granted_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func newGrantResponse(g report.AccessGrant) GrantResponse {
	return GrantResponse{
		ID:         g.ID(),
		UserID:     g.UserID(),
		CustomerID: g.CustomerID(),
		Level:      string(g.Level()),
		GrantedBy:  g.GrantedBy(),
		CreatedAt:  g.CreatedAt(),
	}
}

// SimilarityResultResponse is one ranked similarity candidate. Both the
// raw distance and the derived score are reported.
type SimilarityResultResponse struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	CustomerID string  `json:"customer_id"`
	Distance   float64 `json:"distance"`
	Similarity float64 `json:"similarity"`
}

func newSimilarityResults(results []search.Result) []SimilarityResultResponse {
	out := make([]SimilarityResultResponse, len(results))
	for i, res := range results {
		out[i] = SimilarityResultResponse{
			ID:         res.ID(),
			Kind:       string(res.Kind()),
			Title:      res.Title(),
			Status:     res.Status(),
			CustomerID: res.CustomerID(),
			Distance:   res.Distance(),
			Similarity: res.Similarity(),
		}
	}
	return out
}

// CreateReportBody is the request body for creating a report.
type CreateReportBody struct {
	ClusterID      string `json:"cluster_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	CustomerID     string `json:"customer_id"`
	Region         string `json:"region"`
	PIIFlag        bool   `json:"pii_flag"`
	ClusterVersion string `json:"cluster_version"`
}

// UpdateReportBody is the request body for editing a report.
type UpdateReportBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Region      *string `json:"region"`
	PIIFlag     *bool   `json:"pii_flag"`
}

// ChangeStatusBody is the request body for status transitions.
type ChangeStatusBody struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// CreateFindingBody is the request body for creating a finding.
type CreateFindingBody struct {
	Category    string   `json:"category"`
	Severity    string   `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// CreateActionBody is the request body for creating an action.
type CreateActionBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionType  string `json:"action_type"`
	Priority    int    `json:"priority"`
}

// CreateCommentBody is the request body for creating a comment.
type CreateCommentBody struct {
	ParentID string `json:"parent_id"`
	Content  string `json:"content"`
}

// CreateUserBody is the request body for creating a user.
type CreateUserBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CreateGrantBody is the request body for granting access.
type CreateGrantBody struct {
	CustomerID string `json:"customer_id"`
	Level      string `json:"level"`
}

// CreateEntityResponse wraps an entity create result with the outcome of
// the best-effort embedding generation step.
type CreateEntityResponse[T any] struct {
	Data               T    `json:"data"`
	EmbeddingGenerated bool `json:"embedding_generated"`
}

// ListResponse wraps list results.
type ListResponse[T any] struct {
	Data []T `json:"data"`
}

// BackfillResponse reports the aggregate counts of a backfill run.
type BackfillResponse struct {
	Kind      string `json:"kind"`
	Attempted int    `json:"attempted"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}
