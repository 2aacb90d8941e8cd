// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	appservice "github.com/clustertune/reportd/application/service"
	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/search"
)

// SimilaritySearcher provides similarity lookups for MCP tools.
type SimilaritySearcher interface {
	SimilarTo(ctx context.Context, req appservice.SimilarRequest) ([]search.Result, error)
}

// ReportLookup provides report retrieval by id for MCP tools.
type ReportLookup interface {
	Get(ctx context.Context, id string) (report.Report, error)
}

// Server wraps the MCP server with reportd-specific tools.
type Server struct {
	mcpServer     *server.MCPServer
	searchService SimilaritySearcher
	reports       ReportLookup
	enforceAccess bool
	logger        *slog.Logger
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(searchService SimilaritySearcher, reports ReportLookup, enforceAccess bool, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		searchService: searchService,
		reports:       reports,
		enforceAccess: enforceAccess,
		logger:        logger,
	}

	mcpServer := server.NewMCPServer(
		"reportd",
		version,
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

// registerTools registers all reportd tools with the MCP server.
func (s *Server) registerTools(mcpServer *server.MCPServer) {
	similarReportsTool := mcp.NewTool("find_similar_reports",
		mcp.WithDescription("Find tuning reports similar to a given report using vector similarity"),
		mcp.WithString("report_id",
			mcp.Required(),
			mcp.Description("The ID of the anchor report"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of results to return (default: 10)"),
		),
		mcp.WithString("status",
			mcp.Description("Comma-separated status filter (default: published, in_review)"),
		),
		mcp.WithString("region",
			mcp.Description("Filter by deployment region"),
		),
		mcp.WithString("user_id",
			mcp.Description("Caller user ID; access grants restrict results to authorized customers"),
		),
	)
	mcpServer.AddTool(similarReportsTool, s.handleSimilarReports)

	similarFindingsTool := mcp.NewTool("find_similar_findings",
		mcp.WithDescription("Find findings similar to a given finding using vector similarity"),
		mcp.WithString("finding_id",
			mcp.Required(),
			mcp.Description("The ID of the anchor finding"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of results to return (default: 10)"),
		),
		mcp.WithString("category",
			mcp.Description("Filter by finding category"),
		),
		mcp.WithString("severity",
			mcp.Description("Filter by finding severity"),
		),
		mcp.WithString("user_id",
			mcp.Description("Caller user ID; access grants restrict results to authorized customers"),
		),
	)
	mcpServer.AddTool(similarFindingsTool, s.handleSimilarFindings)

	getReportTool := mcp.NewTool("get_report",
		mcp.WithDescription("Get a tuning report by its ID"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The ID of the report"),
		),
	)
	mcpServer.AddTool(getReportTool, s.handleGetReport)
}

type similarityResult struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	CustomerID string  `json:"customer_id"`
	Similarity float64 `json:"similarity"`
}

func (s *Server) runSimilarity(ctx context.Context, req appservice.SimilarRequest) (*mcp.CallToolResult, error) {
	results, err := s.searchService.SimilarTo(ctx, req)
	if err != nil {
		s.logger.Error("similarity search failed", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("similarity search failed: %v", err)), nil
	}

	out := make([]similarityResult, len(results))
	for i, res := range results {
		out[i] = similarityResult{
			ID:         res.ID(),
			Kind:       string(res.Kind()),
			Title:      res.Title(),
			Status:     res.Status(),
			CustomerID: res.CustomerID(),
			Similarity: res.Similarity(),
		}
	}

	jsonBytes, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// handleSimilarReports handles the find_similar_reports tool invocation.
func (s *Server) handleSimilarReports(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reportID, err := request.RequireString("report_id")
	if err != nil {
		return mcp.NewToolResultError("report_id is required"), nil
	}

	var opts []search.FilterOption
	if raw := request.GetString("status", ""); raw != "" {
		statuses := strings.Split(raw, ",")
		for i := range statuses {
			statuses[i] = strings.TrimSpace(statuses[i])
		}
		opts = append(opts, search.WithStatuses(statuses...))
	}
	if region := request.GetString("region", ""); region != "" {
		opts = append(opts, search.WithRegion(region))
	}

	return s.runSimilarity(ctx, appservice.SimilarRequest{
		Kind:          search.KindReport,
		EntityID:      reportID,
		Limit:         request.GetInt("limit", 0),
		CallerID:      request.GetString("user_id", ""),
		EnforceAccess: s.enforceAccess,
		Filters:       search.NewFilters(opts...),
	})
}

// handleSimilarFindings handles the find_similar_findings tool invocation.
func (s *Server) handleSimilarFindings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	findingID, err := request.RequireString("finding_id")
	if err != nil {
		return mcp.NewToolResultError("finding_id is required"), nil
	}

	var opts []search.FilterOption
	if category := request.GetString("category", ""); category != "" {
		opts = append(opts, search.WithCategory(category))
	}
	if severity := request.GetString("severity", ""); severity != "" {
		opts = append(opts, search.WithSeverity(severity))
	}

	return s.runSimilarity(ctx, appservice.SimilarRequest{
		Kind:          search.KindFinding,
		EntityID:      findingID,
		Limit:         request.GetInt("limit", 0),
		CallerID:      request.GetString("user_id", ""),
		EnforceAccess: s.enforceAccess,
		Filters:       search.NewFilters(opts...),
	})
}

// handleGetReport handles the get_report tool invocation.
func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	r, err := s.reports.Get(ctx, id)
	if err != nil {
		s.logger.Error("failed to get report", slog.String("id", id), slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to get report: %v", err)), nil
	}

	type reportResult struct {
		ID             string `json:"id"`
		ClusterID      string `json:"cluster_id"`
		Title          string `json:"title"`
		Description    string `json:"description"`
		Status         string `json:"status"`
		CustomerID     string `json:"customer_id"`
		Region         string `json:"region"`
		ClusterVersion string `json:"cluster_version"`
		HasEmbedding   bool   `json:"has_embedding"`
	}

	result := reportResult{
		ID:             r.ID(),
		ClusterID:      r.ClusterID(),
		Title:          r.Title(),
		Description:    r.Description(),
		Status:         string(r.Status()),
		CustomerID:     r.CustomerID(),
		Region:         r.Region(),
		ClusterVersion: r.ClusterVersion(),
		HasEmbedding:   r.HasEmbedding(),
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// MCPServer returns the underlying MCP server for HTTP serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
