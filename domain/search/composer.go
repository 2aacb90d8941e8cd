package search

import (
	"fmt"
	"strings"

	"github.com/clustertune/reportd/domain/report"
)

// ComposeReportText builds the text blob embedded for a report. Field order
// is fixed: the title comes first so it carries the most weight in the
// resulting vector.
func ComposeReportText(r report.Report) (string, error) {
	parts := []string{r.Title()}
	if strings.TrimSpace(r.Description()) != "" {
		parts = append(parts, r.Description())
	}
	if r.ClusterID() != "" {
		parts = append(parts, fmt.Sprintf("Cluster: %s", r.ClusterID()))
	}
	if r.ClusterVersion() != "" {
		parts = append(parts, fmt.Sprintf("Version: %s", r.ClusterVersion()))
	}

	text := strings.Join(parts, "\n")
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}

// ComposeFindingText builds the text blob embedded for a finding.
func ComposeFindingText(f report.Finding) (string, error) {
	parts := []string{f.Title()}
	if strings.TrimSpace(f.Description()) != "" {
		parts = append(parts, f.Description())
	}
	parts = append(parts, fmt.Sprintf("Category: %s\nSeverity: %s", f.Category(), f.Severity()))
	if tags := f.Tags(); len(tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(tags, ", "))
	}

	text := strings.Join(parts, "\n")
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}
