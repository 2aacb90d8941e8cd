package search

import (
	"errors"
	"testing"

	"github.com/clustertune/reportd/domain/report"
)

func TestComposeReportText_AllFields(t *testing.T) {
	r := report.NewReport("pg-prod-7", "Slow checkpoint cadence", "Checkpoints complete too slowly under load.", "cust-1", "user-1")
	r = r.WithClusterVersion("v24.1.3")

	text, err := ComposeReportText(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Slow checkpoint cadence\nCheckpoints complete too slowly under load.\nCluster: pg-prod-7\nVersion: v24.1.3"
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestComposeReportText_NoVersionLine(t *testing.T) {
	r := report.NewReport("pg-prod-7", "Slow checkpoint cadence", "", "cust-1", "user-1")

	text, err := ComposeReportText(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Slow checkpoint cadence\nCluster: pg-prod-7"
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestComposeReportText_BlankDescriptionSkipped(t *testing.T) {
	r := report.NewReport("pg-prod-7", "Slow checkpoint cadence", "   ", "cust-1", "user-1")

	text, err := ComposeReportText(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Slow checkpoint cadence\nCluster: pg-prod-7"
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestComposeReportText_WhitespaceOnly(t *testing.T) {
	r := report.NewReport("", "   ", "\t\n", "cust-1", "user-1")

	_, err := ComposeReportText(r)
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}

func TestComposeFindingText(t *testing.T) {
	parent := report.NewReport("pg-prod-7", "Report", "", "cust-1", "user-1")
	f := report.NewFinding(parent, report.CategoryPerformance, report.SeverityHigh,
		"Sequential scans on orders", "Missing index on orders.customer_id.", "user-1")
	f = f.WithTags([]string{"index", "orders"})

	text, err := ComposeFindingText(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Sequential scans on orders\nMissing index on orders.customer_id.\nCategory: performance\nSeverity: high\nTags: index, orders"
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestComposeFindingText_NoTags(t *testing.T) {
	parent := report.NewReport("pg-prod-7", "Report", "", "cust-1", "user-1")
	f := report.NewFinding(parent, report.CategorySecurity, report.SeverityLow,
		"Weak password policy", "", "user-1")

	text, err := ComposeFindingText(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Weak password policy\nCategory: security\nSeverity: low"
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}
