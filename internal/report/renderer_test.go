package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
)

func testReport() *model.Report {
	return &model.Report{
		Title:       "Customer Case Analysis Dashboard",
		Intro:       "Intro text.",
		SourcePath:  "data/data.csv",
		GeneratedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		RowCount:    3,
		Cleaning: model.CleanStats{
			RowsRead:      4,
			DroppedDates:  1,
			DuplicateRows: 0,
			Notices:       []string{"No duplicate rows found."},
		},
		Sections: []model.Section{
			{
				ID: "status", Title: "1. Distribution of Case Status",
				Kind: model.ChartBar, Finding: "Mostly closed.",
				Buckets: []model.Bucket{{Value: "Closed", Count: 2}, {Value: "Open", Count: 1}},
			},
			{
				ID: "trend", Title: "5. Monthly Trend of Cases Over Time",
				Kind: model.ChartLine, Finding: "Fluctuates.",
				Trend: []model.TrendPoint{
					{Month: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Count: 2},
					{Month: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), Count: 1},
				},
			},
		},
		Banner: "Analysis and visualizations completed.",
	}
}

func TestRenderer_RenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := NewRenderer(true)

	if err := r.RenderJSON(testReport(), path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.Title != "Customer Case Analysis Dashboard" {
		t.Errorf("Unexpected title: %q", decoded.Title)
	}
	if len(decoded.Sections) != 2 {
		t.Errorf("Expected 2 sections, got %d", len(decoded.Sections))
	}
}

func TestRenderer_RenderMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	r := NewRenderer(true)

	if err := r.RenderMarkdown(testReport(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"# Customer Case Analysis Dashboard",
		"## 1. Distribution of Case Status",
		"| Closed | 2 |",
		"**Finding:** Mostly closed.",
		"## 5. Monthly Trend of Cases Over Time",
		"| Jan 2024 | 2 |",
		"No duplicate rows found.",
		"> Analysis and visualizations completed.",
		"Generated by casewatch",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestRenderer_MarkdownWithoutFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	r := NewRenderer(false)

	if err := r.RenderMarkdown(testReport(), path); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Generated by casewatch") {
		t.Error("Expected no footer when IncludeFooter is false")
	}
}
