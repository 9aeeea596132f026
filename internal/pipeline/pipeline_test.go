package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/juto-shogan/customer-support-case-analysis/internal/dataset"
	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
)

const testCSV = "Opened Date,Status,Case Origin,Product: Brand,Reason L1 desc\n" +
	"2024-01-05,Closed,Email,Knorr,Queries\n" +
	"2024-01-20,Closed,Phone,Dove,Others\n" +
	"2024-02-03,Open,Email,Lipton,Praises\n" +
	",Open,Web,Dove,Queries\n"

func testConfig(t *testing.T, csv string) *model.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatalf("Failed to write test CSV: %v", err)
	}
	cfg := model.DefaultConfig()
	cfg.Data.Path = path
	return cfg
}

func TestPipeline_Run(t *testing.T) {
	p := NewPipeline(testConfig(t, testCSV))

	rep, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rep.RowCount != 3 {
		t.Errorf("Expected 3 cleaned rows, got %d", rep.RowCount)
	}
	if rep.Title != "Customer Case Analysis Dashboard" {
		t.Errorf("Unexpected title: %q", rep.Title)
	}

	wantIDs := []string{"status", "origin", "brands", "reasons", "trend"}
	if len(rep.Sections) != len(wantIDs) {
		t.Fatalf("Expected %d sections, got %d", len(wantIDs), len(rep.Sections))
	}
	for i, id := range wantIDs {
		if rep.Sections[i].ID != id {
			t.Errorf("Section %d: expected id %q, got %q", i, id, rep.Sections[i].ID)
		}
		if rep.Sections[i].Finding == "" {
			t.Errorf("Section %q has no finding paragraph", id)
		}
	}
}

func TestPipeline_FullyEnumeratedCountsSumToTotal(t *testing.T) {
	p := NewPipeline(testConfig(t, testCSV))

	rep, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, id := range []string{"status", "origin"} {
		section := findSection(t, rep, id)
		if section.Kind != model.ChartBar {
			t.Errorf("Expected %s to be a bar chart, got %s", id, section.Kind)
		}
		total := 0
		for _, b := range section.Buckets {
			total += b.Count
		}
		if total != rep.RowCount {
			t.Errorf("%s counts sum to %d, expected %d", id, total, rep.RowCount)
		}
	}
}

func TestPipeline_TopNSectionsAreTruncatedAscending(t *testing.T) {
	cfg := testConfig(t, testCSV)
	cfg.Data.TopN = 2
	p := NewPipeline(cfg)

	rep, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, id := range []string{"brands", "reasons"} {
		section := findSection(t, rep, id)
		if section.Kind != model.ChartBarHorizontal {
			t.Errorf("Expected %s to be horizontal, got %s", id, section.Kind)
		}
		if len(section.Buckets) > 2 {
			t.Errorf("Expected %s truncated to 2, got %d buckets", id, len(section.Buckets))
		}
		total := 0
		for i, b := range section.Buckets {
			total += b.Count
			if i > 0 && section.Buckets[i-1].Count > b.Count {
				t.Errorf("Expected %s in ascending count order, got %v", id, section.Buckets)
			}
		}
		if total > rep.RowCount {
			t.Errorf("%s truncated total %d exceeds row count %d", id, total, rep.RowCount)
		}
	}
}

func TestPipeline_MonthlyTrendScenario(t *testing.T) {
	p := NewPipeline(testConfig(t, testCSV))

	rep, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	trend := findSection(t, rep, "trend")
	if trend.Kind != model.ChartLine {
		t.Errorf("Expected line chart, got %s", trend.Kind)
	}
	if len(trend.Trend) != 2 {
		t.Fatalf("Expected 2 trend points, got %d", len(trend.Trend))
	}
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	if trend.Trend[0].Month != jan || trend.Trend[0].Count != 2 {
		t.Errorf("Expected (2024-01, 2), got (%s, %d)", trend.Trend[0].Month.Format("2006-01"), trend.Trend[0].Count)
	}
	if trend.Trend[1].Month != feb || trend.Trend[1].Count != 1 {
		t.Errorf("Expected (2024-02, 1), got (%s, %d)", trend.Trend[1].Month.Format("2006-01"), trend.Trend[1].Count)
	}
}

func TestPipeline_MemoizedLoad(t *testing.T) {
	loads := 0
	orig := loadFunc
	loadFunc = func(path string, schema dataset.Schema) (*dataset.Table, model.CleanStats, error) {
		loads++
		return orig(path, schema)
	}
	defer func() { loadFunc = orig }()

	p := NewPipeline(testConfig(t, testCSV))

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if loads != 1 {
		t.Errorf("Expected the file to be read once, got %d reads", loads)
	}
}

func TestPipeline_NoCacheReloads(t *testing.T) {
	loads := 0
	orig := loadFunc
	loadFunc = func(path string, schema dataset.Schema) (*dataset.Table, model.CleanStats, error) {
		loads++
		return orig(path, schema)
	}
	defer func() { loadFunc = orig }()

	cfg := testConfig(t, testCSV)
	cfg.Cache.Enabled = false
	p := NewPipeline(cfg)

	_, _ = p.Run(context.Background())
	_, _ = p.Run(context.Background())

	if loads != 2 {
		t.Errorf("Expected 2 reads with cache disabled, got %d", loads)
	}
}

func TestPipeline_MissingFile(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Data.Path = filepath.Join(t.TempDir(), "missing.csv")
	p := NewPipeline(cfg)

	rep, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
	if rep != nil {
		t.Error("Expected no report when the load fails")
	}
}

func TestPipeline_MissingColumn(t *testing.T) {
	p := NewPipeline(testConfig(t, "Opened Date,Status\n2024-01-05,Closed\n"))

	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("Expected error for missing column, got nil")
	}
}

func findSection(t *testing.T, rep *model.Report, id string) model.Section {
	t.Helper()
	for _, s := range rep.Sections {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("Section %q not found", id)
	return model.Section{}
}
