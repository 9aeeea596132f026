package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/juto-shogan/customer-support-case-analysis/internal/aggregate"
	"github.com/juto-shogan/customer-support-case-analysis/internal/cache"
	"github.com/juto-shogan/customer-support-case-analysis/internal/dataset"
	"github.com/juto-shogan/customer-support-case-analysis/internal/llm"
	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
	"github.com/juto-shogan/customer-support-case-analysis/internal/report"
)

const (
	reportTitle = "Customer Case Analysis Dashboard"

	reportIntro = "This interactive dashboard provides key insights into customer cases " +
		"from the uploaded dataset. Explore the distributions of case statuses, origins, " +
		"top product brands, primary reasons for contact, and overall trends over time."

	reportBanner = "Analysis and visualizations completed. This app provides a dynamic " +
		"view of your customer case data."

	findingStatus = "The majority of cases are Closed, indicating an effective resolution " +
		"process. A significant portion are also Closed as Duplicate, suggesting possible " +
		"overlaps or multiple entries for the same issue."

	findingOrigin = "Email and Phone are the dominant channels for customer case " +
		"initiation. This highlights the importance of robust support systems for these " +
		"communication methods."

	findingBrands = "Unilever Corporate has the highest number of cases, which could " +
		"encompass general inquiries not tied to a specific product. Among specific " +
		"brands, Knorr, Pepsodent, and Close Up generate the most cases."

	findingReasons = "Others and Queries are the most frequent top-level reasons for " +
		"contact. This suggests an opportunity to refine reason categories for better " +
		"insights into specific customer needs. Feedback/Comment and Praises are also " +
		"significant."

	findingTrend = "The trend of cases over time shows fluctuations, which could be " +
		"influenced by seasonal factors, marketing campaigns, or specific events. " +
		"Analyzing these periods more closely could reveal underlying drivers."
)

// Pipeline orchestrates the complete analysis: cached load and clean, the
// five aggregations, and report assembly.
type Pipeline struct {
	schema     dataset.Schema
	cache      cache.Cache
	renderer   *report.Renderer
	summarizer *llm.Summarizer // Optional, nil if disabled
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var summarizer *llm.Summarizer
	if cfg.LLM.Enabled {
		s, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}

	return &Pipeline{
		schema:     dataset.SchemaFromConfig(cfg.Data),
		cache:      c,
		renderer:   report.NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
		config:     cfg,
	}
}

// cachedDataset is the JSON envelope stored in the memoization cache
type cachedDataset struct {
	Table *dataset.Table   `json:"table"`
	Stats model.CleanStats `json:"stats"`
}

// loadFunc is swapped out in tests to count source reads
var loadFunc = dataset.Load

// loadDataset returns the cleaned table, memoized so repeated runs within one
// process never re-read or re-clean the source file.
func (p *Pipeline) loadDataset() (*dataset.Table, model.CleanStats, error) {
	path := p.config.Data.Path

	var key string
	if p.cache != nil {
		key = cache.DatasetKey(path)
		if raw, found := p.cache.Get(key); found {
			var entry cachedDataset
			if err := json.Unmarshal(raw, &entry); err == nil {
				return entry.Table, entry.Stats, nil
			}
		}
	}

	table, stats, err := loadFunc(path, p.schema)
	if err != nil {
		return nil, stats, err
	}

	if p.cache != nil {
		if raw, err := json.Marshal(cachedDataset{Table: table, Stats: stats}); err == nil {
			_ = p.cache.Set(key, raw, p.config.Cache.TTL)
		}
	}
	return table, stats, nil
}

// Run executes the full pipeline once and assembles the report.
// Aggregation is complete before any renderer sees the result.
func (p *Pipeline) Run(ctx context.Context) (*model.Report, error) {
	// 1. Load and clean (memoized)
	table, stats, err := p.loadDataset()
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	// 2. Frequency aggregations
	sections := make([]model.Section, 0, 5)

	status, err := p.frequencySection(table, p.config.Data.StatusColumn,
		"status", "1. Distribution of Case Status", findingStatus, 0)
	if err != nil {
		return nil, err
	}
	sections = append(sections, status)

	origin, err := p.frequencySection(table, p.config.Data.OriginColumn,
		"origin", "2. Distribution of Case Origin", findingOrigin, 0)
	if err != nil {
		return nil, err
	}
	sections = append(sections, origin)

	brands, err := p.frequencySection(table, p.config.Data.BrandColumn,
		"brands", fmt.Sprintf("3. Top %d Product Brands by Case Count", p.config.Data.TopN),
		findingBrands, p.config.Data.TopN)
	if err != nil {
		return nil, err
	}
	sections = append(sections, brands)

	reasons, err := p.frequencySection(table, p.config.Data.ReasonColumn,
		"reasons", fmt.Sprintf("4. Top %d Reasons L1 Description by Case Count", p.config.Data.TopN),
		findingReasons, p.config.Data.TopN)
	if err != nil {
		return nil, err
	}
	sections = append(sections, reasons)

	// 3. Monthly trend
	sections = append(sections, model.Section{
		ID:      "trend",
		Title:   "5. Monthly Trend of Cases Over Time",
		Kind:    model.ChartLine,
		Finding: findingTrend,
		Trend:   aggregate.MonthlyTrend(table.Opened),
	})

	// 4. Assemble report
	rep := &model.Report{
		Title:       reportTitle,
		Intro:       reportIntro,
		SourcePath:  p.config.Data.Path,
		GeneratedAt: time.Now().UTC(),
		RowCount:    len(table.Rows),
		Cleaning:    stats,
		Sections:    sections,
		Banner:      reportBanner,
	}

	// 5. Optional LLM summary (AFTER aggregation, never affects the tables)
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, rep)
		if err != nil {
			fmt.Printf("Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			rep.Summary = summary
		}
	}

	return rep, nil
}

// frequencySection builds one frequency table section. A topN of zero keeps
// every distinct value; a positive topN truncates and flips the table to
// ascending order for the horizontal display.
func (p *Pipeline) frequencySection(table *dataset.Table, column, id, title, finding string, topN int) (model.Section, error) {
	values, err := table.Column(column)
	if err != nil {
		return model.Section{}, fmt.Errorf("aggregate %s: %w", id, err)
	}

	buckets := aggregate.ValueCounts(values)
	kind := model.ChartBar
	if topN > 0 {
		buckets = aggregate.Ascending(aggregate.TopN(buckets, topN))
		kind = model.ChartBarHorizontal
	}

	return model.Section{
		ID:      id,
		Title:   title,
		Kind:    kind,
		Finding: finding,
		Buckets: buckets,
	}, nil
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(rep *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(rep, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(rep, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(rep)
	return nil
}
