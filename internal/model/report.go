package model

import "time"

// Report represents the complete case analysis output: the cleaned dataset
// summary plus one section per visualization, in presentation order.
type Report struct {
	Title       string    `json:"title"`
	Intro       string    `json:"intro"`
	SourcePath  string    `json:"source_path"`  // CSV that was analyzed
	GeneratedAt time.Time `json:"generated_at"` // When the pipeline ran
	RowCount    int       `json:"row_count"`    // Rows in the cleaned dataset

	Cleaning CleanStats `json:"cleaning"` // What the cleaning pass removed
	Sections []Section  `json:"sections"` // Five sections, fixed order

	Banner string `json:"banner"` // Closing informational banner

	Summary *ExecSummary `json:"summary,omitempty"` // Optional LLM summary (never affects aggregates)
}

// CleanStats records what the cleaning pass removed, for the operator-facing
// side panel. Notices are pre-formatted, one per cleaning action.
type CleanStats struct {
	RowsRead       int      `json:"rows_read"`       // Data rows in the source file
	DroppedDates   int      `json:"dropped_dates"`   // Rows dropped for unparseable opened date
	DroppedColumns []string `json:"dropped_columns"` // Columns removed for being entirely null
	DuplicateRows  int      `json:"duplicate_rows"`  // Exact duplicate rows removed
	Notices        []string `json:"notices"`         // Operator-facing messages
}

// ChartKind selects the chart type for a section.
type ChartKind string

const (
	ChartBar           ChartKind = "bar"            // Vertical bar chart
	ChartBarHorizontal ChartKind = "bar_horizontal" // Top-N chart, largest at one visual end
	ChartLine          ChartKind = "line"           // Line chart with point markers
)

// Section is one dashboard section: a header, one chart, and a fixed finding
// paragraph. Exactly one of Buckets or Trend is populated, depending on Kind.
type Section struct {
	ID      string    `json:"id"`    // URL-safe slug, used for chart routes
	Title   string    `json:"title"` // Numbered section header
	Kind    ChartKind `json:"kind"`
	Finding string    `json:"finding"`

	Buckets []Bucket     `json:"buckets,omitempty"` // Frequency sections
	Trend   []TrendPoint `json:"trend,omitempty"`   // Monthly trend section
}

// Bucket is one (category value, count) pair of a frequency table.
type Bucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TrendPoint is the case count for one calendar month.
type TrendPoint struct {
	Month time.Time `json:"month"` // First day of the month, UTC
	Count int       `json:"count"`
}

// ExecSummary contains an optional LLM-generated narrative.
// It is presentation-only and never feeds back into any aggregate.
type ExecSummary struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	Text     string   `json:"text,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
