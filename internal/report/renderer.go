package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
)

// Renderer writes reports to files and prints the stdout summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(rep *model.Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document with one section
// per visualization, each followed by its finding paragraph.
func (r *Renderer) RenderMarkdown(rep *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", rep.Title)
	fmt.Fprintf(&b, "%s\n\n", rep.Intro)
	fmt.Fprintf(&b, "- Source: `%s`\n", rep.SourcePath)
	fmt.Fprintf(&b, "- Generated: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- Cleaned rows: %d\n\n", rep.RowCount)

	if len(rep.Cleaning.Notices) > 0 {
		b.WriteString("## Data Cleaning\n\n")
		for _, notice := range rep.Cleaning.Notices {
			fmt.Fprintf(&b, "- %s\n", notice)
		}
		b.WriteString("\n")
	}

	for _, section := range rep.Sections {
		fmt.Fprintf(&b, "## %s\n\n", section.Title)
		switch section.Kind {
		case model.ChartLine:
			b.WriteString("| Month | Number of Cases |\n|---|---|\n")
			for _, point := range section.Trend {
				fmt.Fprintf(&b, "| %s | %d |\n", point.Month.Format("Jan 2006"), point.Count)
			}
		default:
			b.WriteString("| Value | Number of Cases |\n|---|---|\n")
			for _, bucket := range section.Buckets {
				fmt.Fprintf(&b, "| %s | %d |\n", bucket.Value, bucket.Count)
			}
		}
		fmt.Fprintf(&b, "\n**Finding:** %s\n\n", section.Finding)
	}

	if rep.Summary != nil && rep.Summary.Enabled {
		fmt.Fprintf(&b, "## Executive Summary (%s/%s)\n\n%s\n\n",
			rep.Summary.Provider, rep.Summary.Model, rep.Summary.Text)
	}

	fmt.Fprintf(&b, "> %s\n", rep.Banner)

	if r.includeFooter {
		b.WriteString("\n---\n\nGenerated by casewatch\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints a short overview to stdout
func (r *Renderer) RenderSummary(rep *model.Report) {
	fmt.Printf("\n%s\n", rep.Title)
	fmt.Printf("Source: %s\n", rep.SourcePath)
	fmt.Printf("Cleaned rows: %d\n", rep.RowCount)
	for _, notice := range rep.Cleaning.Notices {
		fmt.Printf("  - %s\n", notice)
	}
	for _, section := range rep.Sections {
		n := len(section.Buckets)
		if section.Kind == model.ChartLine {
			n = len(section.Trend)
		}
		fmt.Printf("%s (%d entries)\n", section.Title, n)
	}
	fmt.Println()
}
