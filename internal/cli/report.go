package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/juto-shogan/customer-support-case-analysis/internal/pipeline"
)

var (
	reportData  string
	reportJSON  string
	reportMD    string
	reportLLM   bool
	reportModel string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the analysis pipeline and write report files",
	Long: `Report runs the same pipeline as serve but writes the result to
files instead of serving a dashboard.

Example:
  casewatch report
  casewatch report --json report.json --md report.md
  casewatch report --md report.md --llm`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportData, "data", "", "CSV path (default from config)")
	reportCmd.Flags().StringVar(&reportJSON, "json", "report.json", "output JSON path")
	reportCmd.Flags().StringVar(&reportMD, "md", "", "output Markdown path (optional)")
	reportCmd.Flags().BoolVar(&reportLLM, "llm", false, "enable LLM executive summary")
	reportCmd.Flags().StringVar(&reportModel, "llm-model", "", "LLM model name")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(reportData, false, reportLLM, reportModel)
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)
	rep, err := p.Run(context.Background())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		for _, notice := range rep.Cleaning.Notices {
			fmt.Fprintf(os.Stderr, "✓ %s\n", notice)
		}
	}

	if err := p.RenderReport(rep, reportJSON, reportMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
