package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
	"github.com/juto-shogan/customer-support-case-analysis/internal/pipeline"
	"github.com/juto-shogan/customer-support-case-analysis/internal/web"
)

var (
	serveAddr    string
	serveData    string
	serveNoCache bool
	serveLLM     bool
	serveModel   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis pipeline and serve the browser dashboard",
	Long: `Serve loads and cleans the case dataset once, computes all
aggregations, and serves the dashboard over HTTP:

- / — the full dashboard (title, intro, five chart sections, banner)
- /charts/{section}.png — one chart per endpoint
- /api/report — the complete report as JSON

If the input file is missing or unreadable, serve fails before binding the
port and no charts are rendered.

Example:
  casewatch serve
  casewatch serve --data data/data.csv --addr :9090
  casewatch serve --llm --llm-model gpt-4o-mini`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().StringVar(&serveData, "data", "", "CSV path (default from config)")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "disable dataset memoization")
	serveCmd.Flags().BoolVar(&serveLLM, "llm", false, "enable LLM executive summary")
	serveCmd.Flags().StringVar(&serveModel, "llm-model", "", "LLM model name")
}

// buildConfig assembles the effective configuration from defaults and flags
func buildConfig(dataPath string, noCache bool, llmEnabled bool, llmModel string) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.LLM.Enabled = true
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(serveData, serveNoCache, serveLLM, serveModel)
	if err != nil {
		return err
	}
	cfg.Server.Addr = serveAddr

	if verbose {
		fmt.Fprintf(os.Stderr, "Data: %s\n", cfg.Data.Path)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
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
		fmt.Fprintf(os.Stderr, "✓ Cleaned dataset: %d rows\n", rep.RowCount)
		fmt.Fprintln(os.Stderr)
	}

	server := web.NewServer(rep)
	fmt.Fprintf(os.Stderr, "Dashboard listening on %s\n", cfg.Server.Addr)
	return server.ListenAndServe(cfg.Server.Addr)
}
