package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
)

// Summarizer generates an optional executive summary of the report.
// It runs after aggregation and its output never feeds back into any table.
type Summarizer struct {
	client *openai.Client
	config model.LLMConfig
}

// NewSummarizer creates a summarizer for the configured provider
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	if cfg.Provider != "openai" {
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// IsEnabled reports whether summary generation is active
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.config.Enabled
}

// GenerateSummary produces a short narrative over the report's aggregates
func (s *Summarizer) GenerateSummary(ctx context.Context, rep *model.Report) (*model.ExecSummary, error) {
	modelName := s.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	maxTokens := s.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 600
	}
	timeout := time.Duration(s.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write concise executive summaries of customer support case analytics. Only use the numbers provided; do not invent figures.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(rep),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	}

	resp, err := s.client.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return &model.ExecSummary{
		Enabled:  true,
		Provider: s.config.Provider,
		Model:    modelName,
		Text:     strings.TrimSpace(resp.Choices[0].Message.Content),
	}, nil
}

// BuildPrompt flattens the report's aggregates into a plain-text prompt
func BuildPrompt(rep *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Summarize this customer support case analysis in 4-6 sentences, "+
		"including 1-2 notable patterns and 1-2 actionable next steps.\n\n")
	fmt.Fprintf(&b, "Total cleaned cases: %d\n", rep.RowCount)
	for _, notice := range rep.Cleaning.Notices {
		fmt.Fprintf(&b, "Cleaning: %s\n", notice)
	}

	for _, section := range rep.Sections {
		fmt.Fprintf(&b, "\n%s:\n", section.Title)
		for _, bucket := range section.Buckets {
			fmt.Fprintf(&b, "  %s: %d\n", bucket.Value, bucket.Count)
		}
		for _, point := range section.Trend {
			fmt.Fprintf(&b, "  %s: %d\n", point.Month.Format("2006-01"), point.Count)
		}
	}

	return b.String()
}
