package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
)

func testLLMConfig() model.LLMConfig {
	return model.LLMConfig{
		Enabled:  true,
		Provider: "openai",
		Model:    "gpt-4o-mini",
		APIKey:   "test-key",
		Timeout:  5,
	}
}

func testReport() *model.Report {
	return &model.Report{
		RowCount: 42,
		Cleaning: model.CleanStats{Notices: []string{"Removed 2 duplicate rows."}},
		Sections: []model.Section{
			{
				ID: "status", Title: "1. Distribution of Case Status",
				Buckets: []model.Bucket{{Value: "Closed", Count: 40}, {Value: "Open", Count: 2}},
			},
		},
	}
}

func TestNewSummarizer_RequiresAPIKey(t *testing.T) {
	cfg := testLLMConfig()
	cfg.APIKey = ""

	if _, err := NewSummarizer(cfg); err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestNewSummarizer_UnsupportedProvider(t *testing.T) {
	cfg := testLLMConfig()
	cfg.Provider = "carrier-pigeon"

	if _, err := NewSummarizer(cfg); err == nil {
		t.Error("Expected error for unsupported provider")
	}
}

func TestSummarizer_GenerateSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-123",
			Object: "chat.completion",
			Model:  "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: "Most cases are Closed.",
					},
					FinishReason: "stop",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	cfg := testLLMConfig()
	cfg.BaseURL = server.URL
	s, err := NewSummarizer(cfg)
	if err != nil {
		t.Fatalf("Failed to create summarizer: %v", err)
	}

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if !summary.Enabled {
		t.Error("Expected summary to be enabled")
	}
	if summary.Text != "Most cases are Closed." {
		t.Errorf("Unexpected summary text: %q", summary.Text)
	}
	if summary.Provider != "openai" {
		t.Errorf("Expected provider openai, got %q", summary.Provider)
	}
}

func TestSummarizer_GenerateSummary_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testLLMConfig()
	cfg.BaseURL = server.URL
	s, err := NewSummarizer(cfg)
	if err != nil {
		t.Fatalf("Failed to create summarizer: %v", err)
	}

	if _, err := s.GenerateSummary(context.Background(), testReport()); err == nil {
		t.Error("Expected error from failing API")
	}
}

func TestBuildPrompt_ContainsAggregates(t *testing.T) {
	prompt := BuildPrompt(testReport())

	for _, want := range []string{
		"Total cleaned cases: 42",
		"Removed 2 duplicate rows.",
		"1. Distribution of Case Status",
		"Closed: 40",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestSummarizer_IsEnabled(t *testing.T) {
	var nilSummarizer *Summarizer
	if nilSummarizer.IsEnabled() {
		t.Error("Expected nil summarizer not to be enabled")
	}

	cfg := testLLMConfig()
	s, err := NewSummarizer(cfg)
	if err != nil {
		t.Fatalf("Failed to create summarizer: %v", err)
	}
	if !s.IsEnabled() {
		t.Error("Expected configured summarizer to be enabled")
	}
}
