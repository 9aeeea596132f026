package model

import "time"

// Config holds the complete casewatch configuration
type Config struct {
	Data   DataConfig   `yaml:"data" json:"data"`
	Server ServerConfig `yaml:"server" json:"server"`
	Cache  CacheConfig  `yaml:"cache" json:"cache"`
	LLM    LLMConfig    `yaml:"llm" json:"llm"`
	Output OutputConfig `yaml:"output" json:"output"`
}

// DataConfig describes the input CSV and the columns the pipeline reads
type DataConfig struct {
	Path         string `yaml:"path" json:"path"`                   // CSV location
	DateColumn   string `yaml:"date_column" json:"date_column"`     // Opened timestamp
	StatusColumn string `yaml:"status_column" json:"status_column"` // Case status
	OriginColumn string `yaml:"origin_column" json:"origin_column"` // Contact channel
	BrandColumn  string `yaml:"brand_column" json:"brand_column"`   // Product brand
	ReasonColumn string `yaml:"reason_column" json:"reason_column"` // Top-level contact reason
	TopN         int    `yaml:"top_n" json:"top_n"`                 // Truncation for brand/reason tables
}

// ServerConfig controls the dashboard HTTP server
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// CacheConfig controls memoization of the cleaned dataset
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// LLMConfig controls the optional executive summary generation
type LLMConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Provider  string `yaml:"provider" json:"provider"` // currently "openai"
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"` // from OPENAI_API_KEY, never persisted
	BaseURL   string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
	Timeout   int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// OutputConfig controls report file rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the built-in defaults. Column names and the top-N
// limit match the source dataset this tool was written for.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path:         "data/data.csv",
			DateColumn:   "Opened Date",
			StatusColumn: "Status",
			OriginColumn: "Case Origin",
			BrandColumn:  "Product: Brand",
			ReasonColumn: "Reason L1 desc",
			TopN:         10,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     0, // 0 means no expiration within the process lifetime
		},
		LLM: LLMConfig{
			Enabled:   false,
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			MaxTokens: 600,
			Timeout:   30,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
