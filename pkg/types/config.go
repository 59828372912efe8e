package types

import "time"

// Provider selects the generative text API behind the model client.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderGroq      Provider = "groq"
	ProviderBedrock   Provider = "bedrock"
)

// ModelConfig holds settings for the model client.
type ModelConfig struct {
	// Provider selects anthropic, groq, or bedrock (default anthropic).
	Provider Provider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Name is the model identifier (e.g. "claude-sonnet-4-5-20250929").
	// Empty selects the provider default.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Temperature is the fixed decoding temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens caps the output length of one call (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// Timeout bounds one HTTP call. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// BaseURL overrides the provider endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Region is the AWS region for the bedrock provider.
	Region string `json:"region,omitempty" yaml:"region,omitempty" mapstructure:"region"`

	// Profile is an optional AWS shared config profile for bedrock.
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty" mapstructure:"profile"`
}

// StoreConfig holds settings for the project store.
type StoreConfig struct {
	// Path is the SQLite database file (default "data/startup-analyzer.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// ReadHeaderTimeout bounds reading request headers (default 10s).
	ReadHeaderTimeout time.Duration `json:"read_header_timeout" yaml:"read_header_timeout" mapstructure:"read_header_timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is debug, info, warn, or error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// SecretsConfig locates the credential directory.
type SecretsConfig struct {
	// Dir holds one file per secret (default ".secrets/").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// Config groups every setting of the startup-analyzer binary.
type Config struct {
	Model   ModelConfig   `json:"model" yaml:"model" mapstructure:"model"`
	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Secrets SecretsConfig `json:"secrets" yaml:"secrets" mapstructure:"secrets"`
}

// ReportFormat selects the export format of a project report.
type ReportFormat string

const (
	ReportMarkdown ReportFormat = "markdown"
	ReportYAML     ReportFormat = "yaml"
	ReportJSON     ReportFormat = "json"
)
