// Package config defines the openrouter-helper configuration model and
// default values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < project config file < explicit config file <
// CLI flag overrides. The API credential is read from the environment only
// and never appears in config files.
package config

// WhitelistedVars lists every configuration variable name that may appear in
// config files. Variables not in this list are silently ignored during loading.
var WhitelistedVars = [8]string{
	"MODEL",
	"TITLE",
	"BASE_URL",
	"REQUEST_TIMEOUT",
	"MAX_RETRIES",
	"RETRY_DELAY",
	"VALIDATE_JSON",
	"VERBOSE",
}

// Config holds every configuration field for the openrouter-helper CLI.
type Config struct {
	// Request parameters.
	Model string
	Title string

	// Endpoint settings.
	BaseURL        string
	RequestTimeout int // seconds

	// Retry tuning.
	MaxRetries int
	RetryDelay int // seconds, doubles after each retryable failure

	// Response checks.
	ValidateJSON bool

	// Runtime flags.
	Verbose bool

	// CLI-only flags (not loaded from config files).
	PromptFile string
	OutputFile string
	ConfigFile string
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		Model:          "anthropic/claude-3.5-sonnet",
		Title:          "AI Assistant",
		BaseURL:        "https://openrouter.ai/api/v1",
		RequestTimeout: 180,
		MaxRetries:     5,
		RetryDelay:     5,
	}
}
