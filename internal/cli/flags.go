// Package cli provides flag binding and validation for the openrouter-helper CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/openrouter-helper/internal/config"
)

// BindFlags registers all CLI flags on the given cobra command.
// The flags directly modify fields in the provided config pointer.
// Call ValidateFlags after parsing to check flag combinations.
func BindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	// Request
	flags.StringVar(&cfg.PromptFile, "prompt-file", "", "Path to the file containing the prompt")
	flags.StringVar(&cfg.OutputFile, "output-file", "", "Path to write the AI response")
	flags.StringVar(&cfg.Model, "model", "anthropic/claude-3.5-sonnet", "Model identifier passed to the API")
	flags.StringVar(&cfg.Title, "title", "AI Assistant", "Request title sent as the X-Title header")
	flags.BoolVar(&cfg.ValidateJSON, "validate-json", false, "Require the response to be valid JSON")

	// Endpoint
	flags.StringVar(&cfg.BaseURL, "base-url", "https://openrouter.ai/api/v1", "API base URL")
	flags.StringVar(&cfg.ConfigFile, "config", "", "Path to additional config file")

	// Runtime
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
}

// ValidateFlags checks for missing or invalid flag values after parsing.
// Must be called after cmd.Execute() or cmd.ParseFlags().
func ValidateFlags(cmd *cobra.Command, cfg *config.Config) error {
	// Both file paths are required.
	if cfg.PromptFile == "" {
		return fmt.Errorf("--prompt-file is required")
	}
	if cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required")
	}

	// --config must exist if provided
	if cfg.ConfigFile != "" {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}

	// --base-url must not be blanked out
	if cfg.BaseURL == "" {
		return fmt.Errorf("--base-url must not be empty")
	}

	return nil
}
