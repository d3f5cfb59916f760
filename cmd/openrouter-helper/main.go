package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/openrouter-helper/internal/cli"
	"github.com/CodexForgeBR/openrouter-helper/internal/config"
	"github.com/CodexForgeBR/openrouter-helper/internal/exitcode"
	"github.com/CodexForgeBR/openrouter-helper/internal/logging"
	"github.com/CodexForgeBR/openrouter-helper/internal/openrouter"
	"github.com/CodexForgeBR/openrouter-helper/internal/runner"
	sighandler "github.com/CodexForgeBR/openrouter-helper/internal/signal"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	apiKeyEnv         = "OPENROUTER_API_KEY"
	projectConfigFile = ".openrouter-helper.conf"
)

func main() {
	cfg := config.NewDefaultConfig()

	rootCmd := &cobra.Command{
		Use:     "openrouter-helper",
		Short:   "Send a prompt file to OpenRouter and write the response to a file",
		Long:    "openrouter-helper sends the contents of a prompt file to the OpenRouter chat-completions API and writes the model's reply to an output file, retrying transient failures with exponential backoff.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate flags after parsing
			if err := cli.ValidateFlags(cmd, cfg); err != nil {
				return err
			}
			return runHelper(cmd, cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Bind all CLI flags to the config
	cli.BindFlags(rootCmd, cfg)

	// Set custom help template
	cli.SetCustomHelp(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcode.Error)
	}
}

// buildCLIOverrides creates a map of CLI flag overrides from the config.
// Uses cmd.Flags().Changed() to only include flags explicitly set by the user,
// ensuring config file values are not accidentally overridden by default values.
func buildCLIOverrides(cmd *cobra.Command, cfg *config.Config) map[string]string {
	overrides := make(map[string]string)

	// String flags: only include if explicitly set via CLI
	stringFlags := map[string]struct {
		key string
		val string
	}{
		"model":    {"MODEL", cfg.Model},
		"title":    {"TITLE", cfg.Title},
		"base-url": {"BASE_URL", cfg.BaseURL},
	}
	for flag, mapping := range stringFlags {
		if cmd.Flags().Changed(flag) {
			overrides[mapping.key] = mapping.val
		}
	}

	// Bool flags
	boolFlags := map[string]struct {
		key string
		val bool
	}{
		"validate-json": {"VALIDATE_JSON", cfg.ValidateJSON},
		"verbose":       {"VERBOSE", cfg.Verbose},
	}
	for flag, mapping := range boolFlags {
		if cmd.Flags().Changed(flag) {
			if mapping.val {
				overrides[mapping.key] = "true"
			} else {
				overrides[mapping.key] = "false"
			}
		}
	}

	return overrides
}

func runHelper(cmd *cobra.Command, cfg *config.Config) error {
	// A checkout-local .env may carry OPENROUTER_API_KEY; real environment
	// variables win over it.
	_ = godotenv.Load()

	// Build CLI overrides map using Changed() for accurate detection
	cliOverrides := buildCLIOverrides(cmd, cfg)

	// Load config with precedence
	finalCfg, err := config.LoadWithPrecedence(projectConfigFile, cfg.ConfigFile, cliOverrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Merge CLI-only flags (not in config files)
	finalCfg.PromptFile = cfg.PromptFile
	finalCfg.OutputFile = cfg.OutputFile
	finalCfg.ConfigFile = cfg.ConfigFile

	// Replace cfg reference for subsequent use
	cfg = finalCfg

	// Set verbose mode
	logging.SetVerbose(cfg.Verbose)

	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		logging.Error(apiKeyEnv + " environment variable not set")
		os.Exit(exitcode.Error)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handler so an interrupt stops the retry loop promptly
	sighandler.SetupSignalHandler(ctx, cancel, func() {
		logging.Warn("Interrupt received, shutting down...")
	})

	client := openrouter.NewClient(
		cfg.BaseURL,
		apiKey,
		cfg.Title,
		time.Duration(cfg.RequestTimeout)*time.Second,
	)

	exitCode := runner.New(cfg, client).Run(ctx)
	os.Exit(exitCode)
	return nil // unreachable
}
