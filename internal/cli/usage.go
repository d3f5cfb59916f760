// Package cli provides help text and usage formatting for the openrouter-helper CLI.
package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `openrouter-helper - Send a prompt to OpenRouter and write the response to a file

USAGE
  openrouter-helper --prompt-file <path> --output-file <path> [flags]

FLAGS
  Request:
    --prompt-file <path>     Path to the file containing the prompt (required)
    --output-file <path>     Path to write the AI response (required)
    --model <id>             Model identifier (default: anthropic/claude-3.5-sonnet)
    --title <string>         Request title sent as the X-Title header (default: AI Assistant)
    --validate-json          Require the response to be valid JSON

  Endpoint:
    --base-url <url>         API base URL (default: https://openrouter.ai/api/v1)
    --config <path>          Path to additional config file

  Runtime:
    -v, --verbose            Enable debug logging
    -h, --help               Show this help text
    --version                Show version, commit, build date

ENVIRONMENT
  OPENROUTER_API_KEY         API credential (required; also read from .env)

EXIT CODES
  0   Success              Response written to the output file
  1   Error                Missing inputs, API failure, validation failure, retries exhausted
  130 Interrupted          SIGINT or SIGTERM received

EXAMPLES
  # Summarize a diff into review notes
  openrouter-helper --prompt-file diff.txt --output-file review.md

  # Ask for JSON and fail unless the reply parses
  openrouter-helper --prompt-file prompt.txt --output-file result.json --validate-json

  # Use a different model with a custom attribution title
  openrouter-helper --prompt-file prompt.txt --output-file out.md \
    --model openai/gpt-4o --title "Release Notes Bot"

For more information, see: https://github.com/CodexForgeBR/openrouter-helper
`

// SetCustomHelp configures the cobra command to use our custom help template.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
