// Package runner drives one prompt, completion, output-file cycle: it reads
// the prompt, calls the completion API with bounded backoff, validates the
// reply, and writes either the response or a failure explanation.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/CodexForgeBR/openrouter-helper/internal/config"
	"github.com/CodexForgeBR/openrouter-helper/internal/exitcode"
	"github.com/CodexForgeBR/openrouter-helper/internal/logging"
	"github.com/CodexForgeBR/openrouter-helper/internal/openrouter"
)

// CompletionClient is the single API call the runner depends on.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req *openrouter.ChatRequest) (*openrouter.ChatResponse, error)
}

// Runner executes the helper cycle described by its configuration.
type Runner struct {
	cfg    *config.Config
	client CompletionClient
}

// New creates a runner for the given configuration and API client.
func New(cfg *config.Config, client CompletionClient) *Runner {
	return &Runner{cfg: cfg, client: client}
}

// Run performs the full cycle and returns the process exit code.
//
// Failure handling is asymmetric on purpose: an unusable response (missing
// choices, empty content, failed JSON validation) writes an explanatory
// payload to the output file before exiting, while permanent API errors,
// retry exhaustion, and missing inputs leave no output file at all.
func (r *Runner) Run(ctx context.Context) int {
	start := time.Now()

	prompt, err := os.ReadFile(r.cfg.PromptFile)
	if err != nil {
		logging.Error(fmt.Sprintf("Prompt file not found: %s", r.cfg.PromptFile))
		return exitcode.Error
	}

	logging.Debug(fmt.Sprintf("Requesting completion from %s (timeout %ds, max %d attempts)",
		r.cfg.Model, r.cfg.RequestTimeout, r.cfg.MaxRetries))

	var content string
	attemptErr := RetryWithBackoff(ctx, RetryConfig{
		MaxAttempts: r.cfg.MaxRetries,
		BaseDelay:   time.Duration(r.cfg.RetryDelay) * time.Second,
		OnRetry:     logRetry,
	}, func() error {
		resp, err := r.client.CreateChatCompletion(ctx, &openrouter.ChatRequest{
			Model:    r.cfg.Model,
			Messages: openrouter.UserMessage(string(prompt)),
		})
		if err != nil {
			return err
		}

		content, err = resp.FirstContent()
		if err != nil {
			return err
		}

		if r.cfg.ValidateJSON && !json.Valid([]byte(content)) {
			return &openrouter.RequestError{
				Kind:    openrouter.KindJSONInvalid,
				Message: "Invalid JSON response",
			}
		}
		return nil
	})
	if attemptErr != nil {
		return r.reportFailure(attemptErr)
	}

	if err := os.WriteFile(r.cfg.OutputFile, []byte(content), 0644); err != nil {
		logging.Error(fmt.Sprintf("Failed to write output file: %v", err))
		return exitcode.Error
	}

	logging.Success(fmt.Sprintf("AI response written to %s", r.cfg.OutputFile))
	logging.Debug(fmt.Sprintf("Completed in %s", logging.FormatDuration(time.Since(start))))
	return exitcode.Success
}

// reportFailure maps a failed request loop to its exit code and side effects.
func (r *Runner) reportFailure(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return exitcode.Interrupted
	}

	var reqErr *openrouter.RequestError
	if !errors.As(err, &reqErr) {
		logging.Error(fmt.Sprintf("AI request failed: %v", err))
		return exitcode.Error
	}

	// A retryable kind surviving the loop means attempts ran out.
	if reqErr.Retryable() {
		logging.Error("Max retries exceeded. Failed to get AI response.")
		return exitcode.Error
	}

	if reqErr.Kind == openrouter.KindServerPermanent {
		logging.Error(fmt.Sprintf("API error: %d - %s", reqErr.StatusCode, reqErr.Message))
		return exitcode.Error
	}

	message := fmt.Sprintf("AI request failed: %s", reqErr.Error())
	if writeErr := WriteFailurePayload(r.cfg.OutputFile, message); writeErr != nil {
		logging.Error(fmt.Sprintf("Failed to write output file: %v", writeErr))
	}
	logging.Error(message)
	return exitcode.Error
}

// logRetry reports a failed attempt and the upcoming backoff pause.
func logRetry(attempt int, delay time.Duration, err error) {
	secs := int(delay / time.Second)

	var reqErr *openrouter.RequestError
	if !errors.As(err, &reqErr) {
		logging.Error(fmt.Sprintf("Request failed: %v. Retrying in %ds...", err, secs))
		return
	}

	switch reqErr.Kind {
	case openrouter.KindServerTransient:
		logging.Error(fmt.Sprintf("API error: %d - %s. Retrying in %ds...", reqErr.StatusCode, reqErr.Message, secs))
	default:
		logging.Error(fmt.Sprintf("Network error or rate limit exceeded: %v. Retrying in %ds...", reqErr, secs))
	}

	if reqErr.RateLimit != nil && reqErr.RateLimit.Detected {
		logging.Debug(reqErr.RateLimit.String())
	}
}
