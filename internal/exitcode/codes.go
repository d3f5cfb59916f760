// Package exitcode defines named exit codes for the openrouter-helper CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and CI pipelines.
package exitcode

// Exit code constants for the helper's termination conditions.
const (
	Success     = 0   // Response written to the output file
	Error       = 1   // Missing inputs, API failure, validation failure, retries exhausted
	Interrupted = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
