package runner

import (
	"fmt"
	"os"
)

// failurePayload is written to the output file when the API answered but the
// response was unusable. Downstream workflow steps read the output file as a
// comment body, so they get an explanation instead of nothing.
const failurePayload = `## ⚠️ AI Request Failed

Error: %s

This could be due to:
- API rate limiting
- Large input size
- Temporary service issues

Please retry later or request manual assistance.`

// FailurePayload renders the explanatory output-file body for a failed request.
func FailurePayload(message string) string {
	return fmt.Sprintf(failurePayload, message)
}

// WriteFailurePayload writes the explanation to the output path.
func WriteFailurePayload(path, message string) error {
	return os.WriteFile(path, []byte(FailurePayload(message)), 0644)
}
