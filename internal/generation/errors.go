package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when brief generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate research brief")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when a generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrInvalidRetryConfig is returned when the orchestrator is configured
	// with an invalid retry policy, e.g. a negative retry count
	ErrInvalidRetryConfig = errors.New("invalid retry configuration")
)
