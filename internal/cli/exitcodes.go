package cli

// Exit codes for CLI commands, following Unix conventions.
const (
	ExitSuccess = 0

	// ExitError covers database failures and anything unexpected.
	ExitError = 1

	// ExitUsage indicates missing or malformed arguments.
	ExitUsage = 2

	// ExitNotFound indicates a project or entry ID that does not exist.
	ExitNotFound = 3

	// ExitValidation indicates input that fails validation, e.g. a blank
	// entry title or an unknown theme mode.
	ExitValidation = 5
)
