package cli

// Exit codes for CLI commands, following Unix conventions.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error: storage failures or any error
	// that doesn't fit the categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage: missing required flags
	// or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested list, task, or tag doesn't exist.
	ExitNotFound = 3

	// ExitValidation indicates input that fails validation: empty names,
	// malformed colors, dates, or email addresses.
	ExitValidation = 5
)
