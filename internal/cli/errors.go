// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Configuration errors
	ErrConfigInvalid   = "CONFIG_INVALID"
	ErrRegistryInvalid = "REGISTRY_INVALID"

	// Input errors
	ErrInvalidInput   = "INVALID_INPUT"
	ErrInvalidRunMode = "INVALID_RUNMODE"

	// File errors
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnSheetSkipped = "SHEET_SKIPPED"
	WarnReportFailed = "REPORT_NOT_WRITTEN"
)
