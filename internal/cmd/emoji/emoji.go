// Package emoji provides symbol constants for CLI output.
// These symbols keep status lines consistent across the sheetdiff commands.
package emoji

const (
	// Success marks a clean comparison or a completed write.
	Success = "✓"

	// Error marks a failed command.
	Error = "✗"

	// Warning marks gaps, many-to-many keys and excluded records.
	Warning = "!"

	// Info marks informational lines such as the report path.
	Info = "i"
)
