// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App type so they can be tested with a mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/sheetdiff"
)

// Defaults holds the configured inputs a command falls back to when its
// own flags are not set.
type Defaults struct {
	// Input is the workbook holding Source A, and Source B unless InputB is set.
	Input string
	// InputB is an optional second workbook holding Source B.
	InputB string
	SheetA string
	SheetB string
	// Output is the report workbook path.
	Output string
}

// Interface defines the application context interface that commands need.
type Interface interface {
	// Client returns the default client, creating it lazily if needed.
	Client() (sheetdiff.Client, error)

	// ClientWithOptions creates a new client from the configured options
	// followed by opts, so opts take precedence.
	ClientWithOptions(opts ...sheetdiff.Option) (sheetdiff.Client, error)

	// Defaults returns the configured inputs and report path.
	Defaults() Defaults

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured summary format (table, json, yaml...).
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
