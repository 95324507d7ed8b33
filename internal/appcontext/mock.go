package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/sheetdiff"
	"github.com/agentstation/sheetdiff/pkg/logging"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	ClientFunc            func() (sheetdiff.Client, error)
	ClientWithOptionsFunc func(...sheetdiff.Option) (sheetdiff.Client, error)
	DefaultsValue         Defaults
	LoggerFunc            func() *zerolog.Logger
	Format                string
	DisableColor          bool
	VersionFunc           func() string
}

// Client returns a client using the mock function or a default client.
func (m *Mock) Client() (sheetdiff.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return sheetdiff.New()
}

// ClientWithOptions returns a client using the mock function or a new client
// built from opts.
func (m *Mock) ClientWithOptions(opts ...sheetdiff.Option) (sheetdiff.Client, error) {
	if m.ClientWithOptionsFunc != nil {
		return m.ClientWithOptionsFunc(opts...)
	}
	return sheetdiff.New(opts...)
}

// Defaults returns the configured defaults.
func (m *Mock) Defaults() Defaults {
	return m.DefaultsValue
}

// Logger returns a logger using the mock function or a nop logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat returns the configured format.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// NoColor reports whether color is disabled.
func (m *Mock) NoColor() bool {
	return m.DisableColor
}

// Version returns a version using the mock function or "test".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "test"
}

// Commit returns "unknown".
func (m *Mock) Commit() string {
	return "unknown"
}

// Date returns "unknown".
func (m *Mock) Date() string {
	return "unknown"
}

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string {
	return "test"
}

var _ Interface = (*Mock)(nil)
