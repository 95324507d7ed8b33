package sheetdiff

import (
	"github.com/agentstation/utc"

	"github.com/agentstation/sheetdiff/pkg/constants"
	"github.com/agentstation/sheetdiff/pkg/errors"
	"github.com/agentstation/sheetdiff/pkg/layout"
)

// Option is a function that configures a Client
type Option func(*config) error

// config holds the client configuration
type config struct {
	layout        *layout.Layout
	sheetA        string
	sheetB        string
	referenceTime utc.Time
	ignoredFields []string
}

// defaultConfig returns the default client configuration
func defaultConfig() *config {
	return &config{
		layout: layout.Default(),
		sheetA: constants.DefaultSheetA,
		sheetB: constants.DefaultSheetB,
	}
}

// options applies the given options to the client
func (c *client) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return err
		}
	}
	return nil
}

// WithLayout configures the comparison layout
func WithLayout(l *layout.Layout) Option {
	return func(c *config) error {
		if l == nil {
			return errors.NewValidationError("layout", nil, "layout cannot be nil")
		}
		c.layout = l
		return nil
	}
}

// WithLayoutFile loads the comparison layout from a YAML file
func WithLayoutFile(path string) Option {
	return func(c *config) error {
		l, err := layout.Load(path)
		if err != nil {
			return err
		}
		c.layout = l
		return nil
	}
}

// WithSheets configures the sheet names read as Source A and Source B
func WithSheets(a, b string) Option {
	return func(c *config) error {
		if a == "" || b == "" {
			return errors.NewValidationError("sheets", nil, "both sheet names are required")
		}
		c.sheetA = a
		c.sheetB = b
		return nil
	}
}

// WithReferenceTime fixes the time end dates are compared against.
// Without it each comparison uses the current time.
func WithReferenceTime(t utc.Time) Option {
	return func(c *config) error {
		c.referenceTime = t
		return nil
	}
}

// WithIgnoredFields excludes fields from every block verdict
func WithIgnoredFields(fields ...string) Option {
	return func(c *config) error {
		c.ignoredFields = append(c.ignoredFields, fields...)
		return nil
	}
}
