package differ

import "github.com/agentstation/sheetdiff/internal/matcher"

// Option is a functional option for configuring a Differ.
type Option func(*differ)

// WithIgnoredFields excludes fields from the gap scan. Ignored fields are
// still classified and displayed. Each entry is a field name or a glob
// pattern (Coco*); entries wrapped in slashes are regular expressions.
// An entry that does not compile is matched by exact name.
func WithIgnoredFields(fields ...string) Option {
	return func(d *differ) {
		for _, field := range fields {
			set, err := matcher.NewSet(field)
			if err != nil {
				d.ignoreFields[field] = true
				continue
			}
			d.ignorePatterns = append(d.ignorePatterns, set)
		}
	}
}
