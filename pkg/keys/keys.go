// Package keys splits raw identifiers into the primary grouping key and an
// optional secondary discriminator.
package keys

import (
	"strings"

	"github.com/agentstation/sheetdiff/pkg/record"
)

// Key is a normalized composite identifier.
type Key struct {
	// Primary groups records across sources.
	Primary string

	// Secondary discriminates records sharing a primary key. Empty when
	// HasSecondary is false.
	Secondary string

	// HasSecondary reports whether the identifier carried a separator.
	HasSecondary bool

	// Separator is the separator the identifier was split at. Empty when
	// HasSecondary is false.
	Separator string

	// Valid is false when the identifier was null or blank. Invalid keys
	// cannot be aligned.
	Valid bool
}

// String joins the key parts back with the separator they were split at.
func (k Key) String() string {
	if !k.Valid {
		return ""
	}
	if k.HasSecondary {
		return k.Primary + k.Separator + k.Secondary
	}
	return k.Primary
}

// Split normalizes a raw identifier. The value is trimmed and split at the
// first occurrence of sep. Both parts are kept verbatim, so leading zeros
// survive and nothing is coerced to a number.
func Split(v record.Value, sep string) Key {
	if v.IsNull() {
		return Key{}
	}

	s := v.Normalized()
	if s == "" {
		return Key{}
	}

	if sep != "" {
		if left, right, found := strings.Cut(s, sep); found {
			return Key{Primary: left, Secondary: right, HasSecondary: true, Separator: sep, Valid: true}
		}
	}

	return Key{Primary: s, Valid: true}
}
