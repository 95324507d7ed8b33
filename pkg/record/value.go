package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/sheetdiff/pkg/constants"
)

// Kind identifies the scalar type held by a Value.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindDate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "null"
	}
}

// Value is a single cell: a string, a number, a date, or null.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	date time.Time
}

// Null returns the absent value.
func Null() Value {
	return Value{}
}

// String returns a string value. The text is kept as given; trimming only
// happens when the value is normalized for comparison.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Date returns a date value.
func Date(t time.Time) Value {
	return Value{kind: KindDate, date: t}
}

// Of converts a Go scalar into a Value. Unsupported types become strings
// through their default formatting.
func Of(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case string:
		return String(x)
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case float32:
		return Number(float64(x))
	case float64:
		return Number(x)
	case time.Time:
		return Date(x)
	case *string:
		if x == nil {
			return Null()
		}
		return String(*x)
	default:
		return String(fmt.Sprint(x))
	}
}

// Kind returns the value kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Present reports whether the value is not null.
func (v Value) Present() bool {
	return v.kind != KindNull
}

// Text returns the raw text of a string value and false for other kinds.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Float returns the number held by a numeric value.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Time returns the date held by a date value.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.date, true
}

// Normalized returns the trimmed string form used for equality.
// No type coercion happens beyond string conversion: Number(1) and
// String("1") normalize equal, String("1.0") and String("1") do not.
func (v Value) Normalized() string {
	switch v.kind {
	case KindString:
		return strings.TrimSpace(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		return v.date.Format(constants.TimeFormatValue)
	default:
		return ""
	}
}

// String returns the display form of the value. Strings are returned as
// read; null renders as the empty string.
func (v Value) String() string {
	if v.kind == KindString {
		return v.str
	}
	return v.Normalized()
}

// Interface returns the value as a plain Go scalar (nil, string, float64
// or time.Time), suitable for writing into a spreadsheet cell.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindDate:
		return v.date
	default:
		return nil
	}
}

// Equal reports whether two values are identical in kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindDate:
		return v.date.Equal(o.date)
	default:
		return true
	}
}
