// Package record defines the tabular data model shared by every stage of a
// reconciliation: scalar cell values, ordered records, and the two sources
// records are read from.
package record

// Source identifies which of the two inputs a record was read from.
type Source uint8

// The two reconciled sources.
const (
	SourceA Source = iota
	SourceB
)

// String returns "A" or "B".
func (s Source) String() string {
	if s == SourceB {
		return "B"
	}
	return "A"
}

// Other returns the opposite source.
func (s Source) Other() Source {
	if s == SourceB {
		return SourceA
	}
	return SourceB
}

// Field is one named value in a record.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered mapping from field name to value. A Record is
// treated as immutable: With returns a modified copy.
type Record struct {
	fields []Field
	index  map[string]int
}

// New builds a record from fields in order. A repeated name keeps its first
// position and takes the last value.
func New(fields ...Field) Record {
	r := Record{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if i, ok := r.index[f.Name]; ok {
			r.fields[i].Value = f.Value
			continue
		}
		r.index[f.Name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// FromRow builds a record from a header and a row of values. Missing
// trailing values are null.
func FromRow(header []string, values []Value) Record {
	fields := make([]Field, len(header))
	for i, name := range header {
		v := Null()
		if i < len(values) {
			v = values[i]
		}
		fields[i] = Field{Name: name, Value: v}
	}
	return New(fields...)
}

// FromMap builds a record from an ordered list of names and a map of Go
// scalars. Convenient in tests.
func FromMap(names []string, values map[string]any) Record {
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Name: name, Value: Of(values[name])}
	}
	return New(fields...)
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Has reports whether the record defines the field.
func (r Record) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Get returns the field value and whether the field exists.
func (r Record) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Null(), false
	}
	return r.fields[i].Value, true
}

// Value returns the field value, or null when the field does not exist.
func (r Record) Value(name string) Value {
	v, _ := r.Get(name)
	return v
}

// Names returns field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Fields returns a copy of the fields in order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// With returns a copy of the record with the field set. An existing field
// keeps its position; a new one is appended.
func (r Record) With(name string, v Value) Record {
	fields := r.Fields()
	if i, ok := r.index[name]; ok {
		fields[i].Value = v
		return New(fields...)
	}
	return New(append(fields, Field{Name: name, Value: v})...)
}

// Equal reports whether two records hold the same fields in the same order.
func (r Record) Equal(o Record) bool {
	if len(r.fields) != len(o.fields) {
		return false
	}
	for i, f := range r.fields {
		g := o.fields[i]
		if f.Name != g.Name || !f.Value.Equal(g.Value) {
			return false
		}
	}
	return true
}
