// Package layout describes how two sources are compared and presented: the
// source labels, which fields carry the identifier and the activity inputs,
// and the ordered blocks of fields with their comment policies.
//
// A layout is configuration, not engine logic. The default layout matches
// the two workbook sheets the tool was first written for; any other pair of
// sheets can be reconciled by loading a YAML layout.
package layout

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/sheetdiff/pkg/constants"
	"github.com/agentstation/sheetdiff/pkg/errors"
	"github.com/agentstation/sheetdiff/pkg/record"
)

// Kind selects the comment policy of a block.
type Kind string

// Block kinds.
const (
	// KindIdentity reports cardinality, activity, verdict and pair detail.
	KindIdentity Kind = "identity"
	// KindDetailed reports presence, verdict and the list of diverging fields.
	KindDetailed Kind = "detailed"
	// KindSecondary displays values only.
	KindSecondary Kind = "secondary"
)

// Sides selects which sources contribute columns to a block.
type Sides string

// Block sides.
const (
	SidesBoth Sides = "both"
	SidesA    Sides = "a"
	SidesB    Sides = "b"
)

// Includes reports whether the source contributes columns.
func (s Sides) Includes(src record.Source) bool {
	switch s {
	case SidesA:
		return src == record.SourceA
	case SidesB:
		return src == record.SourceB
	default:
		return true
	}
}

// Label names a source in column headers and comments.
type Label struct {
	// Name prefixes columns (Table1_Noel) and appears in comments.
	Name string `yaml:"name"`
	// Short appears in diff details (T1=x).
	Short string `yaml:"short"`
}

// Labels holds the verdict wording of a block.
type Labels struct {
	Unavailable string `yaml:"unavailable,omitempty"`
	Gap         string `yaml:"gap,omitempty"`
	Match       string `yaml:"match,omitempty"`
}

// Block is a named, ordered group of fields compared and displayed together.
type Block struct {
	// Name is the separator column header (BLOC 1).
	Name string `yaml:"name"`
	// Suffix distinguishes comment columns (Comment1_B1).
	Suffix string `yaml:"suffix"`

	Kind   Kind     `yaml:"kind"`
	Sides  Sides    `yaml:"sides,omitempty"`
	Fields []string `yaml:"fields"`
	Labels Labels   `yaml:"labels,omitempty"`
}

// Layout is the full comparison configuration.
type Layout struct {
	A Label `yaml:"source_a"`
	B Label `yaml:"source_b"`

	// Separator splits the identifier into primary and secondary keys.
	Separator string `yaml:"separator"`

	// Identity is the field holding the composite identifier.
	Identity string `yaml:"identity"`

	// StatusText and StatusDate feed the activity classifier.
	StatusText string `yaml:"status_text"`
	StatusDate string `yaml:"status_date"`

	// StatusColumn receives the derived activity state.
	StatusColumn string `yaml:"status_column"`

	Blocks []Block `yaml:"blocks"`
}

// Label returns the label of a source.
func (l *Layout) Label(src record.Source) Label {
	if src == record.SourceB {
		return l.B
	}
	return l.A
}

// Column returns the output column name of a field for a source.
func (l *Layout) Column(src record.Source, field string) string {
	return l.Label(src).Name + "_" + field
}

// Block returns the block with the given name.
func (l *Layout) Block(name string) (Block, bool) {
	for _, b := range l.Blocks {
		if b.Name == name {
			return b, true
		}
	}
	return Block{}, false
}

// detailedFields is the exact order of the shared attribute block. Column
// pairing downstream relies on this order.
var detailedFields = []string{
	"Noel", "Daytona", "No Thing", "Pizza", "Pizza No Thing",
	"Thing Noel", "Pizza Coco Daytona", "Sun Daytona", "Elastic Daytona",
	"Hero Rome", "Coco Copo Opa Noel", "Coco Coco Opa Elastic Noel",
}

// secondaryFields exist only in Source B.
var secondaryFields = []string{
	"Fresca Ana", "Fusion Core", "Commercial Coco", "Super Resort", "Italy Coco Coco",
	"Virtual America", "Fun Coco Elastic", "Fun Coco Fun Noel", "Right",
}

// Default returns the built-in layout.
func Default() *Layout {
	return &Layout{
		A:            Label{Name: constants.DefaultLabelA, Short: constants.DefaultShortLabelA},
		B:            Label{Name: constants.DefaultLabelB, Short: constants.DefaultShortLabelB},
		Separator:    constants.DefaultKeySeparator,
		Identity:     constants.DefaultIdentityField,
		StatusText:   constants.DefaultStatusTextField,
		StatusDate:   constants.DefaultStatusDateField,
		StatusColumn: constants.DefaultStatusColumn,
		Blocks: []Block{
			{
				Name:   "BLOC 1",
				Suffix: "B1",
				Kind:   KindIdentity,
				Sides:  SidesBoth,
				Fields: []string{
					constants.DefaultIdentityField,
					constants.DefaultStatusTextField,
					constants.DefaultStatusDateField,
					constants.DefaultStatusColumn,
				},
			},
			{
				Name:   "BLOC 2",
				Suffix: "B2",
				Kind:   KindDetailed,
				Sides:  SidesBoth,
				Fields: append([]string(nil), detailedFields...),
			},
			{
				Name:   "BLOC 3",
				Suffix: "B3",
				Kind:   KindSecondary,
				Sides:  SidesB,
				Fields: append([]string(nil), secondaryFields...),
			},
		},
	}
}

// DefaultLabels returns the verdict wording used when a block leaves it blank.
func DefaultLabels(kind Kind) Labels {
	switch kind {
	case KindDetailed:
		return Labels{
			Unavailable: "N/A",
			Gap:         "shared dimensions GAP",
			Match:       "shared dimensions MATCH",
		}
	default:
		return Labels{
			Unavailable: "Missing Core Data",
			Gap:         "GAP",
			Match:       "MATCH",
		}
	}
}

// Resolved returns the block labels with blanks filled from the defaults.
func (b Block) Resolved() Labels {
	def := DefaultLabels(b.Kind)
	l := b.Labels
	if l.Unavailable == "" {
		l.Unavailable = def.Unavailable
	}
	if l.Gap == "" {
		l.Gap = def.Gap
	}
	if l.Match == "" {
		l.Match = def.Match
	}
	return l
}

// CommentColumn names the nth (1-based) comment column of the block.
func (b Block) CommentColumn(n int) string {
	return fmt.Sprintf("Comment%d_%s", n, b.Suffix)
}

// Validate checks the layout for errors that would make the output
// ambiguous.
func (l *Layout) Validate() error {
	if l.Identity == "" {
		return errors.NewValidationError("identity", l.Identity, "identity field is required")
	}
	if l.A.Name == "" || l.B.Name == "" {
		return errors.NewValidationError("source labels", nil, "both source labels are required")
	}
	if l.A.Name == l.B.Name {
		return errors.NewValidationError("source labels", l.A.Name, "source labels must differ")
	}
	if len(l.Blocks) == 0 {
		return errors.NewValidationError("blocks", nil, "at least one block is required")
	}

	names := make(map[string]bool, len(l.Blocks))
	suffixes := make(map[string]bool, len(l.Blocks))
	for i, b := range l.Blocks {
		field := fmt.Sprintf("blocks[%d]", i)
		if b.Name == "" {
			return errors.NewValidationError(field, nil, "block name is required")
		}
		if names[b.Name] {
			return errors.NewValidationError(field, b.Name, "duplicate block name")
		}
		names[b.Name] = true

		switch b.Kind {
		case KindIdentity, KindDetailed, KindSecondary:
		default:
			return errors.NewValidationError(field, b.Kind, fmt.Sprintf("unknown block kind %q", b.Kind))
		}

		switch b.Sides {
		case SidesBoth, SidesA, SidesB, "":
		default:
			return errors.NewValidationError(field, b.Sides, fmt.Sprintf("unknown sides %q", b.Sides))
		}

		if b.Kind != KindSecondary {
			if b.Suffix == "" {
				return errors.NewValidationError(field, nil, "blocks with comments need a suffix")
			}
			if suffixes[b.Suffix] {
				return errors.NewValidationError(field, b.Suffix, "duplicate block suffix")
			}
			suffixes[b.Suffix] = true
		}

		seen := make(map[string]bool, len(b.Fields))
		for _, f := range b.Fields {
			if seen[f] {
				return errors.NewValidationError(field, f, "duplicate field in block")
			}
			seen[f] = true
		}
	}
	return nil
}

// normalize fills defaults that a YAML document may omit.
func (l *Layout) normalize() {
	def := Default()
	if l.A.Name == "" {
		l.A = def.A
	}
	if l.B.Name == "" {
		l.B = def.B
	}
	if l.A.Short == "" {
		l.A.Short = l.A.Name
	}
	if l.B.Short == "" {
		l.B.Short = l.B.Name
	}
	if l.Separator == "" {
		l.Separator = def.Separator
	}
	for i := range l.Blocks {
		if l.Blocks[i].Sides == "" {
			l.Blocks[i].Sides = SidesBoth
		}
	}
}

// Parse decodes and validates a YAML layout.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	l.normalize()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Load reads a YAML layout file.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading layout %s: %w", path, err)
	}
	return l, nil
}

// Marshal encodes the layout as YAML.
func (l *Layout) Marshal() ([]byte, error) {
	return yaml.MarshalWithOptions(l,
		yaml.Indent(2),
		yaml.IndentSequence(true),
	)
}
