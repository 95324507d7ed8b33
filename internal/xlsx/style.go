package xlsx

import (
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/sheetdiff/pkg/differ"
	"github.com/agentstation/sheetdiff/pkg/record"
)

// Colors of the report.
const (
	colorSourceA   = "C6E0B4"
	colorSourceB   = "BDD7EE"
	colorMissing   = "FFC7CE"
	colorComment   = "FFFFFF"
	colorPair      = "FFEB9C"
	colorSeparator = "808080"
	colorMatch     = "800080"
	colorGap       = "FFA500"
	colorWhite     = "FFFFFF"
)

// thickBorder is the excelize border style index for a thick line.
const thickBorder = 5

// styleKey identifies a cell style. Equal keys share one workbook style.
type styleKey struct {
	fill      string
	border    string
	bold      bool
	fontColor string
	fontSize  float64
	wrap      bool
}

// styles creates workbook styles on first use.
type styles struct {
	file  *excelize.File
	cache map[styleKey]int
}

func newStyles(f *excelize.File) *styles {
	return &styles{file: f, cache: make(map[styleKey]int)}
}

// id returns the style id for a key, creating the style if needed.
func (s *styles) id(k styleKey) (int, error) {
	if id, ok := s.cache[k]; ok {
		return id, nil
	}

	style := &excelize.Style{}
	if k.fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{k.fill}}
	}
	if k.border != "" {
		style.Border = []excelize.Border{
			{Type: "left", Color: k.border, Style: thickBorder},
			{Type: "right", Color: k.border, Style: thickBorder},
			{Type: "top", Color: k.border, Style: thickBorder},
			{Type: "bottom", Color: k.border, Style: thickBorder},
		}
	}
	if k.bold || k.fontColor != "" || k.fontSize > 0 {
		style.Font = &excelize.Font{Bold: k.bold, Color: k.fontColor, Size: k.fontSize}
	}
	if k.wrap {
		style.Alignment = &excelize.Alignment{Vertical: "top", WrapText: true}
	}

	id, err := s.file.NewStyle(style)
	if err != nil {
		return 0, err
	}
	s.cache[k] = id
	return id, nil
}

// headerStyle is used for the first row of every table.
func headerStyle() styleKey {
	return styleKey{bold: true, wrap: true}
}

// separatorStyle is used for the block separator column.
func separatorStyle() styleKey {
	return styleKey{fill: colorSeparator, bold: true, fontColor: colorWhite, wrap: true}
}

// commentStyle is used for comment cells. The pair comment is highlighted.
func commentStyle(pair bool) styleKey {
	if pair {
		return styleKey{fill: colorPair, wrap: true}
	}
	return styleKey{fill: colorComment, wrap: true}
}

// valueStyle applies the outcome rules to a value cell. Outcome styling only
// applies when both sources have a column for the field.
func valueStyle(src record.Source, outcome differ.Outcome, paired bool) styleKey {
	k := styleKey{fill: colorSourceA, wrap: true}
	if src == record.SourceB {
		k.fill = colorSourceB
	}
	if !paired {
		return k
	}

	switch outcome {
	case differ.BothMissing:
		k.fill = colorMissing
	case differ.MissingInA:
		if src == record.SourceA {
			k.fill = colorMissing
		}
		k.border = colorGap
	case differ.MissingInB:
		if src == record.SourceB {
			k.fill = colorMissing
		}
		k.border = colorGap
	case differ.Match:
		k.border = colorMatch
	case differ.Mismatch:
		k.border = colorGap
	}
	return k
}
