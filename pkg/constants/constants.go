// Package constants provides shared constants used throughout the sheetdiff codebase.
// This includes default sheet and column names, file permissions, and the
// formatting limits used when rendering reports.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Timeout constants
const (
	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Default workbook names
const (
	// DefaultSheetA is the sheet read as Source A
	DefaultSheetA = "Coco Coco"

	// DefaultSheetB is the sheet read as Source B
	DefaultSheetB = "Coco Coco Land"

	// DefaultOutputPath is where the report is written when no path is configured
	DefaultOutputPath = "Compare_Report.xlsx"

	// ComparisonSheet is the sheet holding every block side by side
	ComparisonSheet = "Comparison"

	// LegendSheet is the sheet describing fills and borders
	LegendSheet = "Legend"
)

// Default source labels used in column names and comments
const (
	// DefaultLabelA prefixes Source A columns (Table1_Noel)
	DefaultLabelA = "Table1"

	// DefaultLabelB prefixes Source B columns (Table2_Noel)
	DefaultLabelB = "Table2"

	// DefaultShortLabelA is used inside diff detail comments
	DefaultShortLabelA = "T1"

	// DefaultShortLabelB is used inside diff detail comments
	DefaultShortLabelB = "T2"
)

// Default field names
const (
	// DefaultKeySeparator splits a raw identifier into primary and secondary keys
	DefaultKeySeparator = "_"

	// DefaultIdentityField holds the composite identifier
	DefaultIdentityField = "Noel"

	// DefaultStatusTextField holds the free-text operational state
	DefaultStatusTextField = "Daytona"

	// DefaultStatusDateField holds the end date used for activity
	DefaultStatusDateField = "Elastic Daytona"

	// DefaultStatusColumn receives the derived activity state
	DefaultStatusColumn = "Status"
)

// Rendering limits
const (
	// MinColumnWidth is the narrowest column written to a report sheet
	MinColumnWidth = 10

	// MaxColumnWidth is the widest column written to a report sheet
	MaxColumnWidth = 50

	// ColumnPadding is added to the longest value in a column
	ColumnPadding = 2
)

// Format constants
const (
	// TimeFormatValue is how date values are rendered as text
	TimeFormatValue = "2006-01-02 15:04:05"

	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339
)
