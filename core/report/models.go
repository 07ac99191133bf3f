package report

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core"
)

var ErrUnknownReport = errors.New("unknown report")

// Type selects which report to build.
type Type int

const (
	TypeMembers Type = iota
	TypeClasses
	TypeTrainers
	TypeAnalytics
	TypeFinancial
	TypeComprehensive
)

var typeNames = map[Type]string{
	TypeMembers:       "members",
	TypeClasses:       "classes",
	TypeTrainers:      "trainers",
	TypeAnalytics:     "analytics",
	TypeFinancial:     "financial",
	TypeComprehensive: "comprehensive",
}

func ParseType(s string) (Type, error) {
	for typ, name := range typeNames {
		if name == s {
			return typ, nil
		}
	}
	return 0, core.NewValidationError(ErrUnknownReport, core.FieldError{Field: "type", Error: "unknown report type"})
}

func (t Type) String() string { return typeNames[t] }

// Format selects the output rendering.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
	FormatHTML
)

var formats = map[Format]struct {
	name        string
	ext         string
	contentType string
}{
	FormatCSV:  {name: "csv", ext: "csv", contentType: "text/csv"},
	FormatXLSX: {name: "xlsx", ext: "xlsx", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	FormatHTML: {name: "html", ext: "html", contentType: "text/html; charset=utf-8"},
}

func ParseFormat(s string) (Format, error) {
	for format, meta := range formats {
		if meta.name == s {
			return format, nil
		}
	}
	return 0, core.NewValidationError(ErrUnknownReport, core.FieldError{Field: "format", Error: "unknown report format"})
}

func (f Format) String() string      { return formats[f].name }
func (f Format) ContentType() string { return formats[f].contentType }

// Filename is the suggested download name for a report.
func Filename(t Type, f Format) string {
	return fmt.Sprintf("%s_report_%s.%s", t, core.Today(), formats[f].ext)
}
