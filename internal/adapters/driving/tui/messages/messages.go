// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

// ChartCompleted carries a computed chart back to the model.
type ChartCompleted struct {
	Record *domain.ChartRecord
	Err    error
}

// Saved reports whether the chart was written to history.
func (m ChartCompleted) Saved() bool {
	return m.Err == nil && m.Record != nil && m.Record.ID != ""
}

// Field identifies a form input.
type Field int

const (
	// FieldGender is the gender input.
	FieldGender Field = iota
	// FieldDate is the birth date input.
	FieldDate
	// FieldHour is the birth hour input.
	FieldHour

	fieldCount
)

// FieldCount is the number of form fields.
const FieldCount = int(fieldCount)

// String returns the label of the field.
func (f Field) String() string {
	switch f {
	case FieldGender:
		return "Gender"
	case FieldDate:
		return "Date"
	case FieldHour:
		return "Hour"
	default:
		return "unknown"
	}
}

// Next returns the following field, wrapping around.
func (f Field) Next() Field {
	return Field((int(f) + 1) % FieldCount)
}

// Prev returns the preceding field, wrapping around.
func (f Field) Prev() Field {
	return Field((int(f) + FieldCount - 1) % FieldCount)
}
