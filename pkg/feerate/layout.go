package feerate

import (
	"strconv"
	"strings"
)

// SubField names one part of the composite input. Values match the wire
// names of Value.
type SubField string

const (
	FieldKind   SubField = "type"
	FieldAmount SubField = "value"
	FieldMin    SubField = "min"
	FieldMax    SubField = "max"
)

// SubFields lists every sub-field in display order.
func SubFields() []SubField {
	return []SubField{FieldKind, FieldAmount, FieldMin, FieldMax}
}

// Layout is the visible sub-field set for a kind and the number of equal
// columns it is divided into.
type Layout struct {
	Fields  []SubField
	Divisor int
}

// LayoutFor is a pure function of kind. Unknown kinds show every sub-field.
func LayoutFor(kind Kind) Layout {
	switch kind {
	case Flat:
		return Layout{Fields: []SubField{FieldKind, FieldAmount}, Divisor: 2}
	case Percentage:
		return Layout{Fields: []SubField{FieldKind, FieldAmount, FieldMin}, Divisor: 3}
	case CappedPercentage:
		return Layout{Fields: SubFields(), Divisor: 4}
	default:
		return Layout{Fields: SubFields(), Divisor: 4}
	}
}

// Visible reports whether field is shown.
func (l Layout) Visible(field SubField) bool {
	for _, candidate := range l.Fields {
		if candidate == field {
			return true
		}
	}
	return false
}

// ColumnWidth is the CSS width of one column, e.g. "50%".
func (l Layout) ColumnWidth() string {
	divisor := l.Divisor
	if divisor <= 0 {
		divisor = 1
	}
	width := strconv.FormatFloat(100/float64(divisor), 'f', 4, 64)
	width = strings.TrimRight(strings.TrimRight(width, "0"), ".")
	return width + "%"
}
