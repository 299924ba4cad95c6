package feerate

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Kind selects how the fee is charged. The string values are the wire names.
type Kind string

const (
	// Flat charges a fixed amount per transaction.
	Flat Kind = "cap"
	// Percentage charges a share of the transaction with a minimum.
	Percentage Kind = "percentage"
	// CappedPercentage charges a share bounded by a minimum and a maximum.
	CappedPercentage Kind = "capPercentage"
)

var kindLabels = map[Kind]string{
	Flat:             "固定收费",
	Percentage:       "百分比收费",
	CappedPercentage: "百分比封顶收费",
}

// Kinds returns the selectable kinds in display order.
func Kinds() []Kind {
	return []Kind{Flat, Percentage, CappedPercentage}
}

// Known reports whether k is one of the three kinds.
func (k Kind) Known() bool {
	_, ok := kindLabels[k]
	return ok
}

// Label returns the display text, or the raw value for unknown kinds.
func (k Kind) Label() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return string(k)
}

// Unit is the suffix shown next to the amount.
func (k Kind) Unit() string {
	if k == Flat {
		return "元"
	}
	return "%"
}

// ParseKind accepts a wire name or a display label.
func ParseKind(raw string) (Kind, bool) {
	raw = strings.TrimSpace(raw)
	for _, kind := range Kinds() {
		if raw == string(kind) || raw == kind.Label() {
			return kind, true
		}
	}
	return Kind(raw), false
}

// KindOptions renders the kinds as selector options.
func KindOptions() []model.Option {
	kinds := Kinds()
	out := make([]model.Option, len(kinds))
	for i, kind := range kinds {
		out[i] = model.Option{Label: kind.Label(), Value: string(kind)}
	}
	return out
}
