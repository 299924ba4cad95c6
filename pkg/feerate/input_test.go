package feerate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestNewDefaultsToPercentage(t *testing.T) {
	in := New()
	got := in.Value()
	if got.Kind != Percentage {
		t.Fatalf("expected percentage, got %q", got.Kind)
	}
	if got.Amount.Valid {
		t.Fatalf("expected absent amount, got %v", got.Amount)
	}
	if !got.Min.Valid || !got.Min.Decimal.IsZero() || !got.Max.Valid || !got.Max.Decimal.IsZero() {
		t.Fatalf("expected zero bounds, got %+v", got)
	}
	if in.Mode() != Uncontrolled {
		t.Fatalf("expected uncontrolled by default")
	}
}

func TestLayoutTable(t *testing.T) {
	cases := []struct {
		kind    Kind
		fields  []SubField
		divisor int
		width   string
	}{
		{Flat, []SubField{FieldKind, FieldAmount}, 2, "50%"},
		{Percentage, []SubField{FieldKind, FieldAmount, FieldMin}, 3, "33.3333%"},
		{CappedPercentage, []SubField{FieldKind, FieldAmount, FieldMin, FieldMax}, 4, "25%"},
		{Kind("other"), []SubField{FieldKind, FieldAmount, FieldMin, FieldMax}, 4, "25%"},
	}
	for _, tc := range cases {
		in := New(WithValue(Value{Kind: tc.kind}))
		layout := in.Layout()
		if diff := cmp.Diff(tc.fields, layout.Fields); diff != "" {
			t.Fatalf("%s fields mismatch (-want +got):\n%s", tc.kind, diff)
		}
		if layout.Divisor != tc.divisor {
			t.Fatalf("%s: expected divisor %d, got %d", tc.kind, tc.divisor, layout.Divisor)
		}
		if layout.ColumnWidth() != tc.width {
			t.Fatalf("%s: expected width %s, got %s", tc.kind, tc.width, layout.ColumnWidth())
		}
		if len(in.Views()) != len(tc.fields) {
			t.Fatalf("%s: expected %d views", tc.kind, len(tc.fields))
		}
	}
}

func TestUncontrolledEditsUpdateStateAndNotify(t *testing.T) {
	var changes []Value
	in := New(WithOnChange(func(v Value) { changes = append(changes, v) }))

	in.SetKind(CappedPercentage)
	in.SetMin(Amt("1"))
	in.SetMax(Amt("9"))
	in.SetKind(Flat)
	in.SetKind(CappedPercentage)

	got := in.Value()
	if !got.Min.Decimal.Equal(decimal.NewFromInt(1)) || !got.Max.Decimal.Equal(decimal.NewFromInt(9)) {
		t.Fatalf("expected bounds to survive kind switches, got %+v", got)
	}
	if len(changes) != 5 {
		t.Fatalf("expected 5 change notifications, got %d", len(changes))
	}
	last := changes[len(changes)-1]
	if !last.Equal(got) {
		t.Fatalf("callback should receive the full merged value, got %+v", last)
	}
}

func TestControlledEditsOnlyNotify(t *testing.T) {
	var changes []Value
	external := Value{Kind: Flat, Amount: Amt("5")}
	in := New(
		WithMode(Controlled),
		WithValue(external),
		WithOnChange(func(v Value) { changes = append(changes, v) }),
	)

	in.SetAmount(Amt("7"))
	if !in.Value().Amount.Decimal.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("controlled input must keep the external value, got %v", in.Value().Amount)
	}
	if len(changes) != 1 || !changes[0].Amount.Decimal.Equal(decimal.NewFromInt(7)) || changes[0].Kind != Flat {
		t.Fatalf("expected merged change, got %+v", changes)
	}

	if err := in.SetValue(Value{Kind: CappedPercentage, Amount: Amt("2")}); err != nil {
		t.Fatalf("set value: %v", err)
	}
	got := in.Value()
	if got.Kind != CappedPercentage || !got.Min.Valid || !got.Min.Decimal.IsZero() {
		t.Fatalf("expected replaced state with defaults, got %+v", got)
	}
}

func TestSetValueRequiresControlled(t *testing.T) {
	in := New()
	if err := in.SetValue(Value{Kind: Flat}); !errors.Is(err, ErrUncontrolled) {
		t.Fatalf("expected ErrUncontrolled, got %v", err)
	}
	if in.Value().Kind != Percentage {
		t.Fatalf("state must not change")
	}
}

func TestEditParsesAndClamps(t *testing.T) {
	in := New()
	if err := in.Edit(FieldAmount, "12.345"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got := in.Value().Amount.Decimal.String(); got != "12.35" {
		t.Fatalf("expected rounding to 2 places, got %s", got)
	}
	if err := in.Edit(FieldMin, "-3"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !in.Value().Min.Decimal.IsZero() {
		t.Fatalf("expected clamp to zero, got %v", in.Value().Min.Decimal)
	}
	if err := in.Edit(FieldAmount, "abc"); !errors.Is(err, ErrInvalidNumber) {
		t.Fatalf("expected ErrInvalidNumber, got %v", err)
	}
	if err := in.Edit(FieldKind, "capPercentage"); err != nil || in.Value().Kind != CappedPercentage {
		t.Fatalf("expected kind edit, got %v %q", err, in.Value().Kind)
	}
	if err := in.Edit(FieldKind, "bogus"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestViewsTips(t *testing.T) {
	in := New(WithValue(Value{Kind: Flat}))
	views := in.Views()
	if views[1].Tip != "每笔收费: 0元" {
		t.Fatalf("unexpected amount tip %q", views[1].Tip)
	}
	if views[1].Placeholder != ReasonAmountRequired {
		t.Fatalf("unexpected placeholder %q", views[1].Placeholder)
	}

	in = New(
		WithValue(Value{Kind: CappedPercentage, Amount: Amt("1.5"), Max: Amt("10")}),
		WithFieldOptions(FieldMax, FieldOptions{Tip: "上限"}),
	)
	views = in.Views()
	if views[1].Tip != "每笔收费: 1.5%" {
		t.Fatalf("unexpected amount tip %q", views[1].Tip)
	}
	if views[2].Tip != "每笔最低收费: 0" {
		t.Fatalf("unexpected min tip %q", views[2].Tip)
	}
	if views[3].Tip != "上限: 10" || views[3].Text != "10.00" {
		t.Fatalf("unexpected max view %+v", views[3])
	}
}
