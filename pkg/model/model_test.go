package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"merchantName":  "Merchant Name",
		"merchant_name": "Merchant Name",
		"settleURL":     "Settle URL",
		"URLPath":       "URL Path",
		"merchantId":    "Merchant ID",
		"line2":         "Line 2",
		"":              "",
	}
	for in, want := range cases {
		if got := DefaultLabeler(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	node := FieldNode{Name: ParsePath("contacts.0.phoneNumber")}
	if got := node.DisplayLabel(); got != "Phone Number" {
		t.Fatalf("expected derived label, got %q", got)
	}
	node.Label = " 电话 "
	if got := node.DisplayLabel(); got != "电话" {
		t.Fatalf("expected configured label, got %q", got)
	}
}

func TestParsePath(t *testing.T) {
	if diff := cmp.Diff(Path{"items", "0", "name"}, ParsePath(" items. 0 .name ")); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	if !ParsePath("").Empty() {
		t.Fatalf("empty input must give an empty path")
	}
	base := Path{"items"}
	joined := base.Index(2).Join("name")
	if joined.String() != "items.2.name" || base.String() != "items" {
		t.Fatalf("join must not modify the receiver, got %q and %q", joined, base)
	}
}

func TestWidthPixels(t *testing.T) {
	cases := map[Width]int{WidthXS: 104, WidthMD: 328, "200": 200, "240px": 240}
	for width, want := range cases {
		got, ok := width.Pixels()
		if !ok || got != want {
			t.Fatalf("%q: expected %d, got %d (%v)", width, want, got, ok)
		}
	}
	if _, ok := Width("wide").Pixels(); ok {
		t.Fatalf("unknown tokens have no pixel width")
	}
}

func TestOverlay(t *testing.T) {
	base := Props{"span": 8, "offset": 1}
	got := Overlay(base, Props{"span": 12})
	if diff := cmp.Diff(Props{"span": 12, "offset": 1}, got); diff != "" {
		t.Fatalf("overlay mismatch (-want +got):\n%s", diff)
	}
	if base["span"] != 8 {
		t.Fatalf("overlay must not modify its inputs")
	}
	if Overlay(nil, nil) != nil {
		t.Fatalf("empty overlay must be nil")
	}
}

func TestElementWalkAndRefresh(t *testing.T) {
	dep := Element{
		Kind: ElementDependency,
		Observe: func(values ValueReader) []Element {
			v, _ := values.Get("kind")
			return []Element{{Kind: ElementField, Key: v.(string)}}
		},
	}
	refreshed := dep.Refresh(mapReader{"kind": "flat"})
	if len(refreshed.Children) != 1 || refreshed.Children[0].Key != "flat" {
		t.Fatalf("unexpected refresh %+v", refreshed)
	}

	tree := Element{Kind: ElementGroup, Key: "g", Children: []Element{{Key: "a"}, refreshed}}
	var keys []string
	tree.Walk(func(e Element) bool {
		keys = append(keys, e.Key)
		return e.Kind != ElementDependency
	})
	if diff := cmp.Diff([]string{"g", "a", ""}, keys); diff != "" {
		t.Fatalf("walk mismatch (-want +got):\n%s", diff)
	}
}

type mapReader map[string]any

func (m mapReader) Get(path string) (any, bool) {
	v, ok := m[path]
	return v, ok
}
