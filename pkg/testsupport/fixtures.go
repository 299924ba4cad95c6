// Package testsupport holds fixtures shared by renderer and server tests.
package testsupport

import (
	"bytes"
	"io"
	"testing"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/values"
)

// MerchantGroups is a representative form: a hidden id, a required name,
// a fee rate, a status selector and a repeatable contact list.
func MerchantGroups() []model.FieldGroup {
	return []model.FieldGroup{
		{
			Title: "基础信息",
			Fields: []model.FieldNode{
				{Name: model.Path{"id"}, Label: "ID", CreateHidden: true},
				{Name: model.Path{"name"}, Label: "商户名称", Required: true, Placeholder: "请输入"},
				{Name: model.Path{"fee"}, Label: "费率", ValueKind: model.KindFeeRate},
				{
					Name:      model.Path{"status"},
					Label:     "状态",
					ValueKind: model.KindSelect,
					Options: []model.Option{
						{Label: "启用", Value: "ENABLED"},
						{Label: "停用", Value: "DISABLED"},
					},
				},
			},
		},
		{
			Title: "联系人",
			Fields: []model.FieldNode{{
				Name:  model.Path{"contacts"},
				Label: "联系人",
				SubGroups: []model.FieldGroup{{
					Fields: []model.FieldNode{
						{Name: model.Path{"phone"}, Label: "电话", Required: true},
					},
				}},
			}},
		},
	}
}

// MerchantValues matches MerchantGroups.
func MerchantValues() map[string]any {
	return map[string]any{
		"id":     "m-1",
		"name":   "一号商户",
		"fee":    map[string]any{"type": "cap", "value": "1.5"},
		"status": "ENABLED",
		"contacts": []any{
			map[string]any{"phone": "13800000000"},
		},
	}
}

// MerchantDocument renders MerchantGroups for page with MerchantValues.
func MerchantDocument(page model.PageContext) render.Document {
	vals := MerchantValues()
	elements := render.RenderGroups(MerchantGroups(), render.Options{
		Page:   &page,
		Values: values.MapReader(vals),
	})
	return render.Document{
		Name:     "merchant",
		Title:    "商户",
		Page:     page,
		Elements: elements,
		Values:   vals,
	}
}

// CaptureOutput runs fn with a buffer and returns both the returned string
// and what fn wrote.
func CaptureOutput(t *testing.T, fn func(w io.Writer) (string, error)) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	result, err := fn(&buf)
	if err != nil {
		t.Fatalf("capture output: %v", err)
	}
	return result, buf.String()
}
