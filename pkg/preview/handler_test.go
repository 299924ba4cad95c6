package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/diag"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	forms, err := definition.NewSet(
		definition.Form{Name: "merchant", Title: "商户", Groups: testsupport.MerchantGroups()},
		definition.Form{Name: "store", Title: "门店"},
	)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("html renderer: %v", err)
	}
	return NewHandler(forms, renderer, opts...)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestListForms(t *testing.T) {
	rec := get(t, newTestHandler(t), "/forms")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Forms []string `json:"forms"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"merchant", "store"}, body.Forms); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestShowFormCreate(t *testing.T) {
	rec := get(t, newTestHandler(t), "/forms/merchant")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "商户名称") {
		t.Fatalf("expected the name label in %s", body)
	}
	if strings.Contains(body, `name="id"`) {
		t.Fatalf("create page should hide the id field")
	}
}

func TestShowFormUpdateUsesValues(t *testing.T) {
	h := newTestHandler(t, WithValues(func(_ context.Context, form string) (map[string]any, error) {
		if form != "merchant" {
			t.Fatalf("unexpected form %q", form)
		}
		return testsupport.MerchantValues(), nil
	}))
	rec := get(t, h, "/forms/merchant?mode=update")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "一号商户") {
		t.Fatalf("expected the stored name in the update page")
	}
}

func TestShowFormErrors(t *testing.T) {
	sink := &diag.Recorder{}
	h := newTestHandler(t,
		WithDiagnostics(sink),
		WithValues(func(context.Context, string) (map[string]any, error) {
			return nil, errors.New("backend down")
		}),
	)

	cases := []struct {
		target string
		status int
		code   string
	}{
		{"/forms/missing", http.StatusNotFound, "FORM_NOT_FOUND"},
		{"/forms/merchant?mode=view", http.StatusBadRequest, "INVALID_MODE"},
		{"/forms/merchant?mode=update", http.StatusBadGateway, "VALUES_FAILED"},
	}
	for _, tc := range cases {
		rec := get(t, h, tc.target)
		if rec.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.target, tc.status, rec.Code)
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode: %v", tc.target, err)
		}
		if body["code"] != tc.code {
			t.Fatalf("%s: expected code %s, got %v", tc.target, tc.code, body)
		}
	}
	if diff := cmp.Diff([]string{"preview.values_failed"}, sink.Codes()); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

var _ render.Renderer = (*html.Renderer)(nil)
