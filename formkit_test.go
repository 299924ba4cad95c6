package formkit_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	formkit "github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/pkg/model"
)

func TestGenerateHTMLFromDefinitions(t *testing.T) {
	files := fstest.MapFS{
		"forms.yaml": {Data: []byte(`forms:
  shop:
    title: 门店
    groups:
      - title: 基础信息
        fields:
          - name: name
            label: 门店名称
            required: true
`)},
	}
	forms, err := formkit.LoadDefinitions(files)
	if err != nil {
		t.Fatalf("load definitions: %v", err)
	}

	out, err := formkit.GenerateHTML(context.Background(), forms, "shop", model.PageContext{Created: true}, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "门店名称") {
		t.Fatalf("expected the field label in output:\n%s", out)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(formkit.EmbeddedTemplates(), "form.tmpl"); err != nil {
		t.Fatalf("expected the form template: %v", err)
	}
}
