package openapi

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
)

const merchantDoc = `
openapi: 3.0.3
info:
  title: merchants
  version: "1.0"
paths:
  /merchants:
    post:
      operationId: createMerchant
      summary: 新增商户
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name:
                  type: string
                  title: 名称
                id:
                  type: string
                  x-formkit:
                    createHidden: true
                    editDisabled: true
                status:
                  type: string
                  enum: [ENABLED, DISABLED]
                fee:
                  type: object
                  x-formkit:
                    valueKind: feeRate
                    label: 费率
                  properties:
                    type:
                      type: string
                settle:
                  type: object
                  properties:
                    day:
                      type: integer
                    open:
                      type: boolean
                contacts:
                  type: array
                  items:
                    type: object
                    properties:
                      phone:
                        type: string
      responses:
        "200":
          description: ok
    get:
      operationId: listMerchants
      responses:
        "200":
          description: ok
`

func TestGroupsFromOperation(t *testing.T) {
	groups, err := GroupsFromOperation(context.Background(), []byte(merchantDoc), "createMerchant")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(groups) != 1 || groups[0].Title != "新增商户" {
		t.Fatalf("unexpected groups %+v", groups)
	}

	var names []string
	byName := map[string]model.FieldNode{}
	for _, field := range groups[0].Fields {
		names = append(names, field.Name.String())
		byName[field.Name.String()] = field
	}
	want := []string{"contacts", "fee", "id", "name", "settle.day", "settle.open", "status"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	if name := byName["name"]; !name.Required || name.Label != "名称" || name.ValueKind != model.KindText {
		t.Fatalf("unexpected name field %+v", name)
	}
	if id := byName["id"]; !id.CreateHidden || !id.EditDisabled {
		t.Fatalf("unexpected id field %+v", id)
	}
	if status := byName["status"]; status.ValueKind != model.KindSelect || len(status.Options) != 2 {
		t.Fatalf("unexpected status field %+v", status)
	}
	if fee := byName["fee"]; fee.ValueKind != model.KindFeeRate || fee.Label != "费率" {
		t.Fatalf("objects with a value kind stay a single field, got %+v", fee)
	}
	if byName["settle.day"].ValueKind != model.KindDigit || byName["settle.open"].ValueKind != model.KindSwitch {
		t.Fatalf("unexpected settle kinds")
	}
	contacts := byName["contacts"]
	if len(contacts.SubGroups) != 1 || contacts.SubGroups[0].Fields[0].Name.String() != "phone" {
		t.Fatalf("unexpected contacts field %+v", contacts)
	}
}

func TestObjectWithExtensionStaysSingleField(t *testing.T) {
	doc := `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /rates:
    post:
      operationId: setRate
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                rate:
                  type: string
                  x-formkit:
                    valueKind: feeRate
                    label: 费率
      responses:
        "200": {description: ok}
`
	groups, err := GroupsFromOperation(context.Background(), []byte(doc), "setRate", WithTitle("费率"))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	field := groups[0].Fields[0]
	if groups[0].Title != "费率" || field.ValueKind != model.KindFeeRate || field.Label != "费率" {
		t.Fatalf("unexpected field %+v", field)
	}
}

func TestGroupsFromOperationErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := GroupsFromOperation(ctx, []byte(merchantDoc), "missing"); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := GroupsFromOperation(ctx, []byte(merchantDoc), "listMerchants"); !errors.Is(err, ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
	if _, err := GroupsFromOperation(ctx, nil, "x"); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestOperations(t *testing.T) {
	ops, err := Operations(context.Background(), []byte(merchantDoc))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	want := []Operation{
		{ID: "createMerchant", Method: "POST", Path: "/merchants", Summary: "新增商户"},
		{ID: "listMerchants", Method: "GET", Path: "/merchants"},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestLoaderFS(t *testing.T) {
	fsys := fstest.MapFS{"api.yaml": {Data: []byte(merchantDoc)}}
	data, err := NewLoader(WithFileSystem(fsys)).Load(context.Background(), SourceFromFS("api.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != merchantDoc {
		t.Fatalf("unexpected payload")
	}
	if _, err := NewLoader().Load(context.Background(), SourceFromFS("api.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}
