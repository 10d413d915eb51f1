package contract

import (
	"encoding/json"
	"testing"
)

func TestOperationResultContent(t *testing.T) {
	t.Parallel()

	ok := OperationResult{CallID: "c1", Operation: "get_account_balance", Payload: `{"success":true,"balance":5420.5}`}
	if ok.Content() != `{"success":true,"balance":5420.5}` {
		t.Fatalf("unexpected content: %s", ok.Content())
	}

	failed := OperationResult{CallID: "c2", Operation: "deactivate_card", Err: "card not found: card_999"}
	var env map[string]any
	if err := json.Unmarshal([]byte(failed.Content()), &env); err != nil {
		t.Fatalf("content is not valid JSON: %v", err)
	}
	if env["success"] != false || env["error"] != "card not found: card_999" {
		t.Fatalf("unexpected envelope: %v", env)
	}
}

func TestOperationInfoJSONSchema(t *testing.T) {
	t.Parallel()

	op := OperationInfo{
		Name:        "get_recent_transactions",
		Description: "recent transactions",
		Fields: []Field{
			{Name: "user_id", Type: FieldString, Description: "user", Required: true},
			{Name: "limit", Type: FieldNumber, Description: "cap", Default: 10},
		},
	}

	schema := op.JSONSchema()
	if schema["type"] != "object" {
		t.Fatalf("unexpected schema type: %v", schema["type"])
	}

	properties, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected properties: %v", schema["properties"])
	}
	limit, ok := properties["limit"].(map[string]any)
	if !ok {
		t.Fatalf("limit missing: %v", properties)
	}
	if limit["type"] != "number" || limit["default"] != 10 {
		t.Fatalf("unexpected limit property: %v", limit)
	}

	required, ok := schema["required"].([]string)
	if !ok || len(required) != 1 || required[0] != "user_id" {
		t.Fatalf("unexpected required list: %v", schema["required"])
	}
}

func TestOperationInfoJSONSchemaNoRequired(t *testing.T) {
	t.Parallel()

	op := OperationInfo{Name: "noop", Fields: []Field{{Name: "note", Type: FieldString}}}
	if _, present := op.JSONSchema()["required"]; present {
		t.Fatal("required must be omitted when no field is required")
	}
}
