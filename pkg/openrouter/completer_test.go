package openrouter

import (
	"testing"

	contractx "github.com/castlebay/supportdesk/agent/contract"
)

func TestNewCompleterRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewCompleter(Config{}); err == nil {
		t.Fatal("expected error without api key")
	}

	c, err := NewCompleter(Config{APIKey: "sk-test", Model: "openai/gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == nil {
		t.Fatal("expected a completer")
	}
}

func TestBuildMessagesRolesAndOrder(t *testing.T) {
	t.Parallel()

	turns := []contractx.Turn{
		{Role: contractx.RoleUser, Content: "what's my balance?"},
		{Role: contractx.RoleAssistant, Calls: []contractx.OperationCall{{
			ID:        "call_1",
			Operation: "get_account_balance",
			Args:      map[string]any{"user_id": "user_001"},
		}}},
		{Role: contractx.RoleOperation, Content: `{"success":true,"balance":5420.5}`, CallID: "call_1", Operation: "get_account_balance"},
		{Role: contractx.RoleAssistant, Content: "Your balance is $5420.50."},
	}

	msgs := buildMessages("you are a support assistant", turns)
	if len(msgs) != 5 {
		t.Fatalf("unexpected message count: %d", len(msgs))
	}

	if msgs[0].OfSystem == nil {
		t.Fatal("first message must be the system prompt")
	}
	if msgs[1].OfUser == nil {
		t.Fatal("second message must be the user turn")
	}

	assistant := msgs[2].OfAssistant
	if assistant == nil {
		t.Fatal("third message must be the assistant call turn")
	}
	if len(assistant.ToolCalls) != 1 {
		t.Fatalf("unexpected tool call count: %d", len(assistant.ToolCalls))
	}
	fn := assistant.ToolCalls[0].OfFunction
	if fn == nil || fn.ID != "call_1" || fn.Function.Name != "get_account_balance" {
		t.Fatalf("unexpected tool call: %+v", assistant.ToolCalls[0])
	}

	tool := msgs[3].OfTool
	if tool == nil || tool.ToolCallID != "call_1" {
		t.Fatalf("unexpected tool message: %+v", msgs[3])
	}

	if msgs[4].OfAssistant == nil {
		t.Fatal("fifth message must be the final assistant text")
	}
}

func TestBuildTools(t *testing.T) {
	t.Parallel()

	catalog := []contractx.OperationInfo{{
		Name:        "get_account_balance",
		Description: "Retrieve the current account balance for a user.",
		Fields: []contractx.Field{
			{Name: "user_id", Type: contractx.FieldString, Description: "user", Required: true},
		},
	}}

	tools := buildTools(catalog)
	if len(tools) != 1 {
		t.Fatalf("unexpected tool count: %d", len(tools))
	}
	fn := tools[0].OfFunction
	if fn == nil || fn.Function.Name != "get_account_balance" {
		t.Fatalf("unexpected tool: %+v", tools[0])
	}
	params := map[string]any(fn.Function.Parameters)
	if params["type"] != "object" {
		t.Fatalf("unexpected parameters: %v", params)
	}
}
