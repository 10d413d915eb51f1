package dispatch

import (
	"errors"
	"testing"

	contractx "github.com/castlebay/supportdesk/agent/contract"
)

func TestValidateAppliesDefaults(t *testing.T) {
	t.Parallel()

	desc, ok := Lookup(string(OpGetRecentTransactions))
	if !ok {
		t.Fatal("descriptor not found")
	}

	args, err := Validate(desc, map[string]any{"user_id": "user_001"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args["limit"] != 10 {
		t.Fatalf("expected default limit 10, got %v", args["limit"])
	}
}

func TestValidateMissingRequiredField(t *testing.T) {
	t.Parallel()

	desc, _ := Lookup(string(OpChangePassword))
	_, err := Validate(desc, map[string]any{"user_id": "user_001"})
	if !errors.Is(err, contractx.ErrInvalidArguments) {
		t.Fatalf("expected ErrInvalidArguments, got %v", err)
	}
}

func TestValidateRejectsUnknownField(t *testing.T) {
	t.Parallel()

	desc, _ := Lookup(string(OpGetAccountBalance))
	_, err := Validate(desc, map[string]any{"user_id": "user_001", "currency": "USD"})
	if !errors.Is(err, contractx.ErrInvalidArguments) {
		t.Fatalf("expected ErrInvalidArguments, got %v", err)
	}
}

func TestValidateCoercesNumericString(t *testing.T) {
	t.Parallel()

	desc, _ := Lookup(string(OpGetRecentTransactions))
	args, err := Validate(desc, map[string]any{"user_id": "user_001", "limit": "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args["limit"] != 2.0 {
		t.Fatalf("expected coerced limit 2, got %v (%T)", args["limit"], args["limit"])
	}
}

func TestValidateWrongType(t *testing.T) {
	t.Parallel()

	desc, _ := Lookup(string(OpUpdateAddress))
	_, err := Validate(desc, map[string]any{"user_id": "user_001", "new_address": 42})
	if !errors.Is(err, contractx.ErrInvalidArguments) {
		t.Fatalf("expected ErrInvalidArguments, got %v", err)
	}

	desc, _ = Lookup(string(OpGetRecentTransactions))
	_, err = Validate(desc, map[string]any{"user_id": "user_001", "limit": "five"})
	if !errors.Is(err, contractx.ErrInvalidArguments) {
		t.Fatalf("expected ErrInvalidArguments, got %v", err)
	}
}

func TestCatalogStableOrder(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, len(Catalog()))
	for _, desc := range Catalog() {
		names = append(names, desc.Name)
	}
	want := []string{
		"change_password",
		"get_account_balance",
		"update_address",
		"get_recent_transactions",
		"deactivate_card",
		"report_issue",
		"get_account_details",
	}
	if len(names) != len(want) {
		t.Fatalf("unexpected catalog size: %d", len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("catalog order changed at %d: got %s, want %s", i, names[i], want[i])
		}
	}
}
