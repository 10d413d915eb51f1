package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/castlebay/supportdesk/agent/contract"
	storex "github.com/castlebay/supportdesk/store"
)

// Dispatcher executes one operation against the record store. It holds no
// state across calls; every side effect is the single store call.
type Dispatcher struct {
	store *storex.Store
}

func New(store *storex.Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// Execute looks up the named operation, validates the payload, runs the
// bound store method, and returns the result envelope as JSON. It returns
// ErrUnknownOperation or ErrInvalidArguments without touching the store;
// business outcomes like "user not found" are encoded in the envelope so
// the model can self-correct.
func (d *Dispatcher) Execute(ctx context.Context, name string, raw map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	desc, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", contractx.ErrUnknownOperation, name)
	}

	args, err := Validate(desc, raw)
	if err != nil {
		return "", err
	}

	log.Debug().Str("operation", name).Interface("args", redact(name, args)).Msg("executing operation")

	userID := stringArg(args, fieldUserID)
	switch Op(name) {
	case OpChangePassword:
		err := d.store.SetPassword(userID, stringArg(args, "new_password"))
		return statusEnvelope(err, "Password changed successfully")

	case OpGetAccountBalance:
		balance, err := d.store.GetBalance(userID)
		if err != nil {
			return statusEnvelope(err, "")
		}
		return marshal(map[string]any{
			"success": true,
			"balance": balance,
			"message": fmt.Sprintf("Current balance: $%.2f", balance),
		})

	case OpUpdateAddress:
		err := d.store.UpdateAddress(userID, stringArg(args, "new_address"))
		return statusEnvelope(err, "Address updated successfully")

	case OpGetRecentTransactions:
		txns, err := d.store.RecentTransactions(userID, intArg(args, "limit"))
		if err != nil {
			return statusEnvelope(err, "")
		}
		return marshal(map[string]any{
			"success":      true,
			"transactions": txns,
			"count":        len(txns),
		})

	case OpDeactivateCard:
		cardID := stringArg(args, "card_id")
		if cardID == "" {
			err = d.store.DeactivateAllCards(userID)
		} else {
			err = d.store.DeactivateCard(userID, cardID)
		}
		return statusEnvelope(err, "Card deactivated successfully")

	case OpReportIssue:
		ticket, err := d.store.CreateTicket(userID, stringArg(args, "issue_description"))
		if err != nil {
			return statusEnvelope(err, "")
		}
		return marshal(map[string]any{
			"success":   true,
			"ticket_id": ticket.ID,
			"message":   fmt.Sprintf("Issue reported successfully. Ticket ID: %s", ticket.ID),
		})

	case OpGetAccountDetails:
		details, err := d.store.AccountDetails(userID)
		if err != nil {
			return statusEnvelope(err, "")
		}
		return marshal(map[string]any{
			"success": true,
			"details": details,
			"message": "Account details retrieved",
		})

	default:
		// Catalog and switch are maintained together; a descriptor without
		// a handler is a programming error.
		return "", fmt.Errorf("%w: %s has no handler", contractx.ErrUnknownOperation, name)
	}
}

// statusEnvelope renders success/failure envelopes for mutating operations.
// Store-level "not found" conditions become business results, not errors.
func statusEnvelope(err error, okMessage string) (string, error) {
	switch {
	case err == nil:
		return marshal(map[string]any{"success": true, "message": okMessage})
	case errors.Is(err, contractx.ErrAccountNotFound):
		return marshal(map[string]any{"success": false, "message": "User not found"})
	case errors.Is(err, contractx.ErrCardNotFound):
		return marshal(map[string]any{"success": false, "message": err.Error()})
	default:
		return "", err
	}
}

func marshal(v map[string]any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal result envelope: %w", err)
	}
	return string(out), nil
}

// redact keeps credentials out of the logs.
func redact(name string, args map[string]any) map[string]any {
	if Op(name) != OpChangePassword {
		return args
	}
	cp := make(map[string]any, len(args))
	for k, v := range args {
		cp[k] = v
	}
	cp["new_password"] = "***"
	return cp
}
