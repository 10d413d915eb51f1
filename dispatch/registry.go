// Package dispatch validates and executes support operations against the
// record store. The operation catalog is data: adding an operation means
// adding a descriptor here and a store method, nothing else.
package dispatch

import (
	contractx "github.com/castlebay/supportdesk/agent/contract"
)

// Op is the closed set of operation identifiers.
type Op string

const (
	OpChangePassword        Op = "change_password"
	OpGetAccountBalance     Op = "get_account_balance"
	OpUpdateAddress         Op = "update_address"
	OpGetRecentTransactions Op = "get_recent_transactions"
	OpDeactivateCard        Op = "deactivate_card"
	OpReportIssue           Op = "report_issue"
	OpGetAccountDetails     Op = "get_account_details"
)

const (
	fieldUserID = "user_id"
)

// catalog is the registry: descriptor order is stable and used verbatim as
// the capability advertisement.
var catalog = []contractx.OperationInfo{
	{
		Name:        string(OpChangePassword),
		Description: "Change a user's password. Returns success status.",
		Fields: []contractx.Field{
			{Name: fieldUserID, Type: contractx.FieldString, Description: "The unique identifier for the user", Required: true},
			{Name: "new_password", Type: contractx.FieldString, Description: "The new password to set", Required: true},
		},
	},
	{
		Name:        string(OpGetAccountBalance),
		Description: "Retrieve the current account balance for a user.",
		Fields: []contractx.Field{
			{Name: fieldUserID, Type: contractx.FieldString, Description: "The unique identifier for the user", Required: true},
		},
	},
	{
		Name:        string(OpUpdateAddress),
		Description: "Update a user's address in the system.",
		Fields: []contractx.Field{
			{Name: fieldUserID, Type: contractx.FieldString, Description: "The unique identifier for the user", Required: true},
			{Name: "new_address", Type: contractx.FieldString, Description: "The new address to set", Required: true},
		},
	},
	{
		Name:        string(OpGetRecentTransactions),
		Description: "Retrieve recent transactions for a user's account, most recent first.",
		Fields: []contractx.Field{
			{Name: fieldUserID, Type: contractx.FieldString, Description: "The unique identifier for the user", Required: true},
			{Name: "limit", Type: contractx.FieldNumber, Description: "Maximum number of transactions to return", Required: false, Default: 10},
		},
	},
	{
		Name:        string(OpDeactivateCard),
		Description: "Deactivate a user's card for security purposes. Omit card_id to deactivate all cards.",
		Fields: []contractx.Field{
			{Name: fieldUserID, Type: contractx.FieldString, Description: "The unique identifier for the user", Required: true},
			{Name: "card_id", Type: contractx.FieldString, Description: "Identifier of the card to deactivate", Required: false},
		},
	},
	{
		Name:        string(OpReportIssue),
		Description: "Report a customer support issue and create a ticket.",
		Fields: []contractx.Field{
			{Name: fieldUserID, Type: contractx.FieldString, Description: "The unique identifier for the user", Required: true},
			{Name: "issue_description", Type: contractx.FieldString, Description: "Description of the issue", Required: true},
		},
	},
	{
		Name:        string(OpGetAccountDetails),
		Description: "Retrieve comprehensive account details for a user.",
		Fields: []contractx.Field{
			{Name: fieldUserID, Type: contractx.FieldString, Description: "The unique identifier for the user", Required: true},
		},
	},
}

// Catalog returns the operation descriptors in registration order.
func Catalog() []contractx.OperationInfo {
	out := make([]contractx.OperationInfo, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a descriptor by operation name.
func Lookup(name string) (contractx.OperationInfo, bool) {
	for _, desc := range catalog {
		if desc.Name == name {
			return desc, true
		}
	}
	return contractx.OperationInfo{}, false
}
