package contract

import "encoding/json"

// Role tags a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleOperation Role = "operation"
)

// Turn is one message in a session's ordered history. Turns are immutable
// once appended; the session only grows the sequence (or clears it on reset).
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`

	// Calls is set on assistant turns that request operations.
	Calls []OperationCall `json:"calls,omitempty"`

	// CallID pairs an operation-result turn with the assistant call
	// that requested it.
	CallID    string `json:"call_id,omitempty"`
	Operation string `json:"operation,omitempty"`
}

// OperationCall is one operation invocation requested by the model.
type OperationCall struct {
	ID        string         `json:"id"`
	Operation string         `json:"operation"`
	Args      map[string]any `json:"args,omitempty"`
}

// OperationResult is the normalized outcome of one operation call.
// Business failures (unknown account, bad arguments) live in Err so the
// model can read them and self-correct; they are not Go errors.
type OperationResult struct {
	CallID    string `json:"call_id"`
	Operation string `json:"operation"`
	Payload   string `json:"payload,omitempty"`
	Err       string `json:"error,omitempty"`
}

// Content renders the result as the text fed back into the conversation.
func (r OperationResult) Content() string {
	if r.Err != "" {
		out, _ := json.Marshal(map[string]any{
			"success": false,
			"error":   r.Err,
		})
		return string(out)
	}
	return r.Payload
}

// Completion is the completion service's answer to one round-trip: either
// final text or one or more operation calls. When Calls is non-empty the
// session must execute them and go around again.
type Completion struct {
	Text  string
	Calls []OperationCall
}

// FieldType enumerates the argument types the operation schemas use.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldNumber FieldType = "number"
)

// Field describes one argument of an operation schema.
type Field struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Description string    `json:"description"`
	Required    bool      `json:"required"`
	Default     any       `json:"default,omitempty"`
}

// OperationInfo is the capability advertisement for one operation, sent
// verbatim to the completion service and rendered as an MCP tool schema.
type OperationInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields"`
}

// JSONSchema renders the argument schema as a JSON-schema object, the shape
// both the completion service and the HTTP surface advertise.
func (op OperationInfo) JSONSchema() map[string]any {
	properties := make(map[string]any, len(op.Fields))
	var required []string
	for _, f := range op.Fields {
		prop := map[string]any{
			"type":        string(f.Type),
			"description": f.Description,
		}
		if f.Default != nil {
			prop["default"] = f.Default
		}
		properties[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
