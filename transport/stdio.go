// Package transport connects the session to a tool-server process over
// stdio MCP. The shim owns the process lifecycle: it spawns the server,
// performs the readiness handshake, and guarantees teardown on every exit
// path.
package transport

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	contractx "github.com/castlebay/supportdesk/agent/contract"
)

type Config struct {
	Command string        `envconfig:"COMMAND" split_words:"true" default:"supportdesk-mcp"`
	Args    []string      `envconfig:"ARGS" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// StdioGateway executes operations against a spawned MCP server process.
// Requests are paired one-for-one with responses; there is no pipelining.
type StdioGateway struct {
	c       *client.Client
	timeout time.Duration
}

var _ contractx.OperationGateway = (*StdioGateway)(nil)

// NewStdioGateway spawns the tool-server process and performs the
// initialize handshake. Any failure tears the process down and reports
// ErrConnection.
func NewStdioGateway(ctx context.Context, cfg Config) (*StdioGateway, error) {
	command := strings.TrimSpace(cfg.Command)
	if command == "" {
		return nil, fmt.Errorf("%w: tool server command is empty", contractx.ErrConnection)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c, err := client.NewStdioMCPClient(command, nil, cfg.Args...)
	if err != nil {
		return nil, fmt.Errorf("%w: spawn %s: %v", contractx.ErrConnection, command, err)
	}

	initCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "supportdesk",
		Version: "1.0.0",
	}

	if _, err := c.Initialize(initCtx, initReq); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: initialize handshake: %v", contractx.ErrConnection, err)
	}

	log.Info().Str("command", command).Msg("tool server connected")
	return &StdioGateway{c: c, timeout: timeout}, nil
}

// Execute sends one tools/call and waits for the matching response.
// Transport failures map to ErrConnection; tool-level errors travel in the
// result so the session can feed them back to the model.
func (g *StdioGateway) Execute(ctx context.Context, call contractx.OperationCall) (contractx.OperationResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = call.Operation
	req.Params.Arguments = call.Args

	resp, err := g.c.CallTool(callCtx, req)
	if err != nil {
		return contractx.OperationResult{}, fmt.Errorf("%w: call %s: %v", contractx.ErrConnection, call.Operation, err)
	}

	return resultFromResponse(call, resp), nil
}

// resultFromResponse normalizes a tool response. An error response with no
// text still gets a non-empty Err so it cannot pass for a success.
func resultFromResponse(call contractx.OperationCall, resp *mcp.CallToolResult) contractx.OperationResult {
	result := contractx.OperationResult{
		CallID:    call.ID,
		Operation: call.Operation,
	}
	text := flattenText(resp)
	if resp.IsError {
		if text == "" {
			text = "tool reported an error"
		}
		result.Err = text
	} else {
		result.Payload = text
	}
	return result
}

// ListOperations proxies tools/list and maps the schemas back into
// operation descriptors.
func (g *StdioGateway) ListOperations(ctx context.Context) ([]contractx.OperationInfo, error) {
	listCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.c.ListTools(listCtx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("%w: list tools: %v", contractx.ErrConnection, err)
	}

	ops := make([]contractx.OperationInfo, 0, len(resp.Tools))
	for _, tool := range resp.Tools {
		ops = append(ops, contractx.OperationInfo{
			Name:        tool.Name,
			Description: tool.Description,
			Fields:      fieldsFromSchema(tool.InputSchema.Properties, tool.InputSchema.Required),
		})
	}
	return ops, nil
}

// Close terminates the tool-server process and the stdio channel. Safe to
// call more than once.
func (g *StdioGateway) Close() error {
	if g.c == nil {
		return nil
	}
	err := g.c.Close()
	g.c = nil
	return err
}

func flattenText(resp *mcp.CallToolResult) string {
	var parts []string
	for _, content := range resp.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func fieldsFromSchema(properties map[string]any, requiredNames []string) []contractx.Field {
	required := make(map[string]bool, len(requiredNames))
	for _, name := range requiredNames {
		required[name] = true
	}

	fields := make([]contractx.Field, 0, len(properties))
	for name, raw := range properties {
		prop, _ := raw.(map[string]any)
		f := contractx.Field{
			Name:     name,
			Type:     contractx.FieldString,
			Required: required[name],
		}
		if t, ok := prop["type"].(string); ok && t == "number" {
			f.Type = contractx.FieldNumber
		}
		if desc, ok := prop["description"].(string); ok {
			f.Description = desc
		}
		if def, ok := prop["default"]; ok {
			f.Default = def
		}
		fields = append(fields, f)
	}
	return fields
}
