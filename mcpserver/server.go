// Package mcpserver exposes the support operations over the Model Context
// Protocol. Tool schemas are generated from the dispatch catalog, so the
// MCP surface and the in-process surface always advertise the same
// operations.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	contractx "github.com/castlebay/supportdesk/agent/contract"
	dispatchx "github.com/castlebay/supportdesk/dispatch"
)

const (
	ServerName    = "supportdesk-mcp"
	ServerVersion = "1.0.0"
)

// New builds an MCP server whose tools dispatch into the record store.
func New(d *dispatchx.Dispatcher) *server.MCPServer {
	srv := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
	)

	for _, desc := range dispatchx.Catalog() {
		srv.AddTool(buildTool(desc), handler(d, desc.Name))
	}

	return srv
}

// ServeStdio runs the server over stdin/stdout until the client goes away.
func ServeStdio(srv *server.MCPServer) error {
	return server.ServeStdio(srv)
}

func buildTool(desc contractx.OperationInfo) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(desc.Description)}
	for _, f := range desc.Fields {
		opts = append(opts, fieldOption(f))
	}
	return mcp.NewTool(desc.Name, opts...)
}

func fieldOption(f contractx.Field) mcp.ToolOption {
	switch f.Type {
	case contractx.FieldNumber:
		propOpts := []mcp.PropertyOption{mcp.Description(f.Description)}
		if f.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if def, ok := f.Default.(int); ok {
			propOpts = append(propOpts, mcp.DefaultNumber(float64(def)))
		} else if def, ok := f.Default.(float64); ok {
			propOpts = append(propOpts, mcp.DefaultNumber(def))
		}
		return mcp.WithNumber(f.Name, propOpts...)
	default:
		propOpts := []mcp.PropertyOption{mcp.Description(f.Description)}
		if f.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if def, ok := f.Default.(string); ok {
			propOpts = append(propOpts, mcp.DefaultString(def))
		}
		return mcp.WithString(f.Name, propOpts...)
	}
}

func handler(d *dispatchx.Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := d.Execute(ctx, name, request.GetArguments())
		if err != nil {
			// Rejected calls (unknown op, bad args) travel back as tool
			// errors, not protocol failures.
			log.Warn().Str("tool", name).Err(err).Msg("tool call rejected")
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(payload), nil
	}
}
