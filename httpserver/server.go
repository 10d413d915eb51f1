// Package httpserver exposes the tool surface over plain HTTP for
// environments where stdio transport is awkward. The JSON shapes match the
// MCP surface: same catalog, same result envelopes.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	contractx "github.com/castlebay/supportdesk/agent/contract"
	dispatchx "github.com/castlebay/supportdesk/dispatch"
)

type ToolCallRequest struct {
	Name      string         `json:"name" binding:"required"`
	Arguments map[string]any `json:"arguments"`
}

type ToolCallResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// New builds the gin engine serving the tool endpoints.
func New(d *dispatchx.Dispatcher) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "server": "supportdesk-mcp-http"})
	})

	r.GET("/tools", func(c *gin.Context) {
		type toolInfo struct {
			Name        string         `json:"name"`
			Description string         `json:"description"`
			InputSchema map[string]any `json:"input_schema"`
		}
		catalog := dispatchx.Catalog()
		tools := make([]toolInfo, 0, len(catalog))
		for _, op := range catalog {
			tools = append(tools, toolInfo{
				Name:        op.Name,
				Description: op.Description,
				InputSchema: op.JSONSchema(),
			})
		}
		c.JSON(http.StatusOK, gin.H{"tools": tools})
	})

	r.POST("/tools/execute", func(c *gin.Context) {
		var req ToolCallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ToolCallResponse{Success: false, Error: err.Error()})
			return
		}
		if req.Arguments == nil {
			req.Arguments = map[string]any{}
		}

		payload, err := d.Execute(c.Request.Context(), req.Name, req.Arguments)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, ToolCallResponse{Success: true, Result: payload})
		case errors.Is(err, contractx.ErrUnknownOperation), errors.Is(err, contractx.ErrInvalidArguments):
			c.JSON(http.StatusBadRequest, ToolCallResponse{Success: false, Error: err.Error()})
		default:
			log.Error().Str("tool", req.Name).Err(err).Msg("tool execution failed")
			c.JSON(http.StatusInternalServerError, ToolCallResponse{Success: false, Error: err.Error()})
		}
	})

	return r
}
