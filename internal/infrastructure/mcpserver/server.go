package mcpserver

import (
	"context"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-assistant/internal/domain/tool"
)

// Dispatcher is the part of the tool registry the server needs.
type Dispatcher interface {
	Specs() []tool.Spec
	Dispatch(ctx context.Context, call tool.Call) tool.Result
}

// New builds an MCP server exposing every registered tool. Calls go through
// Dispatch, so MCP clients see the same result strings as the dialogue loop.
func New(name, version string, tools Dispatcher, log zerolog.Logger) *mcp.Server {
	log = log.With().Str("component", "mcp-server").Logger()
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)

	for _, spec := range tools.Specs() {
		toolName := spec.Name
		log.Debug().Str("tool", toolName).Msg("registering MCP tool")

		server.AddTool(&mcp.Tool{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: spec.InputSchema(),
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			call := tool.Call{ID: "mcp_" + uuid.NewString(), Name: toolName}
			if req != nil && req.Params != nil {
				call.Input = req.Params.Arguments
			}
			log.Info().Str("tool", toolName).Str("call_id", call.ID).Msg("MCP tool call received")

			result := tools.Dispatch(ctx, call)
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: result.Content}},
				IsError: result.IsError,
			}, nil
		})
	}
	return server
}

// ServeStdio runs server on stdin/stdout until ctx ends or the client disconnects.
func ServeStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
