package mcpserver

import (
	"context"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-assistant/internal/domain/tool"
)

func newTestRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	reg := tool.NewRegistry()
	require.NoError(t, reg.Register(tool.Spec{
		Name:        "greet",
		Description: "Greet someone by name.",
		Action:      "greeting",
		Params: []tool.Param{
			{Name: "name", Type: tool.TypeString, Description: "Who to greet", Required: true},
			{Name: "times", Type: tool.TypeInteger, Description: "Repeat count", Default: 1},
		},
	}, func(_ context.Context, args tool.Args) (string, error) {
		name, _ := args["name"].(string)
		if name == "" {
			return "", fmt.Errorf("name is required")
		}
		return fmt.Sprintf("Hello, %s (x%v)", name, args["times"]), nil
	}))
	return reg
}

func connect(t *testing.T, reg *tool.Registry) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	server := New("jan-assistant", "test", reg, zerolog.Nop())

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestServer_ListTools(t *testing.T) {
	session := connect(t, newTestRegistry(t))

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)
	assert.Equal(t, "greet", res.Tools[0].Name)
	assert.Equal(t, "Greet someone by name.", res.Tools[0].Description)
}

func TestServer_CallTool(t *testing.T) {
	session := connect(t, newTestRegistry(t))

	tests := []struct {
		name      string
		args      map[string]any
		want      string
		wantError bool
	}{
		{"defaults applied", map[string]any{"name": "Ada"}, "Hello, Ada (x1)", false},
		{"handler error", map[string]any{"name": ""}, "Error greeting: name is required", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: "greet", Arguments: tt.args})
			require.NoError(t, err)
			require.Len(t, res.Content, 1)
			text, ok := res.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Equal(t, tt.want, text.Text)
			assert.Equal(t, tt.wantError, res.IsError)
		})
	}
}
