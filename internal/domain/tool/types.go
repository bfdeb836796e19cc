package tool

import (
	"encoding/json"

	"github.com/janhq/jan-assistant/internal/domain/llm"
)

// Call encapsulates one tool call requested by the model.
type Call struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input,omitempty"`
}

// Result is the outcome of dispatching one Call. Every Call yields exactly
// one Result carrying the same CallID.
type Result struct {
	CallID   string `json:"call_id"`
	ToolName string `json:"tool_name"`
	Content  string `json:"content"`
	IsError  bool   `json:"is_error"`
}

// CallFromBlock converts a tool_use content block into a Call.
func CallFromBlock(block llm.ContentBlock) Call {
	return Call{ID: block.ID, Name: block.Name, Input: block.Input}
}

// Block converts the result into the tool_result block sent back to the model.
func (r Result) Block() llm.ContentBlock {
	return llm.ToolResultBlock(r.CallID, r.Content, r.IsError)
}
