// tools_guide.go implements the MCP tool for accessing help content.
//
// The guide tool gives LLMs the same pages as "darc guide", so an assistant
// can learn the kinds, key forms and manifest format without leaving MCP.

package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/darc/guide"
	"github.com/jpl-au/darc/internal/log"
)

// getGuide handles darc_guide tool calls.
func (h *handlers) getGuide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // handler signature
	topic := getString(req, "topic", "")

	content, err := guide.Get(topic)

	log.Event("mcp:guide", "read").Author(h.user).Detail("topic", topic).Write(err)

	if errors.Is(err, guide.ErrUnknownTopic) {
		topics, _ := guide.List()
		return jsonResult(map[string]any{
			"error":            err.Error(),
			"available_topics": topics,
		})
	}
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(content), nil
}
