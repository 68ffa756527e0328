package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, result *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, result.Messages, 1)
	content, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	return content.Text
}

func TestOverlapReviewWithPathways(t *testing.T) {
	var req mcp.GetPromptRequest
	req.Params.Arguments = map[string]string{"pathway_ids": "hsa05200,hsa04930", "focus": "insulin signalling"}

	result, err := overlapReviewHandler(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Pathway overlap review of hsa05200,hsa04930", result.Description)

	text := promptText(t, result)
	assert.Contains(t, text, "For the KEGG pathways hsa05200,hsa04930, call kegg_pathway_overlap")
	assert.Contains(t, text, "Focus the summary on insulin signalling.")
}

func TestOverlapReviewPreset(t *testing.T) {
	result, err := overlapReviewHandler(context.Background(), mcp.GetPromptRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Pathway overlap review", result.Description)
	assert.Contains(t, promptText(t, result), "list_kegg_pathways with preset=true")
}
