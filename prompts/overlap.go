package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func RegisterOverlapPrompts(s *server.MCPServer) {
	prompt := mcp.NewPrompt("pathway_overlap_review",
		mcp.WithPromptDescription("Compare KEGG pathways by the genes they share"),
		mcp.WithArgument("pathway_ids", mcp.ArgumentDescription("Comma separated KEGG pathway IDs; leave empty to start from the preset pathways")),
		mcp.WithArgument("focus", mcp.ArgumentDescription("Optional topic to focus the review on, e.g. insulin signalling")),
	)
	s.AddPrompt(prompt, overlapReviewHandler)
}

func overlapReviewHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	ids := strings.TrimSpace(request.Params.Arguments["pathway_ids"])
	focus := strings.TrimSpace(request.Params.Arguments["focus"])

	var text strings.Builder
	if ids == "" {
		text.WriteString("Use list_kegg_pathways with preset=true to choose up to ten pathways, then ")
	} else {
		fmt.Fprintf(&text, "For the KEGG pathways %s, ", ids)
	}
	text.WriteString("call kegg_pathway_overlap with min_count=2 to find the genes they share. ")
	text.WriteString("Summarize which genes connect the most pathways and mention any pathways that were skipped.")
	if focus != "" {
		fmt.Fprintf(&text, " Focus the summary on %s.", focus)
	}

	description := "Pathway overlap review"
	if ids != "" {
		description = fmt.Sprintf("Pathway overlap review of %s", ids)
	}

	return &mcp.GetPromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: text.String(),
				},
			},
		},
	}, nil
}
