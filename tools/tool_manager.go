package tools

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/athapong/kegg-overlap/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolGroups lists the names accepted by ENABLE_TOOLS
var ToolGroups = []struct {
	Name string
	Desc string
}{
	{"tool_manager", "Tool management"},
	{"kegg", "KEGG pathway listing and gene overlap"},
}

func RegisterToolManagerTool(s *server.MCPServer) {
	tool := mcp.NewTool("tool_manager",
		mcp.WithDescription("Manage MCP tools - enable or disable tools"),
		mcp.WithString("action", mcp.Required(), mcp.Description("Action to perform: list, enable, disable")),
		mcp.WithString("tool_name", mcp.Description("Tool name to enable/disable")),
	)

	s.AddTool(tool, util.ErrorGuard(toolManagerHandler))
}

func toolManagerHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := request.GetString("action", "")
	if action == "" {
		return mcp.NewToolResultError("action must be a string"), nil
	}

	enableTools := os.Getenv("ENABLE_TOOLS")
	toolList := strings.Split(enableTools, ",")

	switch action {
	case "list":
		response := "Available tools:\n"
		allEnabled := enableTools == ""

		for _, t := range ToolGroups {
			status := "disabled"
			if allEnabled || slices.Contains(toolList, t.Name) {
				status = "enabled"
			}
			response += fmt.Sprintf("- %s (%s) [%s]\n", t.Name, t.Desc, status)
		}
		response += "\n"

		response += "Currently enabled tools:\n"
		if allEnabled {
			response += "All tools are enabled (ENABLE_TOOLS is empty)\n"
		} else {
			for _, tool := range toolList {
				if tool != "" {
					response += fmt.Sprintf("- %s\n", tool)
				}
			}
		}
		return mcp.NewToolResultText(response), nil

	case "enable", "disable":
		toolName := request.GetString("tool_name", "")
		if toolName == "" {
			return mcp.NewToolResultError("tool_name is required for enable/disable actions"), nil
		}

		if enableTools == "" {
			toolList = []string{}
		}

		if action == "enable" {
			if !slices.Contains(toolList, toolName) {
				toolList = append(toolList, toolName)
			}
		} else {
			toolList = removeString(toolList, toolName)
		}

		os.Setenv("ENABLE_TOOLS", strings.Join(toolList, ","))

		return mcp.NewToolResultText(fmt.Sprintf("Successfully %sd tool: %s (takes effect on restart)", action, toolName)), nil

	default:
		return mcp.NewToolResultError("Invalid action. Use 'list', 'enable', or 'disable'"), nil
	}
}

func removeString(slice []string, item string) []string {
	result := []string{}
	for _, s := range slice {
		if s != "" && s != item {
			result = append(result, s)
		}
	}
	return result
}
