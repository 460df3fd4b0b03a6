package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewScriptoriumMCPServer creates a new MCP server with the Scriptorium
// tools registered. The projectPath is the root directory of the writing
// project to audit. All tools are read-only; fixes go through the CLI
// where a human approves each step.
func NewScriptoriumMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"scriptorium",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath)

	return s
}
