package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/scriptorium/scriptorium/internal/adapters/outbound/config"
	"github.com/scriptorium/scriptorium/internal/adapters/outbound/report"
	"github.com/scriptorium/scriptorium/internal/adapters/outbound/scanner"
	"github.com/scriptorium/scriptorium/internal/application"
	"github.com/scriptorium/scriptorium/internal/domain"
)

// registerTools registers the Scriptorium MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	s.AddTool(
		mcplib.NewTool("scriptorium_validate",
			mcplib.WithDescription("Audit the writing project's structure, templates, front-matter and links. Returns the prioritized issue list as JSON."),
		),
		handleValidate(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("scriptorium_plan",
			mcplib.WithDescription("Returns the ordered correction plan for the project's current issues as JSON. Nothing is modified."),
		),
		handlePlan(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("scriptorium_report",
			mcplib.WithDescription("Returns a full audit report for the project"),
			mcplib.WithString("format", mcplib.Description("Report format: markdown or html (default: markdown)")),
		),
		handleReport(projectPath),
	)
}

// newValidator builds the read-only validation pipeline. MCP runs headless
// so logging goes nowhere.
func newValidator() *application.ValidateService {
	return application.NewValidateService(scanner.New(), config.New(), zap.NewNop())
}

func handleValidate(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		issues, err := newValidator().Validate(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(issues)
	}
}

func handlePlan(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		issues, err := newValidator().Validate(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(domain.BuildPlan(issues))
	}
}

func handleReport(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		issues, err := newValidator().Validate(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}

		var renderer domain.ReportRenderer = report.NewMarkdown()
		if format, _ := request.GetArguments()["format"].(string); format == "html" {
			renderer = report.NewHTML()
		}
		return textResult(renderer.Render(projectPath, issues, time.Now())), nil
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
