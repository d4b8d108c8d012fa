// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huangsam/codeinsights/internal/contract"
)

// NewMCPServer initializes and configures the insights MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Code Insights Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: analyze_complexity ---
	s.AddTool(mcp.NewTool("analyze_complexity",
		mcp.WithDescription("Measure the maintainability and complexity of the JavaScript files under a directory."),
		mcp.WithString("root", mcp.Description("Directory to analyze (defaults to the server's root).")),
		mcp.WithString("glob", mcp.Description("Inclusion glob (defaults to **/*.js).")),
		mcp.WithString("grep", mcp.Description("Only analyze relative paths matching this regular expression.")),
		mcp.WithBoolean("invert", mcp.Description("Analyze relative paths NOT matching grep instead.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of low maintainability files returned.")),
	), h.handleAnalyzeComplexity)

	// --- 2. Tool: count_loc ---
	s.AddTool(mcp.NewTool("count_loc",
		mcp.WithDescription("Count non-blank, non-comment lines of code per file."),
		mcp.WithString("root", mcp.Description("Directory to scan.")),
		mcp.WithString("glob", mcp.Description("Inclusion glob (defaults to **/*).")),
		mcp.WithBoolean("js_only", mcp.Description("Only count JavaScript files.")),
	), h.handleCountLOC)

	// --- 3. Tool: find_duplicate_names ---
	s.AddTool(mcp.NewTool("find_duplicate_names",
		mcp.WithDescription("Find files sharing a base name across directories."),
		mcp.WithString("root", mcp.Description("Directory to scan.")),
		mcp.WithString("glob", mcp.Description("Inclusion glob (defaults to **/*).")),
		mcp.WithBoolean("js_only", mcp.Description("Only consider JavaScript files.")),
	), h.handleFindDuplicateNames)

	return s
}

// StartMCPServer serves the insights tools over stdio until the client disconnects.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, version string) error {
	s := NewMCPServer(baseCfg, version)
	return server.ServeStdio(s)
}
