// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/orgviz/orgviz/internal/contract"
)

// NewMCPServer initializes and configures the orgviz MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Org Graph Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	s.AddTool(mcp.NewTool("get_fragmentation",
		mcp.WithDescription("Rank people by fragmentation score for a program increment."),
		mcp.WithString("pi", mcp.Description("Program increment label (e.g. PI-10). Defaults to the configured PI.")),
		mcp.WithString("source", mcp.Description("Path to a local .grist archive (defaults to the configured source).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetFragmentation)

	s.AddTool(mcp.NewTool("get_org_graph",
		mcp.WithDescription("Return the validated organization graph: teams, people, epics, features and assignments."),
		mcp.WithString("pi", mcp.Description("Program increment label (e.g. PI-10).")),
		mcp.WithString("source", mcp.Description("Path to a local .grist archive.")),
	), h.handleGetOrgGraph)

	s.AddTool(mcp.NewTool("get_layout",
		mcp.WithDescription("Return the deterministic block layout used by the diagram renderers."),
		mcp.WithString("pi", mcp.Description("Program increment label (e.g. PI-10).")),
		mcp.WithString("source", mcp.Description("Path to a local .grist archive.")),
	), h.handleGetLayout)

	return s
}

// StartMCPServer starts the orgviz MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
