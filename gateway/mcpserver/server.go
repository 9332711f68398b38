// Package mcpserver exposes the validation pipeline as a Model Context
// Protocol tool, so MCP-capable assistants can hand a drafted response
// back for validation before presenting it to a user.
//
// The server speaks MCP over stdio and registers a single tool,
// run_checks, whose result carries the composed report text and the
// ordered fault-message list.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/snipcheck"
)

// Version is the implementation version advertised to MCP clients.
const Version = "0.1.0"

// Input is the run_checks tool input.
type Input struct {
	// Response is the free-text assistant response containing
	// delimited code blocks.
	Response string `json:"response" jsonschema:"the response text to validate"`

	// BasePath overrides the output base directory for this call.
	BasePath string `json:"basePath,omitempty" jsonschema:"optional base directory for session output"`
}

// Output is the run_checks tool output.
type Output struct {
	// Report is the composed validation report.
	Report string `json:"report"`

	// Faults lists the fault summaries of every faulted unit, in
	// unit order. Empty when every unit ran clean.
	Faults []string `json:"faults"`
}

// Server serves the run_checks tool over MCP stdio.
type Server struct {
	opts snipcheck.Options
}

// New creates a Server. opts configures the underlying pipeline; a
// per-call basePath overrides opts.BasePath.
func New(opts snipcheck.Options) *Server {
	return &Server{opts: opts}
}

// Run serves MCP over stdio until the context is canceled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: "snipcheck", Version: Version}, nil)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "run_checks",
		Description: "Execute each delimited code block in a response and report outputs, faults, and figures.",
	}, s.runChecks)
	return srv.Run(ctx, &mcp.StdioTransport{})
}

// runChecks handles one tool call. Per-unit faults are part of the
// normal Output; only run-level failures surface as tool errors.
func (s *Server) runChecks(ctx context.Context, _ *mcp.CallToolRequest, in Input) (*mcp.CallToolResult, Output, error) {
	opts := s.opts
	if in.BasePath != "" {
		opts.BasePath = in.BasePath
	}
	p, err := snipcheck.New(opts)
	if err != nil {
		return nil, Output{}, err
	}
	report, faults, err := p.RunChecks(ctx, in.Response)
	if err != nil {
		return nil, Output{}, err
	}
	if faults == nil {
		faults = []string{}
	}
	return nil, Output{Report: report, Faults: faults}, nil
}
