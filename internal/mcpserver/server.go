// Package mcpserver exposes the solver as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/zephyrtronium/symcalc"
	"github.com/zephyrtronium/symcalc/internal/config"
)

// Server wraps a Solver and exposes it via Model Context Protocol.
type Server struct {
	solver *symcalc.Solver
	cfg    *config.Config
	log    *zap.SugaredLogger
	server *server.MCPServer
}

// New creates an MCP server that solves with solver, using cfg for
// presentation defaults.
func New(solver *symcalc.Solver, cfg *config.Config, log *zap.SugaredLogger, version string) *Server {
	s := &Server{solver: solver, cfg: cfg, log: log}
	s.server = server.NewMCPServer(
		"symcalc",
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// ServeStdio serves requests on stdin and stdout until stdin closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.server)
}

func (s *Server) registerTools() {
	solveTool := mcp.NewTool("solve",
		mcp.WithDescription("Solve a math expression, giving exact and approximate answers. "+
			"Supports implicit multiplication, single-letter variables, the constants i e π φ γ, "+
			"and functions such as diff, integrate, sin, log, root, and random."),
		mcp.WithString("expression",
			mcp.Required(),
			mcp.Description("Expression to solve, e.g. diff(x^2, x)"),
		),
		mcp.WithObject("terms",
			mcp.Description("Variable definitions, e.g. {\"a\": \"2b\", \"b\": \"3\"}"),
		),
		mcp.WithArray("literal_constants",
			mcp.Description("Constant symbols to substitute by decimal value instead of symbolically"),
			mcp.WithStringItems(),
		),
		mcp.WithString("format",
			mcp.Description("Answer format: text or latex (default: text)"),
			mcp.Enum("text", "latex"),
		),
	)
	s.server.AddTool(solveTool, s.handleSolve)

	s.server.AddTool(mcp.NewTool("list_functions",
		mcp.WithDescription("List the functions accepted in expressions"),
	), s.handleListFunctions)

	s.server.AddTool(mcp.NewTool("list_constants",
		mcp.WithDescription("List the constants accepted in expressions"),
	), s.handleListConstants)
}

func (s *Server) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := request.RequireString("expression")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := request.GetArguments()
	terms, err := stringMap(args["terms"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	req := s.cfg.Request(expr, terms)
	for _, c := range request.GetStringSlice("literal_constants", nil) {
		req.Literal[c] = true
	}
	if f, ok := symcalc.ParseFormat(request.GetString("format", "text")); ok && f != symcalc.Image {
		req.Display, req.Copy = f, f
	} else {
		return mcp.NewToolResultError("format must be text or latex"), nil
	}

	sol, err := s.solver.Solve(req)
	if err != nil {
		s.log.Debugw("mcp solve failed", "expression", expr, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	var b strings.Builder
	if sol.HasExact {
		fmt.Fprintf(&b, "exact: %s\n", sol.Exact)
	} else {
		b.WriteString("exact: unavailable (a constant's literal value was used)\n")
	}
	fmt.Fprintf(&b, "approximate: %s\n", sol.Approximate)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleListFunctions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := append([]string(nil), symcalc.Functions...)
	sort.Strings(names)
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) handleListConstants(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, c := range symcalc.Constants {
		fmt.Fprintf(&b, "%c\t%s\n", c.Symbol, c.Description)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// stringMap converts a JSON object argument to term definitions.
func stringMap(v any) (map[string]string, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("terms must be an object")
	}
	r := make(map[string]string, len(m))
	for k, v := range m {
		switch v := v.(type) {
		case string:
			r[k] = v
		case float64:
			// Plain decimal, since an exponent would read as the constant e.
			r[k] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return nil, errors.Newf("term %s must be a string", k)
		}
	}
	return r, nil
}
