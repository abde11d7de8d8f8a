package commands

import (
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/symcalc/internal/logger"
	"github.com/zephyrtronium/symcalc/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the solver as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Logger.Infow("serving MCP on stdio")
		return mcpserver.New(solver, cfg, logger.Logger.Named("mcp"), Version).ServeStdio()
	},
}
