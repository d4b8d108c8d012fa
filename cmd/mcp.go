package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/codeinsights/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [root]",
	Short: "Start the insights MCP server",
	Long: `Launch an MCP server over stdio that exposes js-complex, loc and dup-names
as tools for AI agents. Shared flags set the defaults for every tool call.`,
	Args: cobra.MaximumNArgs(1),
	// Progress is never attached in MCP mode since stdio carries the protocol.
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(cmd.Context(), cfg, version)
	},
}
