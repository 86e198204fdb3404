package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halden/agentwire/internal/audit"
	"github.com/halden/agentwire/internal/mcp"
	"github.com/halden/agentwire/internal/tool"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Manage MCP servers in supporting tools",
	}
	cmd.AddCommand(mcpListCmd(), mcpAddCmd())
	return cmd
}

func mcpListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in MCP servers",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(renderer.Servers(mcp.Catalog()))
		},
	}
}

func mcpAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <tool> <server>",
		Short: "Install a built-in MCP server into a tool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := tool.For(managers, args[0])
			if err != nil {
				return err
			}
			srv, ok := mcp.Find(args[1])
			if !ok {
				return fmt.Errorf("unknown MCP server: %s (see 'agentwire mcp list')", args[1])
			}

			event := auditLogger.Start(audit.CategoryMCP, "add")
			event.Tool = mgr.Name()

			snapshotTool(mgr)
			if err := mgr.AddMCPServer(srv); err != nil {
				auditLogger.LogError(event, err)
				return err
			}
			auditLogger.LogSuccess(event)

			fmt.Printf("%s added to %s\n", srv.Name, mgr.Title())
			return nil
		},
	}
}
