package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halden/agentwire/internal/audit"
	"github.com/halden/agentwire/internal/tool"
)

func unloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unload <tool>",
		Short: "Remove your API key from a tool's configuration",
		Long: `Blank the stored API key for one tool. The rest of the configuration
(endpoint, models, customizations) stays in place, so 'use' restores the
tool without losing anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := tool.For(managers, args[0])
			if err != nil {
				return err
			}

			event := auditLogger.Start(audit.CategoryTool, "unload")
			event.Tool = mgr.Name()

			snapshotTool(mgr)
			if err := mgr.Unload(); err != nil {
				auditLogger.LogError(event, err)
				return err
			}
			auditLogger.LogSuccess(event)

			fmt.Printf("%s unloaded\n", mgr.Title())
			return nil
		},
	}
}
