package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halden/agentwire/internal/audit"
)

func backupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "Manage config snapshots",
		Long: `Every mutating command snapshots the affected files first. Snapshots
live under the application home; restore by copying one back into place.`,
	}
	cmd.AddCommand(backupsListCmd(), backupsPruneCmd())
	return cmd
}

func backupsListCmd() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := backups.List(pattern)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("No snapshots")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "match", "", "Glob filter, e.g. 'claude/**'")
	return cmd
}

func backupsPruneCmd() *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old snapshots, keeping the newest per file",
		RunE: func(cmd *cobra.Command, args []string) error {
			event := auditLogger.Start(audit.CategoryBackup, "prune")

			removed, err := backups.Prune(keep)
			if err != nil {
				auditLogger.LogError(event, err)
				return err
			}
			auditLogger.LogSuccess(event)

			fmt.Printf("Removed %d snapshot(s), kept the newest %d per file\n", removed, keep)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 5, "Snapshots to keep per file")
	return cmd
}
