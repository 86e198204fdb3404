package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halden/agentwire/internal/audit"
	"github.com/halden/agentwire/internal/render"
	"github.com/halden/agentwire/internal/tool"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [tool]",
		Short: "Show which tools are configured, and how",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := managers
			if len(args) == 1 {
				mgr, err := tool.For(managers, args[0])
				if err != nil {
					return err
				}
				selected = []tool.Manager{mgr}
			}

			var rows []render.StatusRow
			for _, m := range selected {
				d := m.Detect()
				row := render.StatusRow{Tool: m.Name(), Title: m.Title()}
				if d.Configured() {
					row.Plan = d.Plan
					row.Key = audit.Mask(d.APIKey)
					row.Model = d.Model
				}
				rows = append(rows, row)
			}

			fmt.Print(renderer.Status(rows))
			return nil
		},
	}
}

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List supported tools and their config files",
		Run: func(cmd *cobra.Command, args []string) {
			for _, m := range managers {
				fmt.Printf("%-8s %s\n", m.Name(), m.Title())
				for _, p := range m.Paths() {
					fmt.Printf("  %s\n", p)
				}
			}
		},
	}
}

func plansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List available provider plans",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(renderer.Plans(reg))
		},
	}
}
