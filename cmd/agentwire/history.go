package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent configuration operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if history == nil {
				return errors.New("history unavailable (application home not writable)")
			}
			events, err := history.Recent(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			fmt.Print(renderer.History(events))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of events to show")
	return cmd
}
