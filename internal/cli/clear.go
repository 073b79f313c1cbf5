package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete this session's data on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync() //nolint:errcheck

			cleared, err := a.lifecycle.ClearData(context.Background())
			if err != nil {
				return err
			}
			if !cleared {
				color.Yellow("Session data kept.")
				return nil
			}
			color.Green("Session data cleared.")
			return nil
		},
	}
}
