package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"statehouse_site/internal/app"
)

func newWarmCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Re-fetch every page query once, refreshing cache and snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infra, err := g.open(app.Options{})
			if err != nil {
				return err
			}
			defer infra.Close()

			result, err := infra.Tasks().Run(cmd.Context(), "warm_cms", nil)
			if err != nil {
				return err
			}
			total, _ := result["total"].(int)
			failed, _ := result["failed"].(int)
			fmt.Fprintf(cmd.OutOrStdout(), "refreshed %d of %d requests\n", result["refreshed"], total)
			if failed > 0 {
				return fmt.Errorf("%d of %d requests failed", failed, total)
			}
			return nil
		},
	}
}
