package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"statehouse_site/internal/app"
)

func newCacheCmd(g *globalFlags) *cobra.Command {
	cache := &cobra.Command{
		Use:   "cache",
		Short: "Manage the redis response cache",
	}
	cache.AddCommand(&cobra.Command{
		Use:   "purge [path-prefix]",
		Short: "Remove cached CMS responses",
		Long: `Removes cached responses whose API path starts with the prefix, for example
"/announcements". Without a prefix every cached response is removed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infra, err := g.open(app.Options{SkipSnapshots: true})
			if err != nil {
				return err
			}
			defer infra.Close()
			if infra.Cache == nil {
				return errors.New("redis_url is not configured or redis is unreachable")
			}

			var prefix string
			if len(args) == 1 {
				prefix = infra.Client.BaseURL() + "/api/" + strings.TrimLeft(args[0], "/")
			}
			result, err := infra.Tasks().Run(cmd.Context(), "purge_cms_cache", map[string]interface{}{"prefix": prefix})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %v cached responses\n", result["removed"])
			return nil
		},
	})
	return cache
}
