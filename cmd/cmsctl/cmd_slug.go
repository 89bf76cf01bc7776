package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"statehouse_site/internal/content"
)

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <title...>",
		Short: "Print the slug the site generates for a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := content.Slugify(strings.Join(args, " "))
			if slug == "" {
				return errors.New("title produces an empty slug")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), slug)
			return err
		},
	}
}
