package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"statehouse_site/internal/app"
	"statehouse_site/internal/cms"
)

type fetchFlags struct {
	populate string
	deep     []string
	sort     []string
	filters  []string
}

func newFetchCmd(g *globalFlags) *cobra.Command {
	f := &fetchFlags{}
	cmd := &cobra.Command{
		Use:   "fetch <path>",
		Short: "Fetch a CMS collection and print the raw envelope",
		Long: `Fetches /api/<path> exactly as the site does and prints the JSON envelope.
Failures are never substituted, so a broken endpoint exits non-zero.

Example:
  cmsctl fetch announcements --sort Date:desc --filter Published:$eq:true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(args[0])
			if err != nil {
				return err
			}

			infra, err := g.open(app.Options{SkipSnapshots: true, Policy: cms.DevelopmentPolicy()})
			if err != nil {
				return err
			}
			defer infra.Close()

			env, err := infra.Client.Revalidate(cmd.Context(), req).Get()
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(env)
		},
	}
	cmd.Flags().StringVar(&f.populate, "populate", "*", "populate value; empty to omit")
	cmd.Flags().StringSliceVar(&f.deep, "deep", nil, "relations to populate deeply (populate[rel][populate]=*)")
	cmd.Flags().StringSliceVar(&f.sort, "sort", nil, "sort fields, e.g. Date:desc")
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, "filter as field:op:value, e.g. Published:$eq:true")
	return cmd
}

func (f *fetchFlags) request(path string) (cms.Request, error) {
	q := cms.NewQuery()
	if len(f.deep) > 0 {
		for _, rel := range f.deep {
			q = q.PopulateDeep(rel)
		}
	} else if f.populate != "" {
		q = q.Populate(f.populate)
	}
	q = q.Sort(f.sort...)

	for _, raw := range f.filters {
		field, op, value, err := parseFilter(raw)
		if err != nil {
			return cms.Request{}, err
		}
		q = q.Filter(field, op, value)
	}
	return cms.Request{Path: path, Query: q}, nil
}

// parseFilter splits "field:op:value". The value may itself contain colons.
func parseFilter(raw string) (field, op, value string, err error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("invalid filter %q: want field:op:value", raw)
	}
	op = parts[1]
	if !strings.HasPrefix(op, "$") {
		op = "$" + op
	}
	return parts[0], op, parts[2], nil
}
