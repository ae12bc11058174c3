package main

import (
	"strings"

	"github.com/hyperjump/patristica/internal/cli"
	"github.com/hyperjump/patristica/internal/models"
	"github.com/spf13/cobra"
)

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "lookup <citation...>",
		Short: "Show patristic commentary for a citation",
		Long: `Match one citation against the published snapshot. The citation is all
remaining arguments joined by spaces, so quoting is optional:

  patristica lookup Mark 7:14-23
  patristica lookup "Salmo 37:5-6, 30-31" --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			query := models.LookupQuery{Reference: strings.Join(args, " ")}
			if err := query.Validate(); err != nil {
				return err
			}

			c, err := initializeComponents(opts)
			if err != nil {
				return err
			}
			defer c.Close()
			// A missing snapshot is logged and leaves the lookup empty.
			_ = c.Holder.Reload()

			result := &cli.LookupResult{Reference: query.Reference, Matches: []models.MatchResult{}}
			if ref, err := c.Matcher.Parser().Parse(query.Reference); err == nil {
				result.Parsed = &ref
			}
			result.Matches = append(result.Matches, models.Results(c.Matcher.Match(c.Holder.Lookup(), query.Reference))...)
			return cli.WriteMatches(cmd.OutOrStdout(), result, format)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(cli.OutputText), "output format: text or json")
	return cmd
}
