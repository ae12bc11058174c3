package main

import (
	"fmt"
	"time"

	"github.com/hyperjump/patristica/internal/feed"
	"github.com/hyperjump/patristica/internal/forum"
	"github.com/hyperjump/patristica/internal/lectionary"
	"github.com/spf13/cobra"
)

func newFeedCmd(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "feed [YYYY-MM-DD]",
		Short: "Collect readings, commentary and forum posts into the daily feed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if len(args) == 1 {
				d, err := time.ParseInLocation(time.DateOnly, args[0], time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", args[0], err)
				}
				date = d
			}

			c, err := initializeComponents(opts)
			if err != nil {
				return err
			}
			defer c.Close()
			cfg := c.Config
			if output == "" {
				output = cfg.Feed.OutputPath
			}

			if cfg.Liturgy.EnabledOrDefault() && cfg.Liturgy.IncludeFathersOrDefault() {
				_ = c.Holder.Reload()
			}
			readings, err := lectionary.NewClient(cfg.Lectionary, lectionary.WithLogger(c.Logger))
			if err != nil {
				return err
			}
			posts := forum.NewClient(cfg.Forum, forum.WithLogger(c.Logger))
			collector := feed.NewCollector(cfg, readings, posts, c.Holder, c.Matcher, feed.WithLogger(c.Logger))

			f, err := collector.Collect(cmd.Context(), date)
			if err != nil {
				return err
			}
			if err := feed.WriteFile(output, f); err != nil {
				return fmt.Errorf("failed to write feed: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Output: %s\n", output)
			readingCount, commentCount := 0, 0
			if f.Liturgy != nil {
				readingCount = len(f.Liturgy.Readings)
				commentCount = len(f.Liturgy.PatristicComments)
			}
			items := 0
			for _, s := range f.Sections {
				items += len(s.Items)
			}
			fmt.Fprintf(w, "Readings: %d\n", readingCount)
			fmt.Fprintf(w, "Patristic comments: %d\n", commentCount)
			fmt.Fprintf(w, "News sections: %d\n", len(f.Sections))
			fmt.Fprintf(w, "Total news items: %d\n", items)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "out", "", "feed output path (default: feed.output_path)")
	return cmd
}
