package main

import (
	"errors"
	"fmt"

	"github.com/hyperjump/patristica/internal/extract"
	"github.com/hyperjump/patristica/internal/indexer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newIndexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "index [corpus]",
		Short: "Index a commentary corpus and publish the snapshot",
		Long: `Scan the corpus for verse headings, group the commentary by chapter and
publish the lookup snapshot. Without an argument, corpus.path from the config is used.
Nothing is published when the corpus cannot be read.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initializeComponents(opts)
			if err != nil {
				return err
			}
			defer c.Close()

			corpus := c.Config.Corpus.Path
			if len(args) == 1 {
				corpus = args[0]
			}
			if corpus == "" {
				return errors.New("no corpus given (pass a path or set corpus.path)")
			}

			idx := indexer.NewIndexer(c.Books, extract.NewExtractor(), indexer.WithLogger(c.Logger))
			res, err := idx.IndexFile(cmd.Context(), corpus)
			if err != nil {
				return err
			}
			lookup := indexer.BuildLookup(res.Index)
			if err := c.Store.Write(cmd.Context(), lookup); err != nil {
				return fmt.Errorf("failed to publish snapshot: %w", err)
			}
			c.Logger.Debug("index complete", zap.String("corpus", corpus), zap.Int("discarded", res.Discarded))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Index saved to %s\n", c.Store.Path())
			fmt.Fprintf(out, "Headings found: %d\n", res.Headings)
			fmt.Fprintf(out, "Books/chapters indexed: %d\n", lookup.Len())
			fmt.Fprintf(out, "Verse entries: %d\n", lookup.EntryCount())
			return nil
		},
	}
}
