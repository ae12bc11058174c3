package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "patristica",
		Short: "Patristic commentary index and daily liturgical feed",
		Long: `patristica indexes a digitized corpus of patristic commentary by biblical
citation and matches daily Mass readings against it.

  patristica index corpus.txt        build and publish the snapshot
  patristica lookup "Mark 7:14-23"   commentary for one citation
  patristica feed 2026-02-11         write the daily feed
  patristica serve                   read-only HTTP lookup API`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "config file path")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newIndexCmd(opts),
		newLookupCmd(opts),
		newFeedCmd(opts),
		newServeCmd(opts),
		newStatusCmd(opts),
		newVersionCmd(),
	)
	return cmd
}
