package main

import (
	"errors"
	"fmt"

	"github.com/hyperjump/patristica/internal/cli"
	"github.com/hyperjump/patristica/internal/storage"
	"github.com/spf13/cobra"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show snapshot statistics and New Testament coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			c, err := initializeComponents(opts)
			if err != nil {
				return err
			}
			defer c.Close()

			lookup, err := c.Store.Load()
			if errors.Is(err, storage.ErrSnapshotNotFound) {
				return fmt.Errorf("no snapshot at %s; run \"patristica index\" first", c.Store.Path())
			}
			if err != nil {
				return err
			}
			size, err := storage.DiskUsageBytes(c.Store.Path())
			if err != nil {
				return err
			}
			return cli.WriteStatus(cmd.OutOrStdout(), cli.BuildStatus(lookup, c.Store.Path(), size), format)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(cli.OutputText), "output format: text or json")
	return cmd
}
