package main

import (
	"context"
	"fmt"
	"time"

	"jobmatch/internal/app"

	"github.com/spf13/cobra"
)

func newCacheCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the shared results cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached search result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			zl, err := root.logger()
			if err != nil {
				return err
			}
			defer func() { _ = zl.Sync() }()

			c, err := app.NewContainer(cfg, zl)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := c.PurgeSnapshots(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared cached searches (%s)\n", c.CacheName)
			return nil
		},
	})

	return cmd
}
