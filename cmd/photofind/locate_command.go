package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"photofind/internal/photodb"
)

func newLocateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Show the located Photos database and its schema details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(qctx context.Context, store *photodb.Store) error {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database: %s\n", shortenHome(store.Path()))
				fmt.Fprintf(out, "Library root: %s\n", shortenHome(store.Root()))
				if table, albumCol, assetCol, ok := store.Join(); ok {
					fmt.Fprintf(out, "Album join: %s (%s, %s)\n", table, albumCol, assetCol)
				} else {
					fmt.Fprintln(out, "Album join: undetected (album membership queries unavailable)")
				}
				return nil
			})
		},
	}
}
