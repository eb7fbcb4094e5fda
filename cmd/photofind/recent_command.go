package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"photofind/internal/photodb"
)

func newRecentCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recent [days]",
		Short: "List photos taken in the last N days (default 7)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := 7
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil || parsed < 1 {
					return fmt.Errorf("invalid day count %q", args[0])
				}
				days = parsed
			}
			if limit <= 0 {
				limit = ctx.defaultLimit()
			}
			return ctx.withStore(cmd, func(qctx context.Context, store *photodb.Store) error {
				assets, err := store.Recent(qctx, days, limit)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, toJSONAssets(assets))
				}
				if len(assets) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No photos found in the last %d day(s).\n", days)
					return nil
				}
				writeList(cmd, assetTableHeaders, assetTableRows(assets), assetTableAligns)
				fmt.Fprintf(cmd.OutOrStdout(), "%d result(s) shown (max %d)\n", len(assets), limit)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}
