package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"photofind/internal/photodb"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search photos by filename, title, or original filename",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := args[0]
			if limit <= 0 {
				limit = ctx.defaultLimit()
			}
			return ctx.withStore(cmd, func(qctx context.Context, store *photodb.Store) error {
				assets, err := store.Search(qctx, keyword, limit)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, toJSONAssets(assets))
				}
				if len(assets) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No photos found matching %q.\n", keyword)
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
