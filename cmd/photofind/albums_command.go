package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"photofind/internal/photodb"
)

func newAlbumsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "albums",
		Short: "List all albums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(qctx context.Context, store *photodb.Store) error {
				albums, err := store.Albums(qctx)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, toJSONAlbums(albums))
				}
				if len(albums) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No albums found.")
					return nil
				}
				rows := make([][]string, 0, len(albums))
				for i, album := range albums {
					count := ""
					if album.AssetCount != nil {
						count = strconv.Itoa(*album.AssetCount)
					}
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						album.Title,
						count,
						album.UUID,
					})
				}
				writeList(cmd,
					[]string{"#", "Album", "Photos", "UUID"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintf(cmd.OutOrStdout(), "%d album(s)\n", len(albums))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func newAlbumCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "album <name>",
		Short: "List photos in an album (exact or partial name match)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if limit <= 0 {
				limit = ctx.defaultLimit()
			}
			return ctx.withStore(cmd, func(qctx context.Context, store *photodb.Store) error {
				album, assets, err := store.AlbumAssets(qctx, name, limit)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, struct {
						Album  string      `json:"album"`
						UUID   string      `json:"uuid"`
						Assets []jsonAsset `json:"assets"`
					}{Album: album.Title, UUID: album.UUID, Assets: toJSONAssets(assets)})
				}
				if len(assets) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No photos found in album %q.\n", album.Title)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Album: %s\n", album.Title)
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

type jsonAlbum struct {
	Title      string `json:"title"`
	UUID       string `json:"uuid"`
	AssetCount *int   `json:"asset_count,omitempty"`
}

func toJSONAlbums(albums []photodb.Album) []jsonAlbum {
	out := make([]jsonAlbum, 0, len(albums))
	for _, album := range albums {
		out = append(out, jsonAlbum{Title: album.Title, UUID: album.UUID, AssetCount: album.AssetCount})
	}
	return out
}
