package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"photofind/internal/config"
	"photofind/internal/export"
	"photofind/internal/photodb"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export <uuid> <destination>",
		Short: "Copy a photo to a file or directory outside the library",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			destination, err := config.ExpandPath(args[1])
			if err != nil {
				return fmt.Errorf("resolve destination: %w", err)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			allowOverwrite := overwrite || cfg.Export.OverwriteExisting

			return ctx.withStore(cmd, func(qctx context.Context, store *photodb.Store) error {
				detail, err := store.AssetByToken(qctx, token)
				if err != nil {
					return err
				}
				if detail.Path == nil {
					return fmt.Errorf("%w: asset %q has no filename to resolve", photodb.ErrNotFound, token)
				}

				dest, err := export.Run(export.Request{
					SourcePath:     detail.Path.Path,
					SourceVerified: detail.Path.Verified,
					Filename:       detail.Filename,
					Destination:    destination,
					Overwrite:      allowOverwrite,
				})
				if errors.Is(err, export.ErrSourceMissing) {
					return fmt.Errorf("%w\nThe photo may be stored in iCloud and not downloaded locally.", err)
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Exported: %s\n", detail.Filename)
				fmt.Fprintf(out, "  From: %s\n", shortenHome(detail.Path.Path))
				fmt.Fprintf(out, "  To:   %s\n", shortenHome(dest))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace the destination file if it exists")
	return cmd
}
