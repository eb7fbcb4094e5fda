package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"photofind/internal/photodb"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <uuid-or-filename>",
		Short: "Show metadata for a single photo or video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			return ctx.withStore(cmd, func(qctx context.Context, store *photodb.Store) error {
				detail, err := store.AssetByToken(qctx, token)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, toJSONDetail(detail))
				}
				writeDetail(cmd.OutOrStdout(), detail)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func writeDetail(out io.Writer, detail *photodb.AssetDetail) {
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(out, "%s: %s\n", label, value)
		}
	}

	filename := detail.Filename
	if filename == "" {
		filename = "Unknown"
	}
	field("Filename", filename)
	field("UUID", detail.UUID)
	if detail.Taken != nil {
		field("Date", formatDate(detail.Taken))
	}
	field("Title", detail.Title)
	field("Original filename", detail.OriginalFilename)
	field("Dimensions", formatDimensions(detail.Width, detail.Height))
	if detail.OriginalFileSize != nil {
		field("File size", humanize.IBytes(uint64(*detail.OriginalFileSize)))
	}
	if detail.Duration != nil {
		field("Duration", fmt.Sprintf("%.1fs", *detail.Duration))
	}
	if detail.Kind != nil {
		field("Type", kindName(*detail.Kind))
	}
	field("Location", formatLocation(detail.Location, 6))
	field("EXIF timestamp", detail.EXIFTimestamp)
	field("Camera", joinParts(detail.CameraMake, detail.CameraModel))
	field("Lens", joinParts(detail.LensMake, detail.LensModel))
	if detail.FocalLength35mm != nil {
		field("Focal length (35mm eq)", fmt.Sprintf("%dmm", *detail.FocalLength35mm))
	}
	if detail.Path != nil {
		field("Path", shortenHome(detail.Path.Path))
		if detail.Path.Verified {
			field("File exists", "Yes")
		} else {
			field("File exists", "No (may be in iCloud)")
		}
	}
}

func kindName(kind int64) string {
	switch kind {
	case photodb.KindPhoto:
		return "Photo"
	case photodb.KindVideo:
		return "Video"
	default:
		return fmt.Sprintf("Unknown (%d)", kind)
	}
}

func joinParts(parts ...string) string {
	kept := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}

type jsonDetail struct {
	jsonAsset

	Kind             string  `json:"kind,omitempty"`
	DurationSeconds  float64 `json:"duration_seconds,omitempty"`
	Title            string  `json:"title,omitempty"`
	OriginalFilename string  `json:"original_filename,omitempty"`
	CameraMake       string  `json:"camera_make,omitempty"`
	CameraModel      string  `json:"camera_model,omitempty"`
	LensMake         string  `json:"lens_make,omitempty"`
	LensModel        string  `json:"lens_model,omitempty"`
	FocalLength35mm  int64   `json:"focal_length_35mm,omitempty"`
	OriginalFileSize int64   `json:"original_file_size,omitempty"`
	EXIFTimestamp    string  `json:"exif_timestamp,omitempty"`
}

func toJSONDetail(detail *photodb.AssetDetail) jsonDetail {
	out := jsonDetail{
		jsonAsset:        toJSONAsset(detail.Asset),
		Title:            detail.Title,
		OriginalFilename: detail.OriginalFilename,
		CameraMake:       detail.CameraMake,
		CameraModel:      detail.CameraModel,
		LensMake:         detail.LensMake,
		LensModel:        detail.LensModel,
		EXIFTimestamp:    detail.EXIFTimestamp,
	}
	if detail.Kind != nil {
		out.Kind = kindName(*detail.Kind)
	}
	if detail.Duration != nil {
		out.DurationSeconds = *detail.Duration
	}
	if detail.FocalLength35mm != nil {
		out.FocalLength35mm = *detail.FocalLength35mm
	}
	if detail.OriginalFileSize != nil {
		out.OriginalFileSize = *detail.OriginalFileSize
	}
	return out
}
