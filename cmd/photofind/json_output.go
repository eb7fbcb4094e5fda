package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"photofind/internal/photodb"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// jsonAsset is the machine-readable projection of one result record.
type jsonAsset struct {
	UUID         string   `json:"uuid"`
	Filename     string   `json:"filename"`
	Date         string   `json:"date,omitempty"`
	Width        int64    `json:"width,omitempty"`
	Height       int64    `json:"height,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Path         string   `json:"path,omitempty"`
	PathVerified bool     `json:"path_verified"`
}

func toJSONAsset(asset photodb.Asset) jsonAsset {
	out := jsonAsset{
		UUID:     asset.UUID,
		Filename: asset.Filename,
		Width:    asset.Width,
		Height:   asset.Height,
	}
	if asset.Taken != nil {
		out.Date = asset.Taken.Format(displayTimeFormat)
	}
	if asset.Location != nil {
		out.Latitude = &asset.Location.Latitude
		out.Longitude = &asset.Location.Longitude
	}
	if asset.Path != nil {
		out.Path = asset.Path.Path
		out.PathVerified = asset.Path.Verified
	}
	return out
}

func toJSONAssets(assets []photodb.Asset) []jsonAsset {
	out := make([]jsonAsset, 0, len(assets))
	for _, asset := range assets {
		out = append(out, toJSONAsset(asset))
	}
	return out
}
