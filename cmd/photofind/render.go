package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"photofind/internal/photodb"
)

const displayTimeFormat = "2006-01-02 15:04:05"

func formatDate(t *time.Time) string {
	if t == nil {
		return "Unknown"
	}
	return t.Format(displayTimeFormat)
}

func formatDimensions(width, height int64) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", width, height)
}

func formatLocation(loc *photodb.Location, decimals int) string {
	if loc == nil {
		return ""
	}
	return fmt.Sprintf("%.*f, %.*f", decimals, loc.Latitude, decimals, loc.Longitude)
}

func formatPath(res *photodb.Resolution) string {
	if res == nil {
		return ""
	}
	path := shortenHome(res.Path)
	if !res.Verified {
		path += " (not on disk)"
	}
	return path
}

// shortenHome replaces the home directory prefix with ~ for display.
func shortenHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(os.PathSeparator)) {
		return "~" + path[len(home):]
	}
	return path
}

func assetTableRows(assets []photodb.Asset) [][]string {
	rows := make([][]string, 0, len(assets))
	for i, asset := range assets {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			asset.Filename,
			formatDate(asset.Taken),
			formatDimensions(asset.Width, asset.Height),
			formatLocation(asset.Location, 4),
			formatPath(asset.Path),
		})
	}
	return rows
}

var assetTableHeaders = []string{"#", "Filename", "Date", "Size", "Location", "Path"}

var assetTableAligns = []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
