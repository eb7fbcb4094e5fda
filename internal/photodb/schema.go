package photodb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// joinDescriptor names the album/asset join table for this store version.
// Photos renames the table and both columns across releases (Z_26ASSETS,
// Z_28ASSETS, ...) so the triple is detected per connection, never hardcoded.
type joinDescriptor struct {
	Table       string
	AlbumColumn string
	AssetColumn string
}

// capabilities records which optional tables and columns this schema version
// exposes. The query layer branches on these instead of failing at execution
// time.
type capabilities struct {
	AssetTrashed bool
	AlbumTrashed bool
	Attributes   bool
	AttrColumns  map[string]bool
}

// detailAttrColumns are the extended-attributes columns the single-item
// lookup projects when present, in output order.
var detailAttrColumns = []string{
	"ZTITLE",
	"ZORIGINALFILENAME",
	"ZCAMERAMAKE",
	"ZCAMERAMODEL",
	"ZLENSMAKE",
	"ZLENSMODEL",
	"ZFOCALLENGTHIN35MMFORMAT",
	"ZORIGINALFILESIZE",
	"ZEXIFTIMESTAMPSTRING",
}

// discoverCapabilities probes the catalog for the optional columns the query
// layer can use. A missing ZASSET table is a hard mismatch; everything else
// degrades.
func discoverCapabilities(ctx context.Context, db *sql.DB) (capabilities, error) {
	caps := capabilities{AttrColumns: make(map[string]bool)}

	assetCols, err := tableColumns(ctx, db, "ZASSET")
	if err != nil {
		return caps, classify("inspect asset table", err)
	}
	if len(assetCols) == 0 {
		return caps, fmt.Errorf("%w: asset table ZASSET is missing", ErrSchemaMismatch)
	}
	caps.AssetTrashed = hasColumn(assetCols, "ZTRASHEDSTATE")

	albumCols, err := tableColumns(ctx, db, "ZGENERICALBUM")
	if err != nil {
		return caps, classify("inspect album table", err)
	}
	caps.AlbumTrashed = hasColumn(albumCols, "ZTRASHEDSTATE")

	attrCols, err := tableColumns(ctx, db, "ZADDITIONALASSETATTRIBUTES")
	if err != nil {
		return caps, classify("inspect attributes table", err)
	}
	if len(attrCols) > 0 && hasColumn(attrCols, "ZASSET") {
		caps.Attributes = true
		for _, col := range detailAttrColumns {
			if hasColumn(attrCols, col) {
				caps.AttrColumns[col] = true
			}
		}
	}

	return caps, nil
}

// detectJoin finds the album/asset join table: candidate names match the
// Z_<token>ASSETS pattern, and the qualifying table exposes exactly one
// column referencing albums and exactly one referencing assets. Returns nil
// when no candidate qualifies; that is a degraded mode, not an error.
func detectJoin(ctx context.Context, db *sql.DB) (*joinDescriptor, error) {
	rows, err := db.QueryContext(
		ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name LIKE 'Z\_%ASSETS' ESCAPE '\' ORDER BY name`,
	)
	if err != nil {
		return nil, classify("list join candidates", err)
	}
	defer rows.Close()

	var candidates []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan join candidate: %w", err)
		}
		candidates = append(candidates, name)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list join candidates", err)
	}

	for _, table := range candidates {
		cols, err := tableColumns(ctx, db, table)
		if err != nil {
			return nil, classify("inspect join candidate", err)
		}
		var albumCols, assetCols []string
		for _, col := range cols {
			upper := strings.ToUpper(col)
			switch {
			case strings.Contains(upper, "ALBUM"):
				albumCols = append(albumCols, col)
			case strings.Contains(upper, "ASSET"):
				assetCols = append(assetCols, col)
			}
		}
		if len(albumCols) == 1 && len(assetCols) == 1 {
			return &joinDescriptor{
				Table:       table,
				AlbumColumn: albumCols[0],
				AssetColumn: assetCols[0],
			}, nil
		}
	}
	return nil, nil
}

// tableColumns returns the column names of a table, or an empty slice when
// the table does not exist.
func tableColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid     int
			name    string
			typeStr string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typeStr, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table info %s: %w", table, err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table info %s: %w", table, err)
	}
	return columns, nil
}

func hasColumn(columns []string, name string) bool {
	for _, col := range columns {
		if strings.EqualFold(col, name) {
			return true
		}
	}
	return false
}
