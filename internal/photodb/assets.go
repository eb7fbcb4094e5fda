package photodb

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// assetColumns is the base projection shared by every asset query.
const assetColumns = "a.ZUUID, a.ZFILENAME, a.ZDATECREATED, a.ZDIRECTORY, " +
	"a.ZLATITUDE, a.ZLONGITUDE, a.ZWIDTH, a.ZHEIGHT"

// Search returns assets whose filename (or, when this schema version carries
// the extended-attributes table, title or original filename) contains the
// keyword, newest first, capped at limit.
func (s *Store) Search(ctx context.Context, keyword string, limit int) ([]Asset, error) {
	limit = normalizeLimit(limit)
	pattern := "%" + keyword + "%"

	var b strings.Builder
	b.WriteString(`SELECT ` + assetColumns + ` FROM ZASSET a`)
	if s.caps.Attributes {
		b.WriteString(` LEFT JOIN ZADDITIONALASSETATTRIBUTES attr ON attr.ZASSET = a.Z_PK`)
	}

	matches := []string{`a.ZFILENAME LIKE ? COLLATE NOCASE`}
	args := []any{pattern}
	if s.caps.Attributes && s.caps.AttrColumns["ZTITLE"] {
		matches = append(matches, `attr.ZTITLE LIKE ? COLLATE NOCASE`)
		args = append(args, pattern)
	}
	if s.caps.Attributes && s.caps.AttrColumns["ZORIGINALFILENAME"] {
		matches = append(matches, `attr.ZORIGINALFILENAME LIKE ? COLLATE NOCASE`)
		args = append(args, pattern)
	}

	b.WriteString(` WHERE `)
	if s.caps.AssetTrashed {
		b.WriteString(`a.ZTRASHEDSTATE = 0 AND `)
	}
	b.WriteString(`(` + strings.Join(matches, ` OR `) + `)`)
	b.WriteString(` ORDER BY a.ZDATECREATED DESC LIMIT ?`)
	args = append(args, limit)

	return s.queryAssets(ctx, "search assets", b.String(), args...)
}

// Recent returns non-trashed assets created within the last N days, newest
// first, capped at limit. An empty store yields zero records and no error.
func (s *Store) Recent(ctx context.Context, days, limit int) ([]Asset, error) {
	if days <= 0 {
		days = 7
	}
	limit = normalizeLimit(limit)

	cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	storeCutoff := float64(cutoff.Unix()) - appleEpochOffset

	var b strings.Builder
	b.WriteString(`SELECT ` + assetColumns + ` FROM ZASSET a WHERE `)
	if s.caps.AssetTrashed {
		b.WriteString(`a.ZTRASHEDSTATE = 0 AND `)
	}
	b.WriteString(`a.ZDATECREATED >= ? ORDER BY a.ZDATECREATED DESC LIMIT ?`)

	return s.queryAssets(ctx, "recent assets", b.String(), storeCutoff, limit)
}

// AssetByToken looks up a single asset. A token shaped like an identifier
// (36 characters, four separators, parseable UUID) matches by ZUUID; anything
// else is treated as a path whose last component matches the filename
// case-insensitively. Zero matches is ErrNotFound; more than one where the
// operation implies uniqueness is ErrAmbiguous.
func (s *Store) AssetByToken(ctx context.Context, token string) (*AssetDetail, error) {
	where := `a.ZFILENAME = ? COLLATE NOCASE`
	arg := path.Base(strings.TrimSpace(token))
	if isIdentifier(token) {
		where = `a.ZUUID = ?`
		arg = strings.TrimSpace(token)
	}

	attrCols := s.detailAttrProjection()

	var b strings.Builder
	b.WriteString(`SELECT ` + assetColumns + `, a.ZDURATION, a.ZKIND`)
	for _, col := range attrCols {
		b.WriteString(`, attr.` + col)
	}
	b.WriteString(` FROM ZASSET a`)
	if len(attrCols) > 0 {
		b.WriteString(` LEFT JOIN ZADDITIONALASSETATTRIBUTES attr ON attr.ZASSET = a.Z_PK`)
	}
	b.WriteString(` WHERE ` + where + ` ORDER BY a.Z_PK LIMIT 2`)

	rows, err := s.db.QueryContext(ctx, b.String(), arg)
	if err != nil {
		return nil, classify("look up asset", err)
	}
	defer rows.Close()

	var found []*AssetDetail
	for rows.Next() {
		detail, err := s.scanAssetDetail(rows, attrCols)
		if err != nil {
			return nil, err
		}
		found = append(found, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("look up asset", err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: asset %q", ErrNotFound, token)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: token %q matches more than one asset", ErrAmbiguous, token)
	}
}

// isIdentifier reports whether token matches the store's identifier format:
// fixed length, fixed separator count, valid UUID shape.
func isIdentifier(token string) bool {
	token = strings.TrimSpace(token)
	if len(token) != 36 || strings.Count(token, "-") != 4 {
		return false
	}
	_, err := uuid.Parse(token)
	return err == nil
}

// detailAttrProjection returns the extended-attributes columns present in
// this schema version, in fixed output order.
func (s *Store) detailAttrProjection() []string {
	if !s.caps.Attributes {
		return nil
	}
	cols := make([]string, 0, len(detailAttrColumns))
	for _, col := range detailAttrColumns {
		if s.caps.AttrColumns[col] {
			cols = append(cols, col)
		}
	}
	return cols
}

func (s *Store) queryAssets(ctx context.Context, operation, query string, args ...any) ([]Asset, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(operation, err)
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		asset, err := s.scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(operation, err)
	}
	return assets, nil
}

func (s *Store) scanAsset(scanner interface{ Scan(dest ...any) error }) (Asset, error) {
	var (
		uuidVal   sql.NullString
		filename  sql.NullString
		created   sql.NullFloat64
		directory sql.NullString
		latitude  sql.NullFloat64
		longitude sql.NullFloat64
		width     sql.NullInt64
		height    sql.NullInt64
	)
	if err := scanner.Scan(&uuidVal, &filename, &created, &directory, &latitude, &longitude, &width, &height); err != nil {
		return Asset{}, fmt.Errorf("scan asset: %w", err)
	}

	asset := Asset{
		UUID:      uuidVal.String,
		Filename:  filename.String,
		Taken:     timeFromAppleEpoch(created),
		Directory: directory.String,
		Width:     width.Int64,
		Height:    height.Int64,
		Location:  locationFrom(latitude, longitude),
	}
	asset.Path = s.resolve(asset.Directory, asset.Filename)
	return asset, nil
}

func (s *Store) scanAssetDetail(scanner interface{ Scan(dest ...any) error }, attrCols []string) (*AssetDetail, error) {
	var (
		uuidVal   sql.NullString
		filename  sql.NullString
		created   sql.NullFloat64
		directory sql.NullString
		latitude  sql.NullFloat64
		longitude sql.NullFloat64
		width     sql.NullInt64
		height    sql.NullInt64
		duration  sql.NullFloat64
		kind      sql.NullInt64
	)
	dests := []any{&uuidVal, &filename, &created, &directory, &latitude, &longitude, &width, &height, &duration, &kind}

	// Extended-attributes columns vary by schema version; scan whatever this
	// store exposes and branch on presence afterwards.
	strVals := make([]sql.NullString, len(attrCols))
	intVals := make([]sql.NullInt64, len(attrCols))
	for i, col := range attrCols {
		switch col {
		case "ZFOCALLENGTHIN35MMFORMAT", "ZORIGINALFILESIZE":
			dests = append(dests, &intVals[i])
		default:
			dests = append(dests, &strVals[i])
		}
	}

	if err := scanner.Scan(dests...); err != nil {
		return nil, fmt.Errorf("scan asset detail: %w", err)
	}

	detail := &AssetDetail{
		Asset: Asset{
			UUID:      uuidVal.String,
			Filename:  filename.String,
			Taken:     timeFromAppleEpoch(created),
			Directory: directory.String,
			Width:     width.Int64,
			Height:    height.Int64,
			Location:  locationFrom(latitude, longitude),
		},
	}
	detail.Path = s.resolve(detail.Directory, detail.Filename)
	if duration.Valid && duration.Float64 > 0 {
		detail.Duration = &duration.Float64
	}
	if kind.Valid {
		detail.Kind = &kind.Int64
	}

	for i, col := range attrCols {
		switch col {
		case "ZTITLE":
			detail.Title = strVals[i].String
		case "ZORIGINALFILENAME":
			detail.OriginalFilename = strVals[i].String
		case "ZCAMERAMAKE":
			detail.CameraMake = strVals[i].String
		case "ZCAMERAMODEL":
			detail.CameraModel = strVals[i].String
		case "ZLENSMAKE":
			detail.LensMake = strVals[i].String
		case "ZLENSMODEL":
			detail.LensModel = strVals[i].String
		case "ZEXIFTIMESTAMPSTRING":
			detail.EXIFTimestamp = strVals[i].String
		case "ZFOCALLENGTHIN35MMFORMAT":
			if intVals[i].Valid && intVals[i].Int64 != 0 {
				detail.FocalLength35mm = &intVals[i].Int64
			}
		case "ZORIGINALFILESIZE":
			if intVals[i].Valid && intVals[i].Int64 > 0 {
				detail.OriginalFileSize = &intVals[i].Int64
			}
		}
	}
	return detail, nil
}
