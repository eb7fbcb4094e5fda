package photodb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Albums lists every non-trashed album with a non-NULL title, ordered by
// title. Membership counts come from the detected join table; when detection
// failed the counts are omitted rather than reported as zero.
func (s *Store) Albums(ctx context.Context) ([]Album, error) {
	var b strings.Builder
	b.WriteString(`SELECT ZTITLE, ZUUID, Z_PK FROM ZGENERICALBUM WHERE ZTITLE IS NOT NULL`)
	if s.caps.AlbumTrashed {
		b.WriteString(` AND ZTRASHEDSTATE = 0`)
	}
	b.WriteString(` ORDER BY ZTITLE`)

	rows, err := s.db.QueryContext(ctx, b.String())
	if err != nil {
		return nil, classify("list albums", err)
	}
	defer rows.Close()

	var albums []Album
	var keys []int64
	for rows.Next() {
		var (
			title sql.NullString
			uid   sql.NullString
			pk    int64
		)
		if err := rows.Scan(&title, &uid, &pk); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, Album{Title: title.String, UUID: uid.String})
		keys = append(keys, pk)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list albums", err)
	}

	if s.join == nil {
		return albums, nil
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %q WHERE %q = ?`, s.join.Table, s.join.AlbumColumn)
	for i := range albums {
		var count int
		if err := s.db.QueryRowContext(ctx, countQuery, keys[i]).Scan(&count); err != nil {
			return nil, classify("count album members", err)
		}
		albums[i].AssetCount = &count
	}
	return albums, nil
}

// AlbumAssets resolves an album by name and returns its members, newest
// first, capped at limit. Name resolution tries an exact case-insensitive
// title match before falling back to a substring match; more than one
// candidate at either stage is ErrAmbiguous. Requires a detected join table.
func (s *Store) AlbumAssets(ctx context.Context, name string, limit int) (Album, []Asset, error) {
	if s.join == nil {
		return Album{}, nil, fmt.Errorf("%w: cannot list members of %q", ErrJoinUndetected, name)
	}
	limit = normalizeLimit(limit)

	album, pk, err := s.resolveAlbum(ctx, name)
	if err != nil {
		return Album{}, nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM ZASSET a INNER JOIN %q j ON j.%q = a.Z_PK WHERE j.%q = ? ORDER BY a.ZDATECREATED DESC LIMIT ?`,
		assetColumns, s.join.Table, s.join.AssetColumn, s.join.AlbumColumn,
	)
	assets, err := s.queryAssets(ctx, "list album members", query, pk, limit)
	if err != nil {
		return Album{}, nil, err
	}
	return album, assets, nil
}

// resolveAlbum maps a user-supplied name to one album row.
func (s *Store) resolveAlbum(ctx context.Context, name string) (Album, int64, error) {
	album, pk, n, err := s.matchAlbum(ctx, `ZTITLE = ? COLLATE NOCASE`, name)
	if err != nil {
		return Album{}, 0, err
	}
	if n == 0 {
		album, pk, n, err = s.matchAlbum(ctx, `ZTITLE LIKE ? COLLATE NOCASE`, "%"+name+"%")
		if err != nil {
			return Album{}, 0, err
		}
	}
	switch n {
	case 0:
		return Album{}, 0, fmt.Errorf("%w: album %q", ErrNotFound, name)
	case 1:
		return album, pk, nil
	default:
		return Album{}, 0, fmt.Errorf("%w: album name %q matches more than one album", ErrAmbiguous, name)
	}
}

func (s *Store) matchAlbum(ctx context.Context, predicate string, arg any) (Album, int64, int, error) {
	query := `SELECT Z_PK, ZTITLE, ZUUID FROM ZGENERICALBUM WHERE ZTITLE IS NOT NULL AND ` + predicate + ` ORDER BY Z_PK LIMIT 2`
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return Album{}, 0, 0, classify("resolve album", err)
	}
	defer rows.Close()

	var (
		album Album
		pk    int64
		count int
	)
	for rows.Next() {
		var (
			rowPK sql.NullInt64
			title sql.NullString
			uid   sql.NullString
		)
		if err := rows.Scan(&rowPK, &title, &uid); err != nil {
			return Album{}, 0, 0, fmt.Errorf("scan album match: %w", err)
		}
		if count == 0 {
			album = Album{Title: title.String, UUID: uid.String}
			pk = rowPK.Int64
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return Album{}, 0, 0, classify("resolve album", err)
	}
	return album, pk, count, nil
}
