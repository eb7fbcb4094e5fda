package photodb

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	_ "modernc.org/sqlite"

	"photofind/internal/library"
)

// defaultLimit caps result sets when the caller passes no explicit limit.
const defaultLimit = 20

// Store is a read-only handle on one Photos library database. Schema
// discovery happens once per Store and is never reused across connections,
// since a different library file may carry a different schema version.
type Store struct {
	db     *sql.DB
	path   string
	root   string
	join   *joinDescriptor
	caps   capabilities
	exists func(string) bool
	log    *slog.Logger
}

// Options tunes Store construction. The zero value is usable.
type Options struct {
	// Logger receives discovery events at debug level. Nil discards them.
	Logger *slog.Logger
	// Exists overrides the on-disk existence probe used by path resolution.
	// Nil uses os.Stat.
	Exists func(string) bool
}

// Open connects to the database at dbPath in read-only mode and runs schema
// discovery. The caller owns the returned Store and must Close it on every
// exit path.
func Open(ctx context.Context, dbPath string, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open photos database: %w", err)
	}
	// One connection, one outstanding query at a time.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, classify("connect to photos database", err)
	}

	caps, err := discoverCapabilities(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	join, err := detectJoin(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{
		db:     db,
		path:   dbPath,
		root:   library.Root(dbPath),
		join:   join,
		caps:   caps,
		exists: opts.Exists,
		log:    logger,
	}

	if join != nil {
		logger.Debug("album join table detected",
			"table", join.Table, "album_column", join.AlbumColumn, "asset_column", join.AssetColumn)
	} else {
		logger.Debug("album join table undetected; membership queries degraded")
	}
	logger.Debug("schema capabilities discovered",
		"asset_trashed", caps.AssetTrashed,
		"album_trashed", caps.AlbumTrashed,
		"attributes", caps.Attributes)

	return store, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file backing this Store.
func (s *Store) Path() string { return s.path }

// Root returns the library bundle directory anchoring asset path fragments.
func (s *Store) Root() string { return s.root }

// Join reports the detected album/asset join relation, if any.
func (s *Store) Join() (table, albumColumn, assetColumn string, ok bool) {
	if s.join == nil {
		return "", "", "", false
	}
	return s.join.Table, s.join.AlbumColumn, s.join.AssetColumn, true
}

func (s *Store) resolve(directory, filename string) *Resolution {
	res, ok := ResolvePath(s.root, directory, filename, s.exists)
	if !ok {
		return nil
	}
	return &res
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
