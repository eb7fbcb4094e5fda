// Package testsupport builds synthetic Photos libraries for tests.
//
// Fixtures cover the schema variants the engine adapts to: modern stores with
// trashed-state columns and the extended-attributes table, legacy stores
// without them, and join tables under any version-dependent name.
package testsupport

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

// LibraryOptions selects the schema variant for a fixture library.
type LibraryOptions struct {
	// JoinTable, JoinAlbumColumn, JoinAssetColumn name the membership
	// relation. All empty means no join table at all.
	JoinTable       string
	JoinAlbumColumn string
	JoinAssetColumn string

	// Legacy drops the trashed-state columns and the extended-attributes
	// table, mimicking older store versions.
	Legacy bool
}

// DefaultLibraryOptions mirrors a current-generation store.
func DefaultLibraryOptions() LibraryOptions {
	return LibraryOptions{
		JoinTable:       "Z_28ASSETS",
		JoinAlbumColumn: "Z_28ALBUMS",
		JoinAssetColumn: "Z_3ASSETS",
	}
}

// Library is a writable fixture store plus the bundle layout around it.
type Library struct {
	t    testing.TB
	db   *sql.DB
	opts LibraryOptions

	// Root is the .photoslibrary bundle directory.
	Root string
	// DBPath is the database file inside the bundle.
	DBPath string

	nextAssetPK int64
	nextAlbumPK int64
}

// AssetSeed describes one asset row. Zero-valued optional fields insert NULL.
type AssetSeed struct {
	UUID      string
	Filename  string
	Created   *float64 // store-native epoch seconds
	Directory string
	Latitude  *float64
	Longitude *float64
	Width     int64
	Height    int64
	Duration  float64
	Kind      int64
	Trashed   bool

	// Extended attributes; ignored for Legacy libraries.
	Title            string
	OriginalFilename string
	CameraMake       string
	CameraModel      string
	LensMake         string
	LensModel        string
	FocalLength35mm  int64
	OriginalFileSize int64
	EXIFTimestamp    string
}

// NewLibrary creates a fixture library under t.TempDir with the requested
// schema variant and registers cleanup.
func NewLibrary(t testing.TB, opts LibraryOptions) *Library {
	t.Helper()

	root := filepath.Join(t.TempDir(), "Test.photoslibrary")
	dbDir := filepath.Join(root, "database")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		t.Fatalf("mkdir database dir: %v", err)
	}
	dbPath := filepath.Join(dbDir, "Photos.sqlite")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	lib := &Library{t: t, db: db, opts: opts, Root: root, DBPath: dbPath}
	lib.createSchema()
	return lib
}

// NewDefaultLibrary creates a modern-schema fixture library.
func NewDefaultLibrary(t testing.TB) *Library {
	t.Helper()
	return NewLibrary(t, DefaultLibraryOptions())
}

func (l *Library) createSchema() {
	l.t.Helper()

	assetCols := []string{
		"Z_PK INTEGER PRIMARY KEY",
		"ZUUID TEXT",
		"ZFILENAME TEXT",
		"ZDATECREATED REAL",
		"ZDIRECTORY TEXT",
		"ZLATITUDE REAL",
		"ZLONGITUDE REAL",
		"ZWIDTH INTEGER",
		"ZHEIGHT INTEGER",
		"ZDURATION REAL",
		"ZKIND INTEGER",
	}
	albumCols := []string{
		"Z_PK INTEGER PRIMARY KEY",
		"ZTITLE TEXT",
		"ZUUID TEXT",
	}
	if !l.opts.Legacy {
		assetCols = append(assetCols, "ZTRASHEDSTATE INTEGER DEFAULT 0")
		albumCols = append(albumCols, "ZTRASHEDSTATE INTEGER DEFAULT 0")
	}

	l.exec(fmt.Sprintf("CREATE TABLE ZASSET (%s)", strings.Join(assetCols, ", ")))
	l.exec(fmt.Sprintf("CREATE TABLE ZGENERICALBUM (%s)", strings.Join(albumCols, ", ")))

	if !l.opts.Legacy {
		l.exec(`CREATE TABLE ZADDITIONALASSETATTRIBUTES (
			Z_PK INTEGER PRIMARY KEY,
			ZASSET INTEGER,
			ZTITLE TEXT,
			ZORIGINALFILENAME TEXT,
			ZCAMERAMAKE TEXT,
			ZCAMERAMODEL TEXT,
			ZLENSMAKE TEXT,
			ZLENSMODEL TEXT,
			ZFOCALLENGTHIN35MMFORMAT INTEGER,
			ZORIGINALFILESIZE INTEGER,
			ZEXIFTIMESTAMPSTRING TEXT
		)`)
	}

	if l.opts.JoinTable != "" {
		l.exec(fmt.Sprintf(
			"CREATE TABLE %q (%q INTEGER, %q INTEGER)",
			l.opts.JoinTable, l.opts.JoinAlbumColumn, l.opts.JoinAssetColumn,
		))
	}
}

// CreateTable adds an arbitrary extra table, for join-detection edge cases.
func (l *Library) CreateTable(ddl string) {
	l.t.Helper()
	l.exec(ddl)
}

// DropTable removes a table, for missing-schema edge cases.
func (l *Library) DropTable(name string) {
	l.t.Helper()
	l.exec(fmt.Sprintf("DROP TABLE %q", name))
}

// AddAsset inserts an asset (and, on non-legacy schemas, its attributes row)
// and returns its primary key.
func (l *Library) AddAsset(seed AssetSeed) int64 {
	l.t.Helper()

	l.nextAssetPK++
	pk := l.nextAssetPK

	cols := []string{"Z_PK", "ZUUID", "ZFILENAME", "ZDATECREATED", "ZDIRECTORY",
		"ZLATITUDE", "ZLONGITUDE", "ZWIDTH", "ZHEIGHT", "ZDURATION", "ZKIND"}
	args := []any{pk, nullable(seed.UUID), nullable(seed.Filename), nullableFloat(seed.Created),
		nullable(seed.Directory), nullableFloat(seed.Latitude), nullableFloat(seed.Longitude),
		seed.Width, seed.Height, seed.Duration, seed.Kind}
	if !l.opts.Legacy {
		cols = append(cols, "ZTRASHEDSTATE")
		args = append(args, boolToInt(seed.Trashed))
	}

	l.exec(fmt.Sprintf(
		"INSERT INTO ZASSET (%s) VALUES (%s)",
		strings.Join(cols, ", "), placeholders(len(cols)),
	), args...)

	if !l.opts.Legacy {
		l.exec(`INSERT INTO ZADDITIONALASSETATTRIBUTES (
			ZASSET, ZTITLE, ZORIGINALFILENAME, ZCAMERAMAKE, ZCAMERAMODEL,
			ZLENSMAKE, ZLENSMODEL, ZFOCALLENGTHIN35MMFORMAT, ZORIGINALFILESIZE,
			ZEXIFTIMESTAMPSTRING
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			pk, nullable(seed.Title), nullable(seed.OriginalFilename),
			nullable(seed.CameraMake), nullable(seed.CameraModel),
			nullable(seed.LensMake), nullable(seed.LensModel),
			nullableInt(seed.FocalLength35mm), nullableInt(seed.OriginalFileSize),
			nullable(seed.EXIFTimestamp))
	}

	return pk
}

// AddAlbum inserts an album and returns its primary key. An empty title
// inserts NULL.
func (l *Library) AddAlbum(title, uuid string, trashed bool) int64 {
	l.t.Helper()

	l.nextAlbumPK++
	pk := l.nextAlbumPK

	if l.opts.Legacy {
		l.exec("INSERT INTO ZGENERICALBUM (Z_PK, ZTITLE, ZUUID) VALUES (?, ?, ?)",
			pk, nullable(title), nullable(uuid))
	} else {
		l.exec("INSERT INTO ZGENERICALBUM (Z_PK, ZTITLE, ZUUID, ZTRASHEDSTATE) VALUES (?, ?, ?, ?)",
			pk, nullable(title), nullable(uuid), boolToInt(trashed))
	}
	return pk
}

// Link records a membership between an album and an asset.
func (l *Library) Link(albumPK, assetPK int64) {
	l.t.Helper()
	if l.opts.JoinTable == "" {
		l.t.Fatal("fixture has no join table")
	}
	l.exec(fmt.Sprintf(
		"INSERT INTO %q (%q, %q) VALUES (?, ?)",
		l.opts.JoinTable, l.opts.JoinAlbumColumn, l.opts.JoinAssetColumn,
	), albumPK, assetPK)
}

// WriteOriginal materializes an asset file under the given layout directory
// (originals or masters) so path resolution can verify it.
func (l *Library) WriteOriginal(layout, directory, filename string) string {
	l.t.Helper()
	dir := filepath.Join(l.Root, layout, directory)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		l.t.Fatalf("mkdir layout dir: %v", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte("image-bytes"), 0o644); err != nil {
		l.t.Fatalf("write original: %v", err)
	}
	return path
}

func (l *Library) exec(query string, args ...any) {
	l.t.Helper()
	if _, err := l.db.Exec(query, args...); err != nil {
		l.t.Fatalf("fixture exec %q: %v", query, err)
	}
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func placeholders(count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = "?"
	}
	return strings.Join(parts, ", ")
}

// Float is shorthand for seeding optional float columns.
func Float(v float64) *float64 { return &v }
