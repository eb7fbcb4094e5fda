package testsupport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"photofind/internal/photodb"
)

// MustOpenStore opens a read-only engine over a fixture library and
// registers cleanup.
func MustOpenStore(t testing.TB, lib *Library, opts photodb.Options) *photodb.Store {
	t.Helper()

	store, err := photodb.Open(context.Background(), lib.DBPath, opts)
	if err != nil {
		t.Fatalf("photodb.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// WriteConfig writes a config file pointing at the fixture library and
// returns its path, for CLI tests.
func WriteConfig(t testing.TB, lib *Library) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	body := fmt.Sprintf("[library]\ndatabase_path = %q\n", lib.DBPath)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}
