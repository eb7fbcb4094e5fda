package photodb_test

import (
	"context"
	"errors"
	"testing"

	"photofind/internal/photodb"
	"photofind/internal/testsupport"
)

func TestJoinDetectionReportsExactColumnNames(t *testing.T) {
	lib := testsupport.NewLibrary(t, testsupport.LibraryOptions{
		JoinTable:       "Z_27ASSETS",
		JoinAlbumColumn: "fooALBUMS",
		JoinAssetColumn: "barASSETS",
	})
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	table, albumCol, assetCol, ok := store.Join()
	if !ok {
		t.Fatal("expected join table to be detected")
	}
	if table != "Z_27ASSETS" || albumCol != "fooALBUMS" || assetCol != "barASSETS" {
		t.Fatalf("unexpected join descriptor: %s (%s, %s)", table, albumCol, assetCol)
	}
}

func TestJoinDetectionRejectsTableWithoutAlbumColumn(t *testing.T) {
	lib := testsupport.NewLibrary(t, testsupport.LibraryOptions{})
	lib.CreateTable("CREATE TABLE Z_29ASSETS (firstASSETS INTEGER, secondASSETS INTEGER)")
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	if _, _, _, ok := store.Join(); ok {
		t.Fatal("expected no join detection for a table with two asset-like columns")
	}
}

func TestJoinDetectionRejectsAmbiguousAlbumColumns(t *testing.T) {
	lib := testsupport.NewLibrary(t, testsupport.LibraryOptions{})
	lib.CreateTable("CREATE TABLE Z_30ASSETS (xALBUMS INTEGER, yALBUMS INTEGER, zASSETS INTEGER)")
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	if _, _, _, ok := store.Join(); ok {
		t.Fatal("expected no join detection when two album-like columns exist")
	}
}

func TestJoinDetectionPicksFirstQualifyingTable(t *testing.T) {
	lib := testsupport.NewLibrary(t, testsupport.LibraryOptions{
		JoinTable:       "Z_28ASSETS",
		JoinAlbumColumn: "Z_28ALBUMS",
		JoinAssetColumn: "Z_3ASSETS",
	})
	lib.CreateTable("CREATE TABLE Z_99ASSETS (otherALBUMS INTEGER, otherASSETS INTEGER)")
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	table, _, _, ok := store.Join()
	if !ok || table != "Z_28ASSETS" {
		t.Fatalf("expected first candidate by name, got %q (ok=%v)", table, ok)
	}
}

func TestOpenFailsWithoutAssetTable(t *testing.T) {
	lib := testsupport.NewLibrary(t, testsupport.LibraryOptions{})
	lib.DropTable("ZASSET")

	_, err := photodb.Open(context.Background(), lib.DBPath, photodb.Options{})
	if err == nil {
		t.Fatal("expected schema mismatch error")
	}
	if !errors.Is(err, photodb.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
