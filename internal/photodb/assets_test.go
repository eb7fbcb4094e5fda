package photodb_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"photofind/internal/photodb"
	"photofind/internal/testsupport"
)

// appleSeconds converts a wall-clock time to store-native epoch seconds.
func appleSeconds(when time.Time) *float64 {
	return testsupport.Float(float64(when.Unix()) - 978307200)
}

func TestSearchOrdersNewestFirstAndCapsResults(t *testing.T) {
	lib := testsupport.NewDefaultLibrary(t)
	now := time.Now()
	lib.AddAsset(testsupport.AssetSeed{UUID: "old", Filename: "trip_old.jpg", Created: appleSeconds(now.Add(-72 * time.Hour))})
	lib.AddAsset(testsupport.AssetSeed{UUID: "new", Filename: "trip_new.jpg", Created: appleSeconds(now.Add(-1 * time.Hour))})
	lib.AddAsset(testsupport.AssetSeed{UUID: "mid", Filename: "trip_mid.jpg", Created: appleSeconds(now.Add(-24 * time.Hour))})
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	assets, err := store.Search(context.Background(), "trip", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(assets))
	}
	if assets[0].UUID != "new" || assets[1].UUID != "mid" {
		t.Fatalf("unexpected order: %s, %s", assets[0].UUID, assets[1].UUID)
	}
}

func TestSearchMatchesTitleAndOriginalFilename(t *testing.T) {
	lib := testsupport.NewDefaultLibrary(t)
	lib.AddAsset(testsupport.AssetSeed{UUID: "titled", Filename: "IMG_0001.HEIC", Title: "Beach sunset"})
	lib.AddAsset(testsupport.AssetSeed{UUID: "renamed", Filename: "IMG_0002.HEIC", OriginalFilename: "beach_pano.jpg"})
	lib.AddAsset(testsupport.AssetSeed{UUID: "other", Filename: "IMG_0003.HEIC"})
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	assets, err := store.Search(context.Background(), "beach", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(assets))
	}
}

func TestSearchExcludesTrashedAssets(t *testing.T) {
	lib := testsupport.NewDefaultLibrary(t)
	lib.AddAsset(testsupport.AssetSeed{UUID: "kept", Filename: "dog.jpg"})
	lib.AddAsset(testsupport.AssetSeed{UUID: "binned", Filename: "dog_blurry.jpg", Trashed: true})
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	assets, err := store.Search(context.Background(), "dog", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(assets) != 1 || assets[0].UUID != "kept" {
		t.Fatalf("expected only the kept asset, got %+v", assets)
	}
}

func TestSearchOnLegacySchemaMatchesFilenameOnly(t *testing.T) {
	lib := testsupport.NewLibrary(t, testsupport.LibraryOptions{Legacy: true})
	lib.AddAsset(testsupport.AssetSeed{UUID: "hit", Filename: "holiday.jpg"})
	lib.AddAsset(testsupport.AssetSeed{UUID: "miss", Filename: "IMG_0004.HEIC"})
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	assets, err := store.Search(context.Background(), "holiday", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(assets) != 1 || assets[0].UUID != "hit" {
		t.Fatalf("expected one filename match, got %+v", assets)
	}
}

func TestSearchOnLegacySchemaKeepsOrderingAndLimit(t *testing.T) {
	lib := testsupport.NewLibrary(t, testsupport.LibraryOptions{Legacy: true})
	now := time.Now()
	lib.AddAsset(testsupport.AssetSeed{UUID: "old", Filename: "walk_old.jpg", Created: appleSeconds(now.Add(-72 * time.Hour))})
	lib.AddAsset(testsupport.AssetSeed{UUID: "new", Filename: "walk_new.jpg", Created: appleSeconds(now.Add(-1 * time.Hour))})
	lib.AddAsset(testsupport.AssetSeed{UUID: "mid", Filename: "walk_mid.jpg", Created: appleSeconds(now.Add(-24 * time.Hour))})
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	assets, err := store.Search(context.Background(), "walk", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(assets) != 2 || assets[0].UUID != "new" || assets[1].UUID != "mid" {
		t.Fatalf("reduced schema must keep ordering and limit, got %+v", assets)
	}
}

func TestRecentOnEmptyStoreYieldsNoRowsAndNoError(t *testing.T) {
	lib := testsupport.NewDefaultLibrary(t)
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	assets, err := store.Recent(context.Background(), 7, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(assets) != 0 {
		t.Fatalf("expected no assets, got %d", len(assets))
	}
}

func TestRecentFiltersByCutoff(t *testing.T) {
	lib := testsupport.NewDefaultLibrary(t)
	now := time.Now()
	lib.AddAsset(testsupport.AssetSeed{UUID: "fresh", Filename: "a.jpg", Created: appleSeconds(now.Add(-2 * 24 * time.Hour))})
	lib.AddAsset(testsupport.AssetSeed{UUID: "stale", Filename: "b.jpg", Created: appleSeconds(now.Add(-30 * 24 * time.Hour))})
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	assets, err := store.Recent(context.Background(), 7, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(assets) != 1 || assets[0].UUID != "fresh" {
		t.Fatalf("expected only the fresh asset, got %+v", assets)
	}
}

func TestAssetByTokenMatchesIdentifier(t *testing.T) {
	lib := testsupport.NewDefaultLibrary(t)
	const id = "A1B2C3D4-E5F6-47A8-89B0-C1D2E3F4A5B6"
	lib.AddAsset(testsupport.AssetSeed{
		UUID:             id,
		Filename:         "IMG_0100.HEIC",
		Kind:             1,
		Duration:         12.5,
		CameraMake:       "Apple",
		CameraModel:      "iPhone 15 Pro",
		FocalLength35mm:  24,
		OriginalFileSize: 4_200_000,
	})
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	detail, err := store.AssetByToken(context.Background(), id)
	if err != nil {
		t.Fatalf("AssetByToken: %v", err)
	}
	if detail.UUID != id {
		t.Fatalf("unexpected UUID %q", detail.UUID)
	}
	if detail.Kind == nil || *detail.Kind != 1 {
		t.Fatalf("expected kind 1, got %v", detail.Kind)
	}
	if detail.Duration == nil || *detail.Duration != 12.5 {
		t.Fatalf("expected duration 12.5, got %v", detail.Duration)
	}
	if detail.CameraMake != "Apple" || detail.CameraModel != "iPhone 15 Pro" {
		t.Fatalf("unexpected camera fields: %q %q", detail.CameraMake, detail.CameraModel)
	}
	if detail.FocalLength35mm == nil || *detail.FocalLength35mm != 24 {
		t.Fatalf("expected focal length 24, got %v", detail.FocalLength35mm)
	}
	if detail.OriginalFileSize == nil || *detail.OriginalFileSize != 4_200_000 {
		t.Fatalf("expected file size, got %v", detail.OriginalFileSize)
	}
}

func TestAssetByTokenTreatsPathAsFilename(t *testing.T) {
	lib := testsupport.NewDefaultLibrary(t)
	lib.AddAsset(testsupport.AssetSeed{UUID: "x", Filename: "IMG_0200.HEIC"})
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	detail, err := store.AssetByToken(context.Background(), "/some/export/img_0200.heic")
	if err != nil {
		t.Fatalf("AssetByToken: %v", err)
	}
	if detail.UUID != "x" {
		t.Fatalf("unexpected UUID %q", detail.UUID)
	}
}

func TestAssetByTokenNotFound(t *testing.T) {
	lib := testsupport.NewDefaultLibrary(t)
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	_, err := store.AssetByToken(context.Background(), "nothing.jpg")
	if !errors.Is(err, photodb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssetByTokenAmbiguousFilename(t *testing.T) {
	lib := testsupport.NewDefaultLibrary(t)
	lib.AddAsset(testsupport.AssetSeed{UUID: "one", Filename: "twin.jpg"})
	lib.AddAsset(testsupport.AssetSeed{UUID: "two", Filename: "twin.jpg"})
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	_, err := store.AssetByToken(context.Background(), "twin.jpg")
	if !errors.Is(err, photodb.ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
}

func TestAssetByTokenOnLegacySchemaOmitsAttributeFields(t *testing.T) {
	lib := testsupport.NewLibrary(t, testsupport.LibraryOptions{Legacy: true})
	lib.AddAsset(testsupport.AssetSeed{UUID: "legacy", Filename: "old.jpg"})
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	detail, err := store.AssetByToken(context.Background(), "old.jpg")
	if err != nil {
		t.Fatalf("AssetByToken: %v", err)
	}
	if detail.CameraMake != "" || detail.OriginalFileSize != nil || detail.Title != "" {
		t.Fatalf("expected attribute fields absent, got %+v", detail)
	}
}

func TestSearchResolvesVerifiedPaths(t *testing.T) {
	lib := testsupport.NewDefaultLibrary(t)
	lib.AddAsset(testsupport.AssetSeed{UUID: "disk", Filename: "ondisk.jpg", Directory: "1/23"})
	lib.WriteOriginal("originals", "1/23", "ondisk.jpg")
	store := testsupport.MustOpenStore(t, lib, photodb.Options{})

	assets, err := store.Search(context.Background(), "ondisk", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("expected one asset, got %d", len(assets))
	}
	res := assets[0].Path
	if res == nil || !res.Verified {
		t.Fatalf("expected a verified path, got %+v", res)
	}
}
