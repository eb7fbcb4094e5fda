package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSource(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestRunCopiesIntoDirectory(t *testing.T) {
	src := writeSource(t, "IMG_0042.HEIC", "pixels")
	destDir := t.TempDir()

	dest, err := Run(Request{
		SourcePath:     src,
		SourceVerified: true,
		Filename:       "IMG_0042.HEIC",
		Destination:    destDir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if dest != filepath.Join(destDir, "IMG_0042.HEIC") {
		t.Fatalf("unexpected destination %q", dest)
	}
	body, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(body) != "pixels" {
		t.Fatalf("unexpected contents %q", body)
	}
}

func TestRunCreatesMissingParentDirectories(t *testing.T) {
	src := writeSource(t, "clip.mov", "frames")
	dest := filepath.Join(t.TempDir(), "exports", "2024", "clip.mov")

	got, err := Run(Request{SourcePath: src, SourceVerified: true, Destination: dest})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != dest {
		t.Fatalf("unexpected destination %q", got)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("destination missing: %v", err)
	}
}

func TestRunRefusesUnverifiedSource(t *testing.T) {
	_, err := Run(Request{SourcePath: "/library/originals/0/gone.jpg", Destination: t.TempDir()})
	if !errors.Is(err, ErrSourceMissing) {
		t.Fatalf("expected ErrSourceMissing, got %v", err)
	}
}

func TestRunRefusesExistingDestination(t *testing.T) {
	src := writeSource(t, "a.jpg", "new")
	dest := filepath.Join(t.TempDir(), "a.jpg")
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed destination: %v", err)
	}

	_, err := Run(Request{SourcePath: src, SourceVerified: true, Destination: dest})
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("expected ErrDestinationExists, got %v", err)
	}
	body, _ := os.ReadFile(dest)
	if string(body) != "old" {
		t.Fatalf("destination was clobbered: %q", body)
	}
}

func TestRunOverwritesWhenAsked(t *testing.T) {
	src := writeSource(t, "a.jpg", "new")
	dest := filepath.Join(t.TempDir(), "a.jpg")
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed destination: %v", err)
	}

	if _, err := Run(Request{SourcePath: src, SourceVerified: true, Destination: dest, Overwrite: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	body, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(body) != "new" {
		t.Fatalf("expected overwrite, got %q", body)
	}
}

func TestRunPreservesModificationTime(t *testing.T) {
	src := writeSource(t, "old.jpg", "pixels")
	taken := time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, taken, taken); err != nil {
		t.Fatalf("set source mtime: %v", err)
	}

	dest, err := Run(Request{SourcePath: src, SourceVerified: true, Destination: filepath.Join(t.TempDir(), "old.jpg")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("stat destination: %v", err)
	}
	if !info.ModTime().Equal(taken) {
		t.Fatalf("mtime %v, want %v", info.ModTime(), taken)
	}
}
