// Package export copies resolved assets out of the Photos library.
//
// The query engine supplies a resolved source path plus an existence flag;
// this package performs the actual copy and directory creation. It is the
// only component that writes to the filesystem, and it never writes inside
// the library itself.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrDestinationExists means the destination file is already present and
// overwriting was not requested.
var ErrDestinationExists = errors.New("destination already exists")

// ErrSourceMissing means the resolved source path is not on disk, commonly
// because the asset lives only in a cloud tier and was never downloaded.
var ErrSourceMissing = errors.New("source file not on disk")

// Request describes one export operation.
type Request struct {
	// SourcePath is the resolved library path supplied by the engine.
	SourcePath string
	// SourceVerified is the engine's existence flag for SourcePath.
	SourceVerified bool
	// Filename names the file when Destination is a directory.
	Filename string
	// Destination is a target file path or an existing directory.
	Destination string
	// Overwrite permits replacing an existing destination file.
	Overwrite bool
}

// Run copies the asset and returns the final destination path.
func Run(req Request) (string, error) {
	if !req.SourceVerified {
		return "", fmt.Errorf("%w: %s", ErrSourceMissing, req.SourcePath)
	}

	dest := req.Destination
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		if req.Filename == "" {
			req.Filename = filepath.Base(req.SourcePath)
		}
		dest = filepath.Join(dest, req.Filename)
	}

	if _, err := os.Stat(dest); err == nil && !req.Overwrite {
		return "", fmt.Errorf("%w: %s", ErrDestinationExists, dest)
	} else if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("check destination: %w", err)
	}

	if parent := filepath.Dir(dest); parent != "" && parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return "", fmt.Errorf("create destination directory %q: %w", parent, err)
		}
	}

	if err := copyFile(req.SourcePath, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// copyFile streams src to dst and carries over the source modification time
// so exported files keep their capture-era timestamps.
func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("copy: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("flush destination: %w", err)
	}

	if err := os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return fmt.Errorf("preserve timestamps: %w", err)
	}
	return nil
}
