package saver

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultDir returns the directory downloads land in when none is given:
//
//	$HOME/Downloads/Podcasts
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "Downloads", "Podcasts"), nil
}

// Prep ensures that dir exists.
func Prep(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create download directory %s: %w", dir, err)
	}

	return nil
}

// Dir saves files into a directory on the local filesystem.
type Dir struct {
	Path   string
	logger *slog.Logger
}

// NewDir creates a Dir saver rooted at path. A nil logger means slog.Default().
func NewDir(path string, logger *slog.Logger) *Dir {
	if logger == nil {
		logger = slog.Default()
	}

	return &Dir{Path: path, logger: logger}
}

// Target returns the path SaveBytes writes filename to.
func (d *Dir) Target(filename string) (string, error) {
	name, err := CleanFilename(filename)
	if err != nil {
		return "", err
	}

	return filepath.Join(d.Path, name), nil
}

// SaveBytes writes data to Path/filename.
//
// The bytes are first written to a staging file in the same directory and
// renamed into place, so a reader never sees a partial file. The staging
// file is removed on every return path.
func (d *Dir) SaveBytes(filename string, data []byte) error {
	target, err := d.Target(filename)
	if err != nil {
		return err
	}
	name := filepath.Base(target)

	logger := d.logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := Prep(d.Path); err != nil {
		return err
	}

	staged, err := os.CreateTemp(d.Path, "."+name+".*.part")
	if err != nil {
		return fmt.Errorf("failed to create staging file: %w", err)
	}

	// always release the staging file; after a successful rename this is a no-op
	defer func() {
		_ = staged.Close()
		if err := os.Remove(staged.Name()); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove staging file", "path", staged.Name(), "error", err)
		}
	}()

	if _, err := staged.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := staged.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", name, err)
	}

	if err := staged.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	if err := os.Rename(staged.Name(), target); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", name, err)
	}

	logger.Debug("Saved podcast audio", "path", target, "bytes", len(data))

	return nil
}
