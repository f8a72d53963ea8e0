package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// ArchiveDir moves the audio working directory into an "archive" directory
// next to it, named <dir>-<timestamp>. It returns the archive path.
func ArchiveDir(fs afero.Fs, dir string, now time.Time) (string, error) {
	// Check if working directory exists
	if _, err := fs.Stat(dir); os.IsNotExist(err) {
		return "", fmt.Errorf("working directory does not exist: %s", dir)
	}

	clean := filepath.Clean(dir)
	archiveDir := filepath.Join(filepath.Dir(clean), "archive")
	if err := fs.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := filepath.Base(clean)
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s", base, now.Format("20060102-150405")))

	// Same second twice: add microseconds
	if exists, _ := afero.Exists(fs, archivePath); exists {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s", base, now.Format("20060102-150405.000000")))
	}

	if err := fs.Rename(clean, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive working directory: %w", err)
	}

	return archivePath, nil
}
