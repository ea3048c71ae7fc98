// Package steam places converted archives into the Steam Saved Games
// directory.
package steam

import (
	"fmt"
	"os"
	"path/filepath"

	"saveporter/internal/fsutil"
)

// Place copies archivePath into destDir, creating the directory chain
// as needed and overwriting any existing file of the same name.
// Returns the final path.
func Place(archivePath, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("STM_DEST_CREATE: %w", err)
	}
	dest := filepath.Join(destDir, filepath.Base(archivePath))
	if err := fsutil.CopyFile(archivePath, dest); err != nil {
		return "", fmt.Errorf("STM_PLACE_COPY: %w", err)
	}
	return dest, nil
}
