package fsutil

import (
	"fmt"
	"os"
)

// AtomicWrite writes data to path via a tmp file in the same directory
// followed by a rename, so readers never observe a partial file.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("FS_WRITE_TMP: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("FS_RENAME: %w", err)
	}
	return nil
}
