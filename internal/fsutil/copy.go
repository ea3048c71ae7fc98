package fsutil

import (
	"fmt"
	"io"
	"os"
)

// CopyFile copies src to dst, overwriting dst if it exists.
// The source's mode and modification time are carried over so the
// destination looks like the original where the platform allows it.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("FS_COPY_STAT: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("FS_COPY_OPEN: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("FS_COPY_CREATE: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("FS_COPY_WRITE: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("FS_COPY_CLOSE: %w", err)
	}
	// Best effort; some filesystems refuse chtimes.
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}
