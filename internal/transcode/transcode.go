// Package transcode turns one classified container into a Steam-format
// save archive: unpack the save blob, graft in the renamed support
// files, optionally strip DLC entitlements, repack.
package transcode

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/sumdb/dirhash"

	"saveporter/internal/classify"
	"saveporter/internal/fsutil"
)

// ErrNotZip is returned when the save blob is not a readable zip
// archive.
var ErrNotZip = errors.New("save blob is not a valid zip archive")

// DefaultArchiveName is the output name for single-container
// conversions.
const DefaultArchiveName = "gamepass_save.zks"

// Fixed names the Steam format expects at the archive root.
const (
	highResName = "highres.png"
	lowResName  = "header.png"
	headerName  = "header.json"
)

const extractSubdir = "extracted_save"

// Options controls one conversion.
type Options struct {
	// ArchiveName names the produced archive inside the scratch root.
	// Empty means DefaultArchiveName.
	ArchiveName string
	// FixDLC clears DLC entitlement records so the save loads without
	// the DLC installed.
	FixDLC bool
}

// Result describes a produced archive.
type Result struct {
	ArchivePath string
	Size        int64
	Unpacked    int // entries extracted from the save blob
	Entries     int // files written into the output archive
	Checksum    string
	Warnings    []string // best-effort steps that were skipped
}

// BatchArchiveName derives the output name for one container in a
// batch run from the container's identifier.
func BatchArchiveName(containerID string) string {
	id := containerID
	if len(id) > 8 {
		id = id[:8]
	}
	return "gamepass_" + id + ".zks"
}

// Convert produces one archive inside scratch from a classified file
// set.
func Convert(set classify.Set, scratch *Scratch, opts Options) (Result, error) {
	extractDir := filepath.Join(scratch.Root, extractSubdir)

	unpacked, err := Unpack(set.SaveBlob.Path, extractDir)
	if err != nil {
		return Result{}, err
	}

	if err := copySupportFiles(set, extractDir); err != nil {
		return Result{}, err
	}

	var warnings []string
	if opts.FixDLC {
		warnings = FixDLC(extractDir)
	}

	checksum, err := dirhash.HashDir(extractDir, "", dirhash.DefaultHash)
	if err != nil {
		// The hash is informational; a failure must not sink the save.
		warnings = append(warnings, fmt.Sprintf("checksum unavailable: %v", err))
	}

	name := opts.ArchiveName
	if name == "" {
		name = DefaultArchiveName
	}
	archivePath := filepath.Join(scratch.Root, name)
	entries, err := Pack(extractDir, archivePath)
	if err != nil {
		return Result{}, err
	}
	info, err := os.Stat(archivePath)
	if err != nil {
		return Result{}, fmt.Errorf("TRC_ARCHIVE_STAT: %w", err)
	}

	return Result{
		ArchivePath: archivePath,
		Size:        info.Size(),
		Unpacked:    unpacked,
		Entries:     entries,
		Checksum:    checksum,
		Warnings:    warnings,
	}, nil
}

// Unpack extracts the save blob (a zip archive) into a fresh dir,
// returning the number of entries extracted.
func Unpack(blobPath, extractDir string) (int, error) {
	r, err := zip.OpenReader(blobPath)
	if err != nil {
		return 0, fmt.Errorf("TRC_BAD_ARCHIVE: %w: %s: %v", ErrNotZip, filepath.Base(blobPath), err)
	}
	defer r.Close()

	// Fresh extraction dir; a retained scratch from a previous dry-run
	// must not leak stale entries into the new archive.
	if err := os.RemoveAll(extractDir); err != nil {
		return 0, fmt.Errorf("TRC_EXTRACT_RESET: %w", err)
	}
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return 0, fmt.Errorf("TRC_EXTRACT_CREATE: %w", err)
	}

	count := 0
	for _, entry := range r.File {
		if err := extractEntry(entry, extractDir); err != nil {
			return count, err
		}
		if !entry.FileInfo().IsDir() {
			count++
		}
	}
	return count, nil
}

func extractEntry(entry *zip.File, extractDir string) error {
	name := filepath.FromSlash(entry.Name)
	dest := filepath.Join(extractDir, name)
	if !strings.HasPrefix(dest, extractDir+string(os.PathSeparator)) {
		return fmt.Errorf("TRC_ENTRY_PATH: entry %q escapes extraction dir", entry.Name)
	}
	if entry.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("TRC_ENTRY_DIR: %w", err)
	}
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("TRC_ENTRY_OPEN: %w", err)
	}
	defer rc.Close()
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("TRC_ENTRY_CREATE: %w", err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("TRC_ENTRY_WRITE: %w", err)
	}
	return out.Close()
}

// copySupportFiles grafts the renamed screenshots and header into the
// extracted tree, overwriting same-named entries the blob may have
// carried.
func copySupportFiles(set classify.Set, extractDir string) error {
	renames := []struct {
		src classify.File
		dst string
	}{
		{set.ImageHigh, highResName},
		{set.ImageLow, lowResName},
		{set.Header, headerName},
	}
	for _, r := range renames {
		if err := fsutil.CopyFile(r.src.Path, filepath.Join(extractDir, r.dst)); err != nil {
			return fmt.Errorf("TRC_SUPPORT_COPY: %s: %w", r.dst, err)
		}
	}
	return nil
}

// Pack zip-compresses every file under srcDir (any depth, paths
// relative to srcDir, deflate) into archivePath. Only files are added;
// empty directories are not represented.
func Pack(srcDir, archivePath string) (int, error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return 0, fmt.Errorf("TRC_ARCHIVE_CREATE: %w", err)
	}
	zw := zip.NewWriter(out)

	count := 0
	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   filepath.ToSlash(rel),
			Method: zip.Deflate,
		})
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := io.Copy(w, f); err != nil {
			return err
		}
		count++
		return nil
	})
	if walkErr != nil {
		zw.Close()
		out.Close()
		_ = os.Remove(archivePath)
		return 0, fmt.Errorf("TRC_ARCHIVE_WRITE: %w", walkErr)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return 0, fmt.Errorf("TRC_ARCHIVE_CLOSE: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("TRC_ARCHIVE_CLOSE: %w", err)
	}
	return count, nil
}
