// Package classify assigns roles to the files of a save container.
//
// The only identification signal the container format offers is byte
// size: the save blob dwarfs the screenshots, which dwarf the header.
// The ranking is a known-layout heuristic, not a verified contract, so
// it sits behind the Classifier interface where a content-aware
// implementation could replace it.
package classify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrTooFewFiles is returned when a container cannot hold all four
// roles.
var ErrTooFewFiles = errors.New("container has too few files")

// MinFiles is the number of roles a container must be able to fill.
const MinFiles = 4

// File is one regular file inside a container.
type File struct {
	Path string
	Name string
	Size int64
}

// Set holds the four role assignments for one container.
type Set struct {
	SaveBlob  File // largest: zip archive of the actual game state
	ImageHigh File // second: high-res screenshot
	ImageLow  File // third: low-res screenshot
	Header    File // fourth: JSON save header
}

// Classifier assigns roles to a container's flat file list.
type Classifier interface {
	Classify(files []File) (Set, error)
}

// SizeRank classifies by descending byte size. Ties keep their
// first-seen order (stable sort over the ListFiles order).
type SizeRank struct{}

func (SizeRank) Classify(files []File) (Set, error) {
	if len(files) < MinFiles {
		return Set{}, fmt.Errorf("CLS_FILE_COUNT: %w: expected at least %d files, found %d", ErrTooFewFiles, MinFiles, len(files))
	}
	ranked := make([]File, len(files))
	copy(ranked, files)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Size > ranked[j].Size
	})
	// Files beyond the fourth are ignored.
	return Set{
		SaveBlob:  ranked[0],
		ImageHigh: ranked[1],
		ImageLow:  ranked[2],
		Header:    ranked[3],
	}, nil
}

// ListFiles returns the regular files directly inside dir, in
// directory read order, with their sizes.
func ListFiles(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("CLS_DIR_READ: %w", err)
	}
	var files []File
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Path: filepath.Join(dir, entry.Name()),
			Name: entry.Name(),
			Size: info.Size(),
		})
	}
	return files, nil
}
