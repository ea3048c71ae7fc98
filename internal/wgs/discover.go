package wgs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Batch discovery requires one more file than single-container
// classification so empty or placeholder containers never reach the
// selection table.
const minDiscoverFiles = 5

// DiscoverAll walks every save folder under root and returns every
// container holding at least minDiscoverFiles files, newest first.
// nameOf may be nil; when set it supplies best-effort display names.
func DiscoverAll(root string, nameOf NameFunc) ([]Container, error) {
	folders, err := listSaveFolders(root)
	if err != nil {
		return nil, err
	}

	var containers []Container
	for _, folder := range folders {
		entries, err := os.ReadDir(folder.Path)
		if err != nil {
			// One unreadable save folder should not hide the rest.
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() || !isContainerName(entry.Name()) {
				continue
			}
			dir := filepath.Join(folder.Path, entry.Name())
			count, err := countFiles(dir)
			if err != nil || count < minDiscoverFiles {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			c := Container{
				Path:       dir,
				ID:         entry.Name(),
				SaveFolder: folder.Name,
				FileCount:  count,
				Created:    info.ModTime(),
			}
			if nameOf != nil {
				c.DisplayName = nameOf(dir)
			}
			containers = append(containers, c)
		}
	}
	if len(containers) == 0 {
		return nil, fmt.Errorf("WGS_NO_CONTAINERS: %w under %s", ErrNoContainers, root)
	}
	sort.SliceStable(containers, func(i, j int) bool {
		return containers[i].Created.After(containers[j].Created)
	})
	return containers, nil
}

func countFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			count++
		}
	}
	return count, nil
}
