// Package wgs locates Xbox Game Pass save containers under the WGS
// storage root. Discovery is purely heuristic: folders are matched by
// name shape and ranked by timestamp, never by parsed content.
package wgs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNoSaveFolders is returned when the WGS root exists but holds
	// no directory matching the save-folder naming convention.
	ErrNoSaveFolders = errors.New("no save folders found")
	// ErrNoContainers is returned when a save folder holds no
	// container-shaped subdirectory.
	ErrNoContainers = errors.New("no container folders found")
)

// Save folders look like "<id>_<id>" and are well over 20 chars;
// container folders are exactly 32 chars. Anything else is ignored.
func isSaveFolderName(name string) bool {
	return len(name) > 20 && strings.Contains(name, "_")
}

func isContainerName(name string) bool {
	return len(name) == 32
}

// FindLatestSaveFolder returns the most recently modified save folder
// under root.
func FindLatestSaveFolder(root string) (SaveFolder, error) {
	folders, err := listSaveFolders(root)
	if err != nil {
		return SaveFolder{}, err
	}
	sort.SliceStable(folders, func(i, j int) bool {
		return folders[i].ModTime.After(folders[j].ModTime)
	})
	return folders[0], nil
}

// FindLatestContainerFolder returns the most recently modified
// container inside a save folder.
func FindLatestContainerFolder(folder SaveFolder) (Container, error) {
	entries, err := os.ReadDir(folder.Path)
	if err != nil {
		return Container{}, fmt.Errorf("WGS_SAVE_FOLDER_READ: %w", err)
	}
	var containers []Container
	for _, entry := range entries {
		if !entry.IsDir() || !isContainerName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		containers = append(containers, Container{
			Path:       filepath.Join(folder.Path, entry.Name()),
			ID:         entry.Name(),
			SaveFolder: folder.Name,
			Created:    info.ModTime(),
		})
	}
	if len(containers) == 0 {
		return Container{}, fmt.Errorf("WGS_NO_CONTAINERS: %w in %s", ErrNoContainers, folder.Name)
	}
	sort.SliceStable(containers, func(i, j int) bool {
		return containers[i].Created.After(containers[j].Created)
	})
	return containers[0], nil
}

func listSaveFolders(root string) ([]SaveFolder, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("WGS_ROOT_MISSING: WGS directory not found at %s: %w", root, err)
		}
		return nil, fmt.Errorf("WGS_ROOT_READ: %w", err)
	}
	var folders []SaveFolder
	for _, entry := range entries {
		if !entry.IsDir() || !isSaveFolderName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		folders = append(folders, SaveFolder{
			Path:    filepath.Join(root, entry.Name()),
			Name:    entry.Name(),
			ModTime: info.ModTime(),
		})
	}
	if len(folders) == 0 {
		return nil, fmt.Errorf("WGS_NO_SAVE_FOLDERS: %w under %s", ErrNoSaveFolders, root)
	}
	return folders, nil
}
