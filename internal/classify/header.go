package classify

import (
	"encoding/json"
	"os"
	"sort"
)

// ExtractSaveName reads the human-readable save name from a container's
// header blob, identified as the second-smallest file. Purely cosmetic:
// any I/O or parse failure yields an empty name, never an error.
func ExtractSaveName(dir string) string {
	files, err := ListFiles(dir)
	if err != nil || len(files) < 2 {
		return ""
	}
	ascending := make([]File, len(files))
	copy(ascending, files)
	sort.SliceStable(ascending, func(i, j int) bool {
		return ascending[i].Size < ascending[j].Size
	})

	data, err := os.ReadFile(ascending[1].Path)
	if err != nil {
		return ""
	}
	var header struct {
		Name string `json:"Name"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return ""
	}
	return header.Name
}
