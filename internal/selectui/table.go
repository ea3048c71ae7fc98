package selectui

import (
	"fmt"
	"io"

	"saveporter/internal/wgs"
)

// Names longer than this are truncated in the table.
const nameWidth = 34

// RenderTable writes the discovered containers as a 1-indexed table of
// index, best-effort name, and creation date.
func RenderTable(w io.Writer, containers []wgs.Container) {
	fmt.Fprintf(w, "%4s  %-*s  %s\n", "#", nameWidth, "Name", "Created")
	for i, c := range containers {
		name := c.DisplayName
		if name == "" {
			name = "(unnamed) " + shortID(c.ID)
		}
		if len(name) > nameWidth {
			name = name[:nameWidth-3] + "..."
		}
		fmt.Fprintf(w, "%4d  %-*s  %s\n", i+1, nameWidth, name, c.Created.Format("2006-01-02 15:04"))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
