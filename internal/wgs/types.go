package wgs

import "time"

// SaveFolder is a per-user save directory under the WGS root. Identity
// is by naming convention only; no manifest is ever parsed.
type SaveFolder struct {
	Path    string
	Name    string
	ModTime time.Time
}

// Container is one save snapshot's directory of raw blobs.
type Container struct {
	Path       string
	ID         string // 32-char directory name
	SaveFolder string
	FileCount  int
	Created    time.Time
	// DisplayName is a best-effort label read from the header blob.
	// Empty when the header could not be parsed.
	DisplayName string
}

// NameFunc resolves a best-effort display name for a container
// directory. Implementations must never fail; unknown is "".
type NameFunc func(containerDir string) string
