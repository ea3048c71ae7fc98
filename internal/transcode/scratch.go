package transcode

import (
	"fmt"
	"os"
)

// Scratch is the working directory for one conversion. It is created
// immediately before use and removed on Close unless Keep is set, in
// which case the output is deliberately left on disk for inspection
// (dry-run mode).
type Scratch struct {
	Root string
	Keep bool
}

// NewScratch creates a throwaway scratch directory under the system
// temp dir.
func NewScratch() (*Scratch, error) {
	root, err := os.MkdirTemp("", "saveporter-*")
	if err != nil {
		return nil, fmt.Errorf("TRC_SCRATCH_CREATE: %w", err)
	}
	return &Scratch{Root: root}, nil
}

// NewScratchAt creates a scratch directory at a fixed path and marks
// it kept, so Close leaves it in place.
func NewScratchAt(dir string) (*Scratch, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("TRC_SCRATCH_CREATE: %w", err)
	}
	return &Scratch{Root: dir, Keep: true}, nil
}

// Close removes the scratch directory unless it is kept. Safe to call
// on every exit path.
func (s *Scratch) Close() error {
	if s == nil || s.Keep {
		return nil
	}
	return os.RemoveAll(s.Root)
}
