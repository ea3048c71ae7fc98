package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger appends conversion events to a JSONL file. A nil Logger or an
// empty path is a no-op, so callers never have to guard logging.
type Logger struct {
	path string
	mu   sync.Mutex
}

// Event is one line in the conversion log.
type Event struct {
	Timestamp string `json:"timestamp"`
	Operation string `json:"operation"` // discover|convert|place
	Phase     string `json:"phase"`     // start|done|skip
	Status    string `json:"status"`    // ok|error|warn
	Container string `json:"container,omitempty"`
	Checksum  string `json:"checksum,omitempty"`
	Message   string `json:"message,omitempty"`
}

func New(path string) *Logger {
	return &Logger{path: path}
}

func (l *Logger) Log(ev Event) error {
	if l == nil || l.path == "" {
		return nil
	}
	ev.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	blob, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(blob, '\n'))
	return err
}
