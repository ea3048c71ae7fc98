package transcode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"saveporter/internal/fsutil"
)

// DLC entitlement keys the target title records in its save JSON.
var (
	headerDLCKeys = []string{"m_DlcRewards"}
	playerDLCKeys = []string{
		"m_StartNewGameAdditionalContentDlcStatus",
		"UsedDlcRewards",
		"ClaimedDlcRewards",
	}
)

// FixDLC clears DLC entitlement records in header.json and player.json
// inside the extracted tree so the save loads without the DLC
// installed. Best-effort: missing files and keys are no-ops, parse and
// write failures come back as warnings and never abort the conversion.
func FixDLC(extractDir string) []string {
	var warnings []string
	for _, target := range []struct {
		file string
		keys []string
	}{
		{headerName, headerDLCKeys},
		{"player.json", playerDLCKeys},
	} {
		path := filepath.Join(extractDir, target.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if _, err := clearListKeys(path, target.keys); err != nil {
			warnings = append(warnings, fmt.Sprintf("could not fix %s: %v", target.file, err))
		}
	}
	return warnings
}

// clearListKeys resets each present key to an empty list and rewrites
// the document with stable 2-space indentation, leaving every other
// field intact. Returns the keys actually cleared.
func clearListKeys(path string, keys []string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// UseNumber keeps integers beyond float64 precision intact on rewrite.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	var cleared []string
	for _, key := range keys {
		if _, ok := doc[key]; ok {
			doc[key] = []any{}
			cleared = append(cleared, key)
		}
	}
	blob, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := fsutil.AtomicWrite(path, blob, 0o644); err != nil {
		return nil, err
	}
	return cleared, nil
}
