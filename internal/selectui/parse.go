// Package selectui renders discovered containers as a table and parses
// interactive selection expressions.
package selectui

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrBadSelection wraps every malformed or out-of-range selection
// expression.
var ErrBadSelection = errors.New("invalid selection")

// Selection is the outcome of parsing one expression.
type Selection struct {
	Indices   []int // 1-based, deduplicated, ascending
	Cancelled bool  // user asked to quit; Indices is empty
}

// ParseSelection parses expr over a list of n containers. Supported
// forms: "all", comma-separated 1-based indices, inclusive "a-b"
// ranges, and "q"/"quit" which cancels the selection.
func ParseSelection(expr string, n int) (Selection, error) {
	trimmed := strings.TrimSpace(strings.ToLower(expr))
	switch trimmed {
	case "q", "quit":
		return Selection{Cancelled: true}, nil
	case "all":
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i + 1
		}
		return Selection{Indices: indices}, nil
	case "":
		return Selection{}, fmt.Errorf("SEL_EMPTY: %w: empty selection", ErrBadSelection)
	}

	seen := map[int]struct{}{}
	for _, token := range strings.Split(trimmed, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return Selection{}, fmt.Errorf("SEL_TOKEN: %w: empty token", ErrBadSelection)
		}
		start, end, err := parseToken(token)
		if err != nil {
			return Selection{}, err
		}
		for i := start; i <= end; i++ {
			if i < 1 || i > n {
				return Selection{}, fmt.Errorf("SEL_RANGE: %w: index %d out of range 1-%d", ErrBadSelection, i, n)
			}
			seen[i] = struct{}{}
		}
	}

	indices := make([]int, 0, len(seen))
	for i := range seen {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return Selection{Indices: indices}, nil
}

func parseToken(token string) (start, end int, err error) {
	if lo, hi, ok := strings.Cut(token, "-"); ok {
		start, err = strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return 0, 0, fmt.Errorf("SEL_TOKEN: %w: bad range start %q", ErrBadSelection, lo)
		}
		end, err = strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return 0, 0, fmt.Errorf("SEL_TOKEN: %w: bad range end %q", ErrBadSelection, hi)
		}
		if start > end {
			return 0, 0, fmt.Errorf("SEL_TOKEN: %w: range %s runs backwards", ErrBadSelection, token)
		}
		return start, end, nil
	}
	idx, err := strconv.Atoi(token)
	if err != nil {
		return 0, 0, fmt.Errorf("SEL_TOKEN: %w: %q is not an index", ErrBadSelection, token)
	}
	return idx, idx, nil
}
