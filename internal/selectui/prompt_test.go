package selectui

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"saveporter/internal/wgs"
)

func TestSelectIndicesRetriesUntilValid(t *testing.T) {
	in := strings.NewReader("bogus\n9\n1,3\n")
	var out bytes.Buffer
	p := NewPrompter(in, &out)

	got, err := p.SelectIndices(context.Background(), 4)
	if err != nil {
		t.Fatalf("SelectIndices: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("indices = %v, want [1 3]", got)
	}
	if !strings.Contains(out.String(), "out of range") {
		t.Errorf("expected re-prompt message, got:\n%s", out.String())
	}
}

func TestSelectIndicesQuit(t *testing.T) {
	p := NewPrompter(strings.NewReader("q\n"), &bytes.Buffer{})
	_, err := p.SelectIndices(context.Background(), 4)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestSelectIndicesEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.SelectIndices(context.Background(), 4)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestSelectIndicesContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPrompter(strings.NewReader("1\n"), &bytes.Buffer{})
	_, err := p.SelectIndices(ctx, 4)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"no\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\nyes\n", false, true},
	}
	for _, tt := range tests {
		p := NewPrompter(strings.NewReader(tt.input), &bytes.Buffer{})
		got, err := p.Confirm(context.Background(), "Proceed?", tt.def)
		if err != nil {
			t.Fatalf("Confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q, def=%t) = %t, want %t", tt.input, tt.def, got, tt.want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	containers := []wgs.Container{
		{ID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", DisplayName: "Dargonus Orbit", Created: created},
		{ID: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Created: created.Add(-time.Hour)},
		{ID: "cccccccccccccccccccccccccccccccc", DisplayName: strings.Repeat("Long Save Name ", 5), Created: created},
	}
	var out bytes.Buffer
	RenderTable(&out, containers)
	text := out.String()

	if !strings.Contains(text, "   1  Dargonus Orbit") {
		t.Errorf("missing first row:\n%s", text)
	}
	if !strings.Contains(text, "(unnamed) bbbbbbbb") {
		t.Errorf("missing unnamed fallback:\n%s", text)
	}
	if !strings.Contains(text, "...") {
		t.Errorf("long name not truncated:\n%s", text)
	}
	if !strings.Contains(text, "2026-03-14 09:30") {
		t.Errorf("missing creation date:\n%s", text)
	}
}
