package main

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"saveporter/internal/app"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	fn()
	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()
	return buf.String()
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, want := range []string{"steam-path", "dryrun", "fix-dlc", "list"} {
		if cmd.Flags().Lookup(want) == nil {
			t.Errorf("missing flag --%s", want)
		}
	}
	for _, want := range []string{"config", "json"} {
		if cmd.PersistentFlags().Lookup(want) == nil {
			t.Errorf("missing persistent flag --%s", want)
		}
	}
}

func TestRootCmdHasVersion(t *testing.T) {
	cmd := newRootCmd()
	for _, c := range cmd.Commands() {
		if c.Name() == "version" {
			return
		}
	}
	t.Fatal("expected version subcommand")
}

func TestVersionCmdOutput(t *testing.T) {
	jsonOutput := false
	cmd := newVersionCmd(&jsonOutput)
	out := captureStdout(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Errorf("version: %v", err)
		}
	})
	if !strings.Contains(out, "saveporter") {
		t.Errorf("version output = %q", out)
	}
}

func TestVersionCmdJSON(t *testing.T) {
	jsonOutput := true
	cmd := newVersionCmd(&jsonOutput)
	out := captureStdout(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Errorf("version: %v", err)
		}
	})
	if !strings.Contains(out, `"version"`) {
		t.Errorf("json output = %q", out)
	}
}

func TestExitError(t *testing.T) {
	err := &exitError{code: 2, msg: "BATCH_FAILED: nothing converted"}
	if err.Error() != "BATCH_FAILED: nothing converted" {
		t.Errorf("msg = %q", err.Error())
	}
	var ec ExitCoder = err
	if ec.ExitCode() != 2 {
		t.Errorf("code = %d", ec.ExitCode())
	}
}

// writeWGSContainer lays out one discoverable container with the size
// ordering the classifier expects.
func writeWGSContainer(t *testing.T, root string) {
	t.Helper()
	dir := filepath.Join(root, "A1B2C3D4E5F6A7B8C9D0_1234567890", "ABCDEF0123456789ABCDEF0123456789")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("player.json")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := w.Write([]byte(`{"Money":1,"Padding":"` + strings.Repeat("p", 2000) + `"}`)); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	write := func(name string, content []byte) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("FEDCBA9876543210FEDCBA9876543210", buf.Bytes())
	write("0123456789ABCDEF0123456789ABCDEF", bytes.Repeat([]byte("H"), 100))
	write("89ABCDEF0123456789ABCDEF01234567", bytes.Repeat([]byte("L"), 50))
	write("11223344556677889900112233445566", []byte(`{"Name":"Voyage"}`))
	write("container.sync", []byte("12345678"))
}

// In JSON mode the table, prompts and summary go to the UI writer so
// that stdout carries nothing but the report payload.
func TestRunInteractiveJSONKeepsStdoutClean(t *testing.T) {
	wgsRoot := t.TempDir()
	writeWGSContainer(t, wgsRoot)
	steamDir := t.TempDir()

	configPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := "[wgs]\nroot = \"" + wgsRoot + "\"\n\n[steam]\nsaved_games = \"" + steamDir + "\"\n\n[scratch]\nkeep_dir = \"" + filepath.Join(t.TempDir(), "dryrun") + "\"\n\n[audit]\nenabled = false\n"
	if err := os.WriteFile(configPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	svc, err := app.New(app.Options{ConfigPath: configPath, Out: io.Discard})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}

	var ui bytes.Buffer
	in := strings.NewReader("1\ny\nn\nn\n")
	var runErr error
	stdout := captureStdout(t, func() {
		runErr = runInteractive(context.Background(), svc, true, in, &ui, app.ConvertOptions{})
	})
	if runErr != nil {
		t.Fatalf("runInteractive: %v", runErr)
	}

	var report app.BatchReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("stdout is not pure JSON: %v\n%s", err, stdout)
	}
	if len(report.Converted) != 1 {
		t.Errorf("converted = %d, want 1", len(report.Converted))
	}
	if !strings.Contains(ui.String(), "Voyage") {
		t.Errorf("table missing from UI writer:\n%s", ui.String())
	}
}

func TestPrintJSON(t *testing.T) {
	out := captureStdout(t, func() {
		if err := print(true, map[string]int{"entries": 4}, "ignored"); err != nil {
			t.Errorf("print: %v", err)
		}
	})
	if !strings.Contains(out, `"entries": 4`) {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "ignored") {
		t.Error("message should be suppressed in JSON mode")
	}
}
