package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func fakeGraphviz(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture, skipping on windows")
	}
	path := filepath.Join(t.TempDir(), "dot")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewGraphviz_Missing(t *testing.T) {
	_, err := NewGraphviz(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing executable")
	}
}

func TestNewGraphviz_NotExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits, skipping on windows")
	}
	path := filepath.Join(t.TempDir(), "dot")
	if err := os.WriteFile(path, []byte("not a program"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewGraphviz(path); err == nil {
		t.Fatal("expected error for non-executable file")
	}
}

func TestNewGraphviz_Directory(t *testing.T) {
	if _, err := NewGraphviz(t.TempDir()); err == nil {
		t.Fatal("expected error for directory")
	}
}

func TestRenderPNG(t *testing.T) {
	// The fake copies its input so we can verify the arguments it received.
	path := fakeGraphviz(t, `cp "$2" "$4"`)
	gv, err := NewGraphviz(path)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	dotPath := filepath.Join(dir, "g.dot")
	pngPath := filepath.Join(dir, "g.png")
	if err := os.WriteFile(dotPath, []byte("digraph G {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := gv.RenderPNG(context.Background(), dotPath, pngPath); err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	out, err := os.ReadFile(pngPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(out) != "digraph G {}\n" {
		t.Errorf("unexpected output file contents: %q", out)
	}
}

func TestRenderPNG_Failure(t *testing.T) {
	path := fakeGraphviz(t, `echo "syntax error near line 3" >&2; exit 1`)
	gv, err := NewGraphviz(path)
	if err != nil {
		t.Fatal(err)
	}

	err = gv.RenderPNG(context.Background(), "in.dot", "out.png")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RenderError, got %T", err)
	}
	if re.Path != path {
		t.Errorf("RenderError.Path = %q, want %q", re.Path, path)
	}
	if !strings.Contains(re.Stderr, "syntax error") {
		t.Errorf("RenderError.Stderr = %q, want captured stderr", re.Stderr)
	}
}
