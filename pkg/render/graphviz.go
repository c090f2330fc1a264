package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// RenderError reports a failed Graphviz invocation, including whatever the
// executable wrote to stderr.
type RenderError struct {
	Path   string // Graphviz executable
	Stderr string // captured stderr (may be empty)
	Err    error  // underlying exec error
}

func (e *RenderError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("graphviz %s failed: %v: %s", e.Path, e.Err, e.Stderr)
	}
	return fmt.Sprintf("graphviz %s failed: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Graphviz renders DOT files by invoking an external layout executable
// (typically dot).
type Graphviz struct {
	path string
}

// NewGraphviz validates that path names an executable regular file and
// returns a Graphviz that invokes it.
func NewGraphviz(path string) (*Graphviz, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("graphviz executable: %w", err)
	}
	if !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
		return nil, fmt.Errorf("graphviz executable %s is not executable", path)
	}
	return &Graphviz{path: path}, nil
}

// Path returns the configured executable path.
func (g *Graphviz) Path() string { return g.path }

// RenderPNG runs the executable as "<path> -Tpng <dotPath> -o <pngPath>".
// A non-zero exit status is returned as a *RenderError; the PNG is only
// expected to exist when RenderPNG returns nil.
func (g *Graphviz) RenderPNG(ctx context.Context, dotPath, pngPath string) error {
	cmd := exec.CommandContext(ctx, g.path, "-Tpng", dotPath, "-o", pngPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &RenderError{
			Path:   g.path,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return nil
}
