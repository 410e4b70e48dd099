package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cerrors "github.com/matzehuels/cutrewrite/pkg/errors"
	"github.com/matzehuels/cutrewrite/pkg/io/bench"
	"github.com/matzehuels/cutrewrite/pkg/io/dot"
)

// Load reads a design, choosing the format from the extension of path.
func Load(path string) (*bench.Design, error) {
	switch ext(path) {
	case ".bench":
		return bench.ReadFile(path)
	case ".json":
		return ImportJSON(path)
	}
	return nil, cerrors.New(cerrors.ErrCodeUnsupported, "cannot read %q files", ext(path))
}

// Save writes a design, choosing the format from the extension of path.
func Save(path string, d *bench.Design) error {
	switch ext(path) {
	case ".bench":
		return bench.WriteFile(path, d)
	case ".json":
		return ExportJSON(d, path)
	case ".dot", ".gv":
		return os.WriteFile(path, []byte(DOT(d)), 0o644)
	case ".svg":
		svg, err := dot.RenderSVG(DOT(d))
		if err != nil {
			return fmt.Errorf("render %s: %w", path, err)
		}
		return os.WriteFile(path, svg, 0o644)
	}
	return cerrors.New(cerrors.ErrCodeUnsupported, "cannot write %q files", ext(path))
}

// DOT returns the Graphviz source for d with its port names.
func DOT(d *bench.Design) string {
	return dot.ToDOT(d.Network, dot.Options{Inputs: d.Inputs, Outputs: d.Outputs})
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
