// Package stacktrace trims runtime stack dumps down to this module's frames.
package stacktrace

import (
	"bufio"
	"bytes"
	"strings"
)

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations of
// the frames in a debug.Stack dump that belong to internal packages,
// innermost first.
func InternalPaths(stack []byte) []string {
	var paths []string

	sc := bufio.NewScanner(bytes.NewReader(stack))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		// file lines look like "/src/internal/app/x.go:42 +0x1d"
		loc, _, _ := strings.Cut(line, " ")
		if !strings.Contains(loc, ".go:") {
			continue
		}
		if _, rel, ok := strings.Cut(loc, "/internal/"); ok {
			paths = append(paths, "internal/"+rel)
		}
	}

	return paths
}
