// Package stacktrace shortens runtime stack traces to the module's own frames.
package stacktrace

import (
	"strings"

	"github.com/samber/lo"
)

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations found
// in a raw debug.Stack output, innermost frame first.
func InternalPaths(stack []byte) []string {
	return lo.FilterMap(strings.Split(string(stack), "\n"), func(line string, _ int) (string, bool) {
		_, rest, ok := strings.Cut(strings.TrimSpace(line), "/internal/")
		if !ok {
			return "", false
		}

		// drop the " +0x1f" program counter offset
		loc, _, _ := strings.Cut(rest, " ")
		if !strings.Contains(loc, ".go:") {
			return "", false
		}
		return "internal/" + loc, true
	})
}
