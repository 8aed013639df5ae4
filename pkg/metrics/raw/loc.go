// Package raw computes logical line-of-code counts directly from source
// text, independent of the parsed AST.
package raw

import "strings"

// CountLOC counts logical lines: lines that are non-blank after
// stripping whitespace and do not begin with "#". Triple-quoted
// docstrings are counted like ordinary source lines, matching the
// reference tool's behaviour of never special-casing them here (comment
// stripping applies only to "#"-introduced line comments).
func CountLOC(source string) int {
	count := 0
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		count++
	}
	return count
}

// CountLOCFallback is a degraded count for when the primary computation
// cannot run: a plain non-blank, non-"#"-prefixed line count. The engine
// calls only CountLOC. In this implementation the two computations
// coincide, but the fallback is kept
// as a distinct, simpler entry point so a future primary implementation
// (e.g. one that special-cases docstrings) has somewhere to fall back to.
func CountLOCFallback(source string) int {
	count := 0
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		count++
	}
	return count
}
