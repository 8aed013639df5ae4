// Package deps extracts the external package names a project declares
// in its requirements.txt, the way a dependency inventory step would
// read a manifest alongside the source tree it is scanning.
package deps

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var packageNamePattern = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)`)

// ParseManifest reads requirements.txt from dir, if present, and returns
// the declared package names verbatim, with version specifiers
// stripped. A missing manifest is not an error: it yields an empty,
// non-nil slice.
func ParseManifest(dir string) []string {
	dependencies := make([]string, 0)

	path := filepath.Join(dir, "requirements.txt")
	file, err := os.Open(path)
	if err != nil {
		return dependencies
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "-e ") || strings.HasPrefix(line, "--editable ") {
			continue
		}
		if strings.HasPrefix(line, "git+") || strings.HasPrefix(line, "http") {
			if name, ok := eggName(line); ok {
				dependencies = append(dependencies, name)
			}
			continue
		}

		if match := packageNamePattern.FindStringSubmatch(line); match != nil {
			dependencies = append(dependencies, match[1])
		}
	}

	return dependencies
}

// eggName extracts the package name from a VCS/URL requirement's
// "#egg=name" fragment, the only form of those lines this inventory
// can resolve to a package name.
func eggName(line string) (string, bool) {
	idx := strings.Index(line, "#egg=")
	if idx < 0 {
		return "", false
	}
	rest := line[idx+len("#egg="):]
	rest = strings.SplitN(rest, "&", 2)[0]
	rest = strings.SplitN(rest, "[", 2)[0]
	if rest == "" {
		return "", false
	}
	return rest, true
}
