// Package paths confines logical target paths to the staging root.
//
// Stage targets are written as absolute paths with the stage itself acting
// as the filesystem root ("/bin", "/share/doc"). AbsToRel turns that logical
// form into a relative path that is safe to join onto the output root. The
// normalization is purely lexical: no filesystem lookups, no symlink
// resolution, and the result is stable under repeated application.
package paths

import (
	"strings"

	"github.com/arthur-debert/stagehand/pkg/errors"
)

// AbsToRel normalizes a rendered logical target path into a root-relative
// path. The input must start with '/'; empty and "." components are
// dropped, and each ".." pops the previously retained component. Enough
// ".." segments to climb past the root is a configuration error.
func AbsToRel(abs string) (string, error) {
	if !strings.HasPrefix(abs, "/") {
		return "", errors.Newf(errors.ErrTargetRelative,
			"path is not absolute (within the stage): %s", abs)
	}

	var parts []string
	for _, part := range strings.Split(abs, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(parts) == 0 {
				return "", errors.Newf(errors.ErrTargetEscapes,
					"path is outside of staging root: %q", abs)
			}
			parts = parts[:len(parts)-1]
		default:
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "/"), nil
}

// IsBareName reports whether name is a plain filename: non-empty, no path
// separators, and not a dot component. Renames and symlink aliases must be
// bare names so they cannot redirect output outside their target directory.
func IsBareName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsRune(name, '/')
}
