// Package builder translates rendered staging requirements into concrete
// actions. Every builder consumes the absolute target directory it
// populates and emits zero or more actions in a deterministic order.
package builder

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/stagehand/pkg/actions"
	"github.com/arthur-debert/stagehand/pkg/errors"
	"github.com/arthur-debert/stagehand/pkg/logging"
	"github.com/arthur-debert/stagehand/pkg/paths"
)

// ActionBuilder produces the actions that populate one target directory.
type ActionBuilder interface {
	Build(targetDir string) ([]actions.Action, error)
}

// Directory asserts the target directory itself, overriding its default
// settings; it carries only permission-style metadata.
type Directory struct {
	Access []string
}

func (d *Directory) Build(targetDir string) ([]actions.Action, error) {
	built := []actions.Action{&actions.CreateDirectory{Path: targetDir}}
	for _, op := range d.Access {
		built = append(built, &actions.Access{Path: targetDir, Op: op})
	}
	return built, nil
}

// SourceFile stages a single file into the target directory.
type SourceFile struct {
	// Path is the full path of the file to be copied into the target
	// directory. It must be absolute.
	Path string
	// Rename is the name the staged file is given. Nil means the filename
	// of Path; a present but empty rename is invalid.
	Rename *string
	// Symlinks are additional link names, in the same target directory,
	// pointing at the staged copy.
	Symlinks []string
	Access   []string
}

func (s *SourceFile) Build(targetDir string) ([]actions.Action, error) {
	if !filepath.IsAbs(s.Path) {
		return nil, errors.Newf(errors.ErrSourceRelative,
			"source file path must be absolute: %q", s.Path)
	}

	filename := filepath.Base(s.Path)
	if s.Rename != nil {
		filename = *s.Rename
	}
	if !paths.IsBareName(filename) {
		return nil, errors.Newf(errors.ErrRenameInvalid,
			"rename must not change directories: %q", filename)
	}

	staged := filepath.Join(targetDir, filename)
	built := []actions.Action{&actions.CopyFile{Staged: staged, Source: s.Path}}
	for _, op := range s.Access {
		built = append(built, &actions.Access{Path: staged, Op: op})
	}
	for _, alias := range s.Symlinks {
		if !paths.IsBareName(alias) {
			return nil, errors.Newf(errors.ErrRenameInvalid,
				"symlink alias must not change directories: %q", alias)
		}
		// Aliases point at the staged copy, not the original source.
		built = append(built, &actions.Symlink{
			Staged: filepath.Join(targetDir, alias),
			Target: staged,
		})
	}
	return built, nil
}

// SourceFiles stages a glob-selected set of files into the target
// directory, preserving their paths relative to the source root.
type SourceFiles struct {
	// Path is the root the patterns are resolved against. It must be
	// absolute.
	Path string
	// Patterns select files beneath Path using doublestar glob syntax.
	Patterns []string
	// FollowLinks walks through directory symlinks as if they were
	// normal directories.
	FollowLinks bool
	// AllowEmpty turns the zero-matches error into an informational
	// no-op. The default of false makes mistakes more obvious.
	AllowEmpty bool
	Access     []string
}

func (s *SourceFiles) Build(targetDir string) ([]actions.Action, error) {
	if !filepath.IsAbs(s.Path) {
		return nil, errors.Newf(errors.ErrSourceRelative,
			"source files path must be absolute: %q", s.Path)
	}

	matches, err := s.harvest()
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		if s.AllowEmpty {
			logger := logging.GetLogger("builder.files")
			logger.Info().
				Str("path", s.Path).
				Strs("patterns", s.Patterns).
				Msg("No files found, continuing because allow_empty is set")
			return nil, nil
		}
		return nil, errors.Newf(errors.ErrPatternEmpty,
			"no files found under %q with patterns %v", s.Path, s.Patterns)
	}

	var built []actions.Action
	for _, rel := range matches {
		staged := filepath.Join(targetDir, filepath.FromSlash(rel))
		source := filepath.Join(s.Path, filepath.FromSlash(rel))
		built = append(built, &actions.CopyFile{Staged: staged, Source: source})
		for _, op := range s.Access {
			built = append(built, &actions.Access{Path: staged, Op: op})
		}
	}
	return built, nil
}

// harvest resolves the patterns against the source root and returns the
// matched regular files as sorted, deduplicated slash-relative paths.
// Directories matched by a pattern are skipped.
func (s *SourceFiles) harvest() ([]string, error) {
	fsys := os.DirFS(s.Path)
	opts := []doublestar.GlobOption{
		doublestar.WithFilesOnly(),
		doublestar.WithFailOnIOErrors(),
	}
	if !s.FollowLinks {
		opts = append(opts, doublestar.WithNoFollow())
	}

	seen := make(map[string]bool)
	var matches []string
	for _, pattern := range s.Patterns {
		err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
			if !seen[path] {
				seen[path] = true
				matches = append(matches, path)
			}
			return nil
		}, opts...)
		if err != nil {
			if errors.Is(err, doublestar.ErrBadPattern) {
				return nil, errors.Wrapf(err, errors.ErrPatternInvalid,
					"invalid pattern %q", pattern)
			}
			return nil, errors.Wrapf(err, errors.ErrWalkFailed,
				"failed walking %q with pattern %q", s.Path, pattern)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// Symlink stages a single symbolic link pointing at a literal target path.
type Symlink struct {
	// Target is the literal path the link points to.
	Target string
	// Rename is the name the link is given. Nil means the filename of
	// Target; a present but empty rename is invalid.
	Rename *string
	Access []string
}

func (s *Symlink) Build(targetDir string) ([]actions.Action, error) {
	filename := filepath.Base(s.Target)
	if s.Rename != nil {
		filename = *s.Rename
	}
	if !paths.IsBareName(filename) {
		return nil, errors.Newf(errors.ErrRenameInvalid,
			"symlink rename must not change directories: %q", filename)
	}

	staged := filepath.Join(targetDir, filename)
	built := []actions.Action{&actions.Symlink{Staged: staged, Target: s.Target}}
	for _, op := range s.Access {
		built = append(built, &actions.Access{Path: staged, Op: op})
	}
	return built, nil
}
