// Package actions defines the concrete filesystem operations a stage
// build produces. Each action carries a stable one-line preview used for
// dry-run output and execution error context.
package actions

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/stagehand/pkg/errors"
	"github.com/arthur-debert/stagehand/pkg/types"
)

// Action is a single operation for setting up the staged directory tree.
type Action interface {
	// String returns the stable, human-readable preview of the action.
	fmt.Stringer
	// Perform executes the action, writing to the stage.
	Perform(fsys types.FS) error
}

// CreateDirectory creates a staged directory and any missing ancestors.
// It succeeds if the directory already exists.
type CreateDirectory struct {
	Path string
}

func (a *CreateDirectory) String() string {
	return fmt.Sprintf("mkdir %s", a.Path)
}

func (a *CreateDirectory) Perform(fsys types.FS) error {
	if err := fsys.MkdirAll(a.Path, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create directory %s", a.Path)
	}
	return nil
}

// CopyFile copies the source file's content to the staged path, creating
// missing parent directories and overwriting any existing destination.
type CopyFile struct {
	Staged string
	Source string
}

func (a *CopyFile) String() string {
	return fmt.Sprintf("cp %s %s", a.Source, a.Staged)
}

func (a *CopyFile) Perform(fsys types.FS) error {
	if parent := filepath.Dir(a.Staged); parent != "." {
		if err := fsys.MkdirAll(parent, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate,
				"failed to create parent directory for %s", a.Staged)
		}
	}

	data, err := fsys.ReadFile(a.Source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy,
			"failed to read source file %s", a.Source)
	}

	// Carry the source's permission bits onto the staged copy.
	perm := fs.FileMode(0644)
	if info, statErr := fsys.Stat(a.Source); statErr == nil {
		perm = info.Mode().Perm()
	}

	if err := fsys.WriteFile(a.Staged, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy,
			"failed to write staged file %s", a.Staged)
	}
	return nil
}

// Symlink creates a symbolic link at the staged path pointing at Target,
// creating missing parent directories. It fails if a filesystem entry
// already occupies the link path.
type Symlink struct {
	Staged string
	Target string
}

func (a *Symlink) String() string {
	return fmt.Sprintf("ln -s %s %s", a.Target, a.Staged)
}

func (a *Symlink) Perform(fsys types.FS) error {
	if parent := filepath.Dir(a.Staged); parent != "." {
		if err := fsys.MkdirAll(parent, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate,
				"failed to create parent directory for %s", a.Staged)
		}
	}
	if err := fsys.Symlink(a.Target, a.Staged); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate,
			"failed to create symlink %s", a.Staged)
	}
	return nil
}

// Access applies a permission operation to a staged path. The permission
// model is not specified yet, so performing the action is an explicit
// failure rather than a silent no-op.
type Access struct {
	Path string
	Op   string
}

func (a *Access) String() string {
	return fmt.Sprintf("chmod %s %s", a.Op, a.Path)
}

func (a *Access) Perform(fsys types.FS) error {
	return errors.Newf(errors.ErrNotImplemented,
		"access operations are not supported yet: chmod %s %s", a.Op, a.Path)
}
