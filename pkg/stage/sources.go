package stage

import (
	"github.com/arthur-debert/stagehand/pkg/builder"
	"github.com/arthur-debert/stagehand/pkg/templates"
)

// Directory overrides the default settings for the target directory
// itself; it stages no content of its own.
type Directory struct {
	Access templates.OneOrMany `mapstructure:"access"`
}

func (d *Directory) Render(engine *templates.Engine) (builder.ActionBuilder, error) {
	access, err := d.Access.Render(engine)
	if err != nil {
		return nil, err
	}
	return &builder.Directory{Access: access}, nil
}

// SourceFile stages a single file into the target directory.
type SourceFile struct {
	// Path is the full path of the file to be copied into the target
	// directory.
	Path templates.Template `mapstructure:"path"`
	// Rename is the name the staged file should be given. Default is the
	// filename of the source file.
	Rename *templates.Template `mapstructure:"rename"`
	// Symlink lists additional link names for the staged file in the same
	// target directory.
	Symlink templates.OneOrMany `mapstructure:"symlink"`
	Access  templates.OneOrMany `mapstructure:"access"`
}

func (s *SourceFile) Render(engine *templates.Engine) (builder.ActionBuilder, error) {
	path, err := s.Path.Render(engine)
	if err != nil {
		return nil, err
	}
	rename, err := renderRename(s.Rename, engine)
	if err != nil {
		return nil, err
	}
	symlinks, err := s.Symlink.Render(engine)
	if err != nil {
		return nil, err
	}
	access, err := s.Access.Render(engine)
	if err != nil {
		return nil, err
	}
	return &builder.SourceFile{
		Path:     path,
		Rename:   rename,
		Symlinks: symlinks,
		Access:   access,
	}, nil
}

// SourceFiles stages a glob-selected collection of files into the target
// directory.
type SourceFiles struct {
	// Path is the root path the patterns are run on to identify files to
	// be copied into the target directory.
	Path templates.Template `mapstructure:"path"`
	// Pattern selects files beneath Path; accepts one pattern or a list.
	Pattern templates.OneOrMany `mapstructure:"pattern"`
	// FollowLinks walks symbolic links as if they were normal directories
	// and files. A broken or looping symlink yields an error.
	FollowLinks bool `mapstructure:"follow_links"`
	// AllowEmpty toggles whether no results for the pattern constitutes
	// an error.
	AllowEmpty bool                `mapstructure:"allow_empty"`
	Access     templates.OneOrMany `mapstructure:"access"`
}

func (s *SourceFiles) Render(engine *templates.Engine) (builder.ActionBuilder, error) {
	path, err := s.Path.Render(engine)
	if err != nil {
		return nil, err
	}
	patterns, err := s.Pattern.Render(engine)
	if err != nil {
		return nil, err
	}
	access, err := s.Access.Render(engine)
	if err != nil {
		return nil, err
	}
	return &builder.SourceFiles{
		Path:        path,
		Patterns:    patterns,
		FollowLinks: s.FollowLinks,
		AllowEmpty:  s.AllowEmpty,
		Access:      access,
	}, nil
}

// renderRename keeps absence distinct from an empty rendering: a rename
// that renders to "" stays present so the builder rejects it instead of
// falling back to the source's basename.
func renderRename(t *templates.Template, engine *templates.Engine) (*string, error) {
	rendered, ok, err := templates.RenderOptional(t, engine)
	if err != nil || !ok {
		return nil, err
	}
	return &rendered, nil
}

// Symlink stages a symbolic link pointing at a literal path.
type Symlink struct {
	// Target is the literal path for the link to point to.
	Target templates.Template `mapstructure:"target"`
	// Rename is the name the symlink should be given. Default is the
	// filename of the target.
	Rename *templates.Template `mapstructure:"rename"`
	Access templates.OneOrMany `mapstructure:"access"`
}

func (s *Symlink) Render(engine *templates.Engine) (builder.ActionBuilder, error) {
	target, err := s.Target.Render(engine)
	if err != nil {
		return nil, err
	}
	rename, err := renderRename(s.Rename, engine)
	if err != nil {
		return nil, err
	}
	access, err := s.Access.Render(engine)
	if err != nil {
		return nil, err
	}
	return &builder.Symlink{
		Target: target,
		Rename: rename,
		Access: access,
	}, nil
}
