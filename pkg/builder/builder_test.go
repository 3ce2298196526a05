// pkg/builder/builder_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Temp directories for glob harvesting
// PURPOSE: Test translation of staging requirements into actions

package builder_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stagehand/pkg/actions"
	"github.com/arthur-debert/stagehand/pkg/builder"
	"github.com/arthur-debert/stagehand/pkg/errors"
	"github.com/arthur-debert/stagehand/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previews(acts []actions.Action) []string {
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = a.String()
	}
	return out
}

func rename(s string) *string {
	return &s
}

func TestDirectoryBuild(t *testing.T) {
	d := &builder.Directory{Access: []string{"0755"}}

	acts, err := d.Build("/stage/share")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"mkdir /stage/share",
		"chmod 0755 /stage/share",
	}, previews(acts))
}

func TestSourceFileBuild(t *testing.T) {
	tests := []struct {
		name string
		src  builder.SourceFile
		want []string
	}{
		{
			name: "defaults_to_source_basename",
			src:  builder.SourceFile{Path: "/abs/tool"},
			want: []string{"cp /abs/tool /stage/bin/tool"},
		},
		{
			name: "rename",
			src:  builder.SourceFile{Path: "/abs/tool", Rename: rename("tool-2")},
			want: []string{"cp /abs/tool /stage/bin/tool-2"},
		},
		{
			name: "symlink_aliases_point_at_staged_copy",
			src:  builder.SourceFile{Path: "/abs/tool-1.0", Symlinks: []string{"tool"}},
			want: []string{
				"cp /abs/tool-1.0 /stage/bin/tool-1.0",
				"ln -s /stage/bin/tool-1.0 /stage/bin/tool",
			},
		},
		{
			name: "access_applies_to_staged_copy",
			src:  builder.SourceFile{Path: "/abs/tool", Access: []string{"0755"}},
			want: []string{
				"cp /abs/tool /stage/bin/tool",
				"chmod 0755 /stage/bin/tool",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acts, err := tt.src.Build("/stage/bin")
			require.NoError(t, err)
			assert.Equal(t, tt.want, previews(acts))
		})
	}
}

func TestSourceFileBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      builder.SourceFile
		wantCode errors.ErrorCode
	}{
		{
			name:     "relative_path",
			src:      builder.SourceFile{Path: "rel/tool"},
			wantCode: errors.ErrSourceRelative,
		},
		{
			name:     "rename_with_separator",
			src:      builder.SourceFile{Path: "/abs/tool", Rename: rename("sub/tool")},
			wantCode: errors.ErrRenameInvalid,
		},
		{
			name:     "rename_dotdot",
			src:      builder.SourceFile{Path: "/abs/tool", Rename: rename("..")},
			wantCode: errors.ErrRenameInvalid,
		},
		{
			// An empty rename is present-but-invalid, not "use the basename".
			name:     "rename_empty",
			src:      builder.SourceFile{Path: "/abs/tool", Rename: rename("")},
			wantCode: errors.ErrRenameInvalid,
		},
		{
			name:     "alias_with_separator",
			src:      builder.SourceFile{Path: "/abs/tool", Symlinks: []string{"../evil"}},
			wantCode: errors.ErrRenameInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.src.Build("/stage/bin")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantCode))
		})
	}
}

func TestSourceFilesBuild(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "lib/a.so", "a")
	testutil.CreateFile(t, root, "lib/sub/b.so", "b")
	testutil.CreateFile(t, root, "lib/readme.txt", "doc")

	src := builder.SourceFiles{Path: root, Patterns: []string{"lib/**/*.so"}}
	acts, err := src.Build("/stage/usr")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"cp " + filepath.Join(root, "lib/a.so") + " /stage/usr/lib/a.so",
		"cp " + filepath.Join(root, "lib/sub/b.so") + " /stage/usr/lib/sub/b.so",
	}, previews(acts))
}

func TestSourceFilesSkipsDirectories(t *testing.T) {
	root := t.TempDir()
	testutil.CreateDir(t, root, "data/empty")
	testutil.CreateFile(t, root, "data/keep", "x")

	src := builder.SourceFiles{Path: root, Patterns: []string{"data/**"}}
	acts, err := src.Build("/stage")
	require.NoError(t, err)

	// Only the regular file is copied; matched directories are skipped.
	assert.Equal(t, []string{
		"cp " + filepath.Join(root, "data/keep") + " /stage/data/keep",
	}, previews(acts))
}

func TestSourceFilesDeduplicatesAcrossPatterns(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "bin/tool", "x")

	src := builder.SourceFiles{Path: root, Patterns: []string{"bin/*", "**/tool"}}
	acts, err := src.Build("/stage")
	require.NoError(t, err)
	assert.Len(t, acts, 1)
}

func TestSourceFilesEmptyMatch(t *testing.T) {
	root := t.TempDir()

	src := builder.SourceFiles{Path: root, Patterns: []string{"**/*.so"}}
	_, err := src.Build("/stage")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternEmpty))

	// allow_empty turns the failure into a no-op.
	src.AllowEmpty = true
	acts, err := src.Build("/stage")
	require.NoError(t, err)
	assert.Empty(t, acts)
}

func TestSourceFilesFollowLinks(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "real/lib.so", "x")
	testutil.CreateSymlink(t, filepath.Join(root, "real"), filepath.Join(root, "linked"))

	// Directory symlinks are not walked through by default.
	src := builder.SourceFiles{Path: root, Patterns: []string{"linked/**/*.so"}, AllowEmpty: true}
	acts, err := src.Build("/stage")
	require.NoError(t, err)
	assert.Empty(t, acts)

	src.FollowLinks = true
	acts, err = src.Build("/stage")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"cp " + filepath.Join(root, "linked/lib.so") + " /stage/linked/lib.so",
	}, previews(acts))
}

func TestSourceFilesRelativeRoot(t *testing.T) {
	src := builder.SourceFiles{Path: "relative/root", Patterns: []string{"**"}}
	_, err := src.Build("/stage")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceRelative))
}

func TestSourceFilesBadPattern(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "a", "x")

	src := builder.SourceFiles{Path: root, Patterns: []string{"[unclosed"}}
	_, err := src.Build("/stage")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
}

func TestSymlinkBuild(t *testing.T) {
	link := &builder.Symlink{Target: "/abs/tool"}
	acts, err := link.Build("/stage/bin")
	require.NoError(t, err)
	assert.Equal(t, []string{"ln -s /abs/tool /stage/bin/tool"}, previews(acts))

	link = &builder.Symlink{Target: "/abs/tool", Rename: rename("t")}
	acts, err = link.Build("/stage/bin")
	require.NoError(t, err)
	assert.Equal(t, []string{"ln -s /abs/tool /stage/bin/t"}, previews(acts))
}

func TestSymlinkBuildRejectsInvalidRename(t *testing.T) {
	for _, bad := range []string{"sub/t", ""} {
		link := &builder.Symlink{Target: "/abs/tool", Rename: rename(bad)}
		_, err := link.Build("/stage/bin")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRenameInvalid))
	}
}

func TestStagingBuildOrdersTargets(t *testing.T) {
	staging := builder.NewStaging()
	staging.Add("share/doc", &builder.Directory{})
	staging.Add("bin", &builder.SourceFile{Path: "/abs/tool"})

	acts, err := staging.Build("/out")
	require.NoError(t, err)

	// Targets build in lexicographic order regardless of insertion order.
	assert.Equal(t, []string{
		"cp /abs/tool /out/bin/tool",
		"mkdir /out/share/doc",
	}, previews(acts))
}

func TestStagingBuildAggregatesErrors(t *testing.T) {
	staging := builder.NewStaging()
	staging.Add("bin", &builder.SourceFile{Path: "relative"})
	staging.Add("lib", &builder.SourceFile{Path: "/abs/lib.so", Rename: rename("a/b")})

	_, err := staging.Build("/out")
	require.Error(t, err)

	// Both independently-invalid sources are reported in one result.
	var agg *errors.Aggregate
	require.True(t, errors.As(err, &agg))
	assert.Equal(t, 2, agg.Len())
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceRelative))
	assert.True(t, errors.IsErrorCode(err, errors.ErrRenameInvalid))
}

func TestStagingBuildKeepsSourceOrderWithinTarget(t *testing.T) {
	staging := builder.NewStaging()
	staging.Add("bin",
		&builder.Directory{},
		&builder.SourceFile{Path: "/abs/tool"},
		&builder.Symlink{Target: "/abs/other", Rename: rename("other")},
	)

	acts, err := staging.Build("/out")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"mkdir /out/bin",
		"cp /abs/tool /out/bin/tool",
		"ln -s /abs/other /out/bin/other",
	}, previews(acts))
}
