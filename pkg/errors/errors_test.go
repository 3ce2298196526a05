// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and category mapping

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/stagehand/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "config_invalid_error",
			code:    errors.ErrConfigInvalid,
			message: "target must be absolute",
			wantStr: "[CONFIG_INVALID] target must be absolute",
		},
		{
			name:    "pattern_empty_error",
			code:    errors.ErrPatternEmpty,
			message: "no files matched",
			wantStr: "[PATTERN_EMPTY] no files matched",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := errors.Wrap(cause, errors.ErrFileCopy, "cannot copy file")

	if !stderrors.Is(err, cause) {
		t.Error("Wrap() should preserve the cause for errors.Is")
	}

	want := "[FILE_COPY] cannot copy file: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if errors.Wrap(nil, errors.ErrFileCopy, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrTargetEscapes, "path is outside of staging root: %q", "/..")

	if !errors.IsErrorCode(err, errors.ErrTargetEscapes) {
		t.Error("IsErrorCode() should match the code")
	}
	if errors.IsErrorCode(err, errors.ErrPatternEmpty) {
		t.Error("IsErrorCode() should not match a different code")
	}

	// Wrapped errors keep their code reachable.
	wrapped := errors.Wrap(err, errors.ErrConfigInvalid, "stage translation failed")
	if errors.GetErrorCode(wrapped) != errors.ErrConfigInvalid {
		t.Error("GetErrorCode() should return the outermost code")
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		code errors.ErrorCode
		want errors.Category
	}{
		{errors.ErrTemplateRender, errors.InvalidConfiguration},
		{errors.ErrTargetRelative, errors.InvalidConfiguration},
		{errors.ErrRenameInvalid, errors.InvalidConfiguration},
		{errors.ErrSourceRelative, errors.HarvestingFailed},
		{errors.ErrPatternEmpty, errors.HarvestingFailed},
		{errors.ErrWalkFailed, errors.HarvestingFailed},
		{errors.ErrDirCreate, errors.StagingFailed},
		{errors.ErrSymlinkCreate, errors.StagingFailed},
		{errors.ErrUnknown, errors.CategoryUnknown},
	}

	for _, tt := range tests {
		if got := errors.CategoryOf(tt.code); got != tt.want {
			t.Errorf("CategoryOf(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
