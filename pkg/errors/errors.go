package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrConfigParse     ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid   ErrorCode = "CONFIG_INVALID"
	ErrTemplateRender  ErrorCode = "TEMPLATE_RENDER"
	ErrTargetRelative  ErrorCode = "TARGET_RELATIVE"
	ErrTargetEscapes   ErrorCode = "TARGET_ESCAPES_ROOT"
	ErrTargetDuplicate ErrorCode = "TARGET_DUPLICATE"
	ErrRenameInvalid   ErrorCode = "RENAME_INVALID"

	// Harvesting errors (finding and validating source files)
	ErrSourceRelative ErrorCode = "SOURCE_RELATIVE"
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"
	ErrPatternEmpty   ErrorCode = "PATTERN_EMPTY"
	ErrWalkFailed     ErrorCode = "WALK_FAILED"

	// Staging errors (executing actions against the filesystem)
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrFileCopy      ErrorCode = "FILE_COPY"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrActionExecute ErrorCode = "ACTION_EXECUTE"
)

// Category groups error codes by the phase that produced them.
type Category int

const (
	// CategoryUnknown is returned for codes that do not belong to a phase.
	CategoryUnknown Category = iota
	// InvalidConfiguration covers malformed targets, rename violations, and
	// template rendering failures.
	InvalidConfiguration
	// HarvestingFailed covers source discovery problems: relative source
	// paths, bad glob patterns, empty matches, and walk errors.
	HarvestingFailed
	// StagingFailed covers filesystem failures while executing actions.
	StagingFailed
)

func (c Category) String() string {
	switch c {
	case InvalidConfiguration:
		return "invalid configuration"
	case HarvestingFailed:
		return "harvesting failed"
	case StagingFailed:
		return "staging failed"
	default:
		return "unknown"
	}
}

// CategoryOf maps an error code to its phase category.
func CategoryOf(code ErrorCode) Category {
	switch code {
	case ErrConfigLoad, ErrConfigParse, ErrConfigInvalid, ErrTemplateRender,
		ErrTargetRelative, ErrTargetEscapes, ErrTargetDuplicate, ErrRenameInvalid:
		return InvalidConfiguration
	case ErrSourceRelative, ErrPatternInvalid, ErrPatternEmpty, ErrWalkFailed:
		return HarvestingFailed
	case ErrDirCreate, ErrFileCopy, ErrSymlinkCreate, ErrActionExecute:
		return StagingFailed
	default:
		return CategoryUnknown
	}
}

// StageError represents a structured error with code and details
type StageError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *StageError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StageError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *StageError) Is(target error) bool {
	var targetErr *StageError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new StageError with the given code and message
func New(code ErrorCode, message string) *StageError {
	return &StageError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new StageError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *StageError {
	return &StageError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a StageError
func Wrap(err error, code ErrorCode, message string) *StageError {
	if err == nil {
		return nil
	}
	return &StageError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *StageError {
	if err == nil {
		return nil
	}
	return &StageError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *StageError) WithDetail(key string, value interface{}) *StageError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsErrorCode checks if any error in err's tree has the given code. This
// traverses aggregates, so a code buried in a multi-error report is found.
func IsErrorCode(err error, code ErrorCode) bool {
	return errors.Is(err, &StageError{Code: code})
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a StageError
func GetErrorCode(err error) ErrorCode {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Code
	}
	return ErrUnknown
}
