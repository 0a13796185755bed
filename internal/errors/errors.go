// Package errors provides standardized error handling for the matchman
// application. It defines common error types, constants, and helper functions
// for consistent error creation, wrapping, and handling across the
// application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	ParseFailed
	WriteFailed
	UnparsedContent
	// State error kinds
	StaleTarget
	InvalidInput
	UnknownFile
	// Config error kinds
	InvalidConfig
)

// Common error constants for frequently occurring errors
var (
	ErrEmptyFields     = NewInputError("trigger and replacement must not be empty", nil)
	ErrStaleTarget     = &ApplicationError{msg: "edit target no longer exists", kind: StaleTarget}
	ErrUnparsedContent = &ApplicationError{msg: "file has unparsed content; saving would truncate it", kind: UnparsedContent}
	ErrUnknownFile     = &ApplicationError{msg: "file is not in the catalog", kind: UnknownFile}
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to match file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// InputError represents rejected user input (empty trigger or replacement)
type InputError struct {
	ApplicationError
}

// NewInputError creates a new input error
func NewInputError(msg string, err error) *InputError {
	return &InputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidInput,
		},
	}
}

// ConfigError represents errors related to application configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidConfig,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

func kindOf(err error) ErrorKind {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind()
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return Unknown
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	return kindOf(err) == FileNotFound
}

// IsParseFailed checks if the error is a parse failure
func IsParseFailed(err error) bool {
	return kindOf(err) == ParseFailed
}

// IsWriteFailed checks if the error is a write failure
func IsWriteFailed(err error) bool {
	return kindOf(err) == WriteFailed
}

// IsUnparsedContent checks if the error is a refused save over unparsed content
func IsUnparsedContent(err error) bool {
	return kindOf(err) == UnparsedContent
}

// IsStaleTarget checks if the error is a stale edit/delete target
func IsStaleTarget(err error) bool {
	return kindOf(err) == StaleTarget
}

// IsInvalidInput checks if the error is rejected user input
func IsInvalidInput(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr) || kindOf(err) == InvalidInput
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}
