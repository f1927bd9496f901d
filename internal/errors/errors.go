// Package errors provides standardized error handling for Dark Archiver.
// It defines the error kinds surfaced to the status bar and helpers for
// classifying filesystem failures at operation boundaries.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrEmptySelection is returned by actions that need selected rows.
var ErrEmptySelection = &ApplicationError{msg: "no files selected", kind: EmptySelection}

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	NotAFile
	FileOperationFailed
	DecodeFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Transfer error kinds
	InvalidDestination
	CopyFailed
	Cancelled
	// User input kinds
	EmptySelection
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case FileNotFound:
		return "file not found"
	case FileAccessDenied:
		return "access denied"
	case InvalidPath:
		return "invalid path"
	case NotAFile:
		return "not a regular file"
	case FileOperationFailed:
		return "file operation failed"
	case DecodeFailed:
		return "decode failed"
	case InvalidConfig:
		return "invalid config"
	case ConfigNotFound:
		return "config not found"
	case InvalidDestination:
		return "invalid destination"
	case CopyFailed:
		return "copy failed"
	case Cancelled:
		return "cancelled"
	case EmptySelection:
		return "empty selection"
	default:
		return "unknown"
	}
}

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

// FileError represents errors related to file operations
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

// FromOS classifies an error returned by the os package into a FileError.
// The original error stays reachable through Unwrap.
func FromOS(op string, path string, err error) error {
	if err == nil {
		return nil
	}
	kind := FileOperationFailed
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = FileNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = FileAccessDenied
	case errors.Is(err, fs.ErrInvalid):
		kind = InvalidPath
	}
	return NewFileError(op, path, kind, unwrapPathError(err))
}

// unwrapPathError drops the *fs.PathError layer so the path is not printed twice.
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
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

// TransferError represents a failure copying a file to a destination
type TransferError struct {
	ApplicationError
	source string
	dest   string
}

// NewTransferError creates a new transfer error
func NewTransferError(msg, source, dest string, kind ErrorKind, err error) *TransferError {
	return &TransferError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		source: source,
		dest:   dest,
	}
}

// Error returns the transfer error message
func (e *TransferError) Error() string {
	switch {
	case e.source != "" && e.dest != "":
		if e.err != nil {
			return fmt.Sprintf("%s: %s -> %s: %v", e.msg, e.source, e.dest, e.err)
		}
		return fmt.Sprintf("%s: %s -> %s", e.msg, e.source, e.dest)
	case e.dest != "":
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.dest, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.dest)
	}
	return e.ApplicationError.Error()
}

// Source returns the source path of the failed transfer
func (e *TransferError) Source() string {
	return e.source
}

// Dest returns the destination path of the failed transfer
func (e *TransferError) Dest() string {
	return e.dest
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: KindOf(err),
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
		kind: KindOf(err),
	}
}

// KindOf returns the kind of the first application error in err's chain.
func KindOf(err error) ErrorKind {
	var kinded interface{ Kind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return Unknown
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsFileAccessDenied checks if the error is a file access denied error
func IsFileAccessDenied(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileAccessDenied
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsInvalidDestination checks if the error rejects a transfer destination
func IsInvalidDestination(err error) bool {
	var tErr *TransferError
	if errors.As(err, &tErr) {
		return tErr.Kind() == InvalidDestination
	}
	return false
}

// IsConfigNotFound checks if the error reports a config location that cannot be resolved
func IsConfigNotFound(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == ConfigNotFound
	}
	return false
}

// IsCancelled checks if the error reports a cancelled operation
func IsCancelled(err error) bool {
	return KindOf(err) == Cancelled
}
