// Package errors provides standardized error handling for the tiedye application.
// It defines common error types, kinds, and helper functions for consistent
// error creation, wrapping, and inspection across the application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions that we re-export for convenience
var (
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	NotADirectory
	FileOperationFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	MissingSection
	// Rule error kinds
	InvalidRule
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

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		path:             path,
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

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		param:            param,
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

// RuleError represents errors related to sorting rules
type RuleError struct {
	ApplicationError
	rule string
}

// NewRuleError creates a new rule error
func NewRuleError(msg string, rule string, kind ErrorKind, err error) *RuleError {
	return &RuleError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		rule:             rule,
	}
}

// Error returns the rule error message
func (e *RuleError) Error() string {
	if e.rule != "" {
		return fmt.Sprintf("%s: %s", e.msg, e.rule)
	}
	return e.ApplicationError.Error()
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{msg: msg, kind: Unknown}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{msg: fmt.Sprintf(format, args...), kind: Unknown}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{msg: msg, err: err, kind: Unknown}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{msg: fmt.Sprintf(format, args...), err: err, kind: Unknown}
}

// IsNotADirectory checks if the error reports a source root that is not a directory
func IsNotADirectory(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == NotADirectory
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

// IsInvalidConfig checks if the error is a configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsInvalidRule checks if the error reports a malformed sorting rule
func IsInvalidRule(err error) bool {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Kind() == InvalidRule
	}
	return false
}
