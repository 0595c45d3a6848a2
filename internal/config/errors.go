package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting path doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed indicates the value fails validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnsupportedFormat indicates the config file extension is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
