package errors

import (
	"fmt"
)

// ParseError represents a configuration parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration and descriptor validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PluginError indicates a failure while constructing, initializing or shutting down a plugin.
type PluginError struct {
	Plugin  string
	Op      string
	Message string
	Err     error
}

// NewPluginError constructs a PluginError for the given plugin id.
func NewPluginError(plugin string, err error) error {
	return NewPluginOpError(plugin, "", err)
}

// NewPluginOpError constructs a PluginError that records the lifecycle step that failed.
func NewPluginOpError(plugin, op string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &PluginError{Plugin: plugin, Op: op, Message: message, Err: err}
}

func (e *PluginError) Error() string {
	if e == nil {
		return ""
	}
	prefix := "plugin error"
	if e.Op != "" {
		prefix = fmt.Sprintf("plugin %s error", e.Op)
	}
	if e.Plugin != "" {
		return fmt.Sprintf("%s [%s]: %s", prefix, e.Plugin, e.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap exposes the underlying error.
func (e *PluginError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ThemeError reports that a palette could not be applied.
type ThemeError struct {
	Theme string
	Err   error
}

// NewThemeError constructs a ThemeError for the named palette.
func NewThemeError(theme string, err error) error {
	return &ThemeError{Theme: theme, Err: err}
}

func (e *ThemeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("theme error [%s]: %v", e.Theme, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ThemeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
