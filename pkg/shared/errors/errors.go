package errors

import "fmt"

// UnsupportedLanguageError marks a file extension with no structural grammar.
// Callers treat it as a silent skip, not a failure.
type UnsupportedLanguageError struct {
	Extension string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("no structural grammar for extension %q", e.Extension)
}

// NewUnsupportedLanguageError creates an UnsupportedLanguageError.
func NewUnsupportedLanguageError(ext string) error {
	return &UnsupportedLanguageError{Extension: ext}
}

// ParseError represents a structural parse failure for a single file.
// It is contained at file granularity and never aborts a whole-tree scan.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %q: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError wrapping the underlying cause.
func NewParseError(file string, err error) error {
	return &ParseError{File: file, Err: err}
}

// ExitCodeError carries a process exit code through command execution,
// letting the CI gate signal its verdict without printing a usage error.
type ExitCodeError struct {
	Code    int
	Message string
}

func (e *ExitCodeError) Error() string {
	return e.Message
}

// NewExitCodeError creates an ExitCodeError with the given code and message.
func NewExitCodeError(code int, message string) *ExitCodeError {
	return &ExitCodeError{Code: code, Message: message}
}
