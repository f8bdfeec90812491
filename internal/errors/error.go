package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryBinding  Category = "binding"
	CategoryTemplate Category = "template"
	CategoryData     Category = "data"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// Location is a position in a template, data or configuration file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as file:line[:column].
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// MVVMError is a structured error with a code, an optional file location
// and a hint on how to fix it.
type MVVMError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is where the error occurred, if it is tied to a file.
	Location *Location

	// Context holds the lines surrounding Location.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *MVVMError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *MVVMError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file location and reads the surrounding lines.
func (e *MVVMError) WithLocation(file string, line, column int) *MVVMError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *MVVMError) WithSuggestion(s string) *MVVMError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the registered explanation.
func (e *MVVMError) WithDetail(d string) *MVVMError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *MVVMError) Wrap(err error) *MVVMError {
	e.Wrapped = err
	return e
}

// readContextLines reads up to contextSize lines centered on targetLine.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}
	return lines
}

// New creates an MVVMError from a registered error code.
func New(code string) *MVVMError {
	template, ok := registry[code]
	if !ok {
		return &MVVMError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &MVVMError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// FromError wraps err in an MVVMError with the given code. An error that
// already is an *MVVMError is returned unchanged.
func FromError(err error, code string) *MVVMError {
	if err == nil {
		return nil
	}
	if me, ok := err.(*MVVMError); ok {
		return me
	}
	return New(code).Wrap(err)
}
