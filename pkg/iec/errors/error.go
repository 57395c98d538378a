package errors

import (
	"fmt"
	"strings"

	"libscribe-hq/libscribe/pkg/iec/ast"
)

// ErrorType categorizes the type of error encountered during parsing,
// loading or validation.
type ErrorType string

const (
	ErrorTypeStructural ErrorType = "structural" // Missing delimiters, unterminated groups
	ErrorTypeMalformed  ErrorType = "malformed"  // Entry that does not match the entry shape
	ErrorTypeEncoding   ErrorType = "encoding"   // Undecodable input bytes
	ErrorTypeMetadata   ErrorType = "metadata"   // Descriptor could not be read
	ErrorTypeSemantic   ErrorType = "semantic"   // Duplicates, unknown names, bad defaults
	ErrorTypeIO         ErrorType = "io"         // File I/O error
)

// Severity separates findings that fail a lint run from advisory ones.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Error represents a rich error with location, context, and suggestions.
type Error struct {
	Type       ErrorType    `json:"type" yaml:"type"`
	Severity   Severity     `json:"severity" yaml:"severity"`
	Message    string       `json:"message" yaml:"message"`
	Location   ast.Location `json:"location" yaml:"location"`
	Context    string       `json:"context,omitempty" yaml:"context,omitempty"`
	Suggestion string       `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Error implements the error interface.
// It returns a formatted error message with location and context.
func (e *Error) Error() string {
	var sb strings.Builder

	sev := e.Severity
	if sev == "" {
		sev = SeverityError
	}
	sb.WriteString(fmt.Sprintf("%s[%s] %s\n", sev, e.Type, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.String()))
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// IsWarning reports whether the error is advisory.
func (e *Error) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// Warning returns a warning-severity error.
func Warning(errType ErrorType, location ast.Location, format string, args ...any) *Error {
	return &Error{
		Type:     errType,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}

// Errorf returns an error-severity error.
func Errorf(errType ErrorType, location ast.Location, format string, args ...any) *Error {
	return &Error{
		Type:     errType,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}

// ErrorList represents a collection of errors and warnings. It allows
// accumulating findings instead of failing on the first one.
type ErrorList struct {
	Errors []*Error `json:"errors" yaml:"errors"`
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list. A missing severity defaults to error.
func (el *ErrorList) Add(err *Error) {
	if err == nil {
		return
	}
	if err.Severity == "" {
		err.Severity = SeverityError
	}
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error-severity entry.
func (el *ErrorList) AddError(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Severity: SeverityError,
		Message:  message,
		Location: location,
	})
}

// AddWarning creates and adds a new warning-severity entry.
func (el *ErrorList) AddWarning(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Severity: SeverityWarning,
		Message:  message,
		Location: location,
	})
}

// AddErrorWithSuggestion creates and adds a new entry with a suggestion.
func (el *ErrorList) AddErrorWithSuggestion(errType ErrorType, severity Severity, message string, location ast.Location, suggestion string) {
	el.Add(&Error{
		Type:       errType,
		Severity:   severity,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// Merge appends every entry of other.
func (el *ErrorList) Merge(other *ErrorList) {
	if other == nil {
		return
	}
	for _, err := range other.Errors {
		el.Add(err)
	}
}

// HasErrors returns true if the list contains any entry.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// HasFailures returns true if the list contains an error-severity entry.
func (el *ErrorList) HasFailures() bool {
	for _, err := range el.Errors {
		if err.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of entries in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all entries formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problem(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Problem %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all entries of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// BySeverity returns all entries of the given severity.
func (el *ErrorList) BySeverity(severity Severity) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Severity == severity {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the list contains at least one entry of the
// given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
