// Package errors provides rich diagnostics for declaration parsing, library
// loading and validation.
//
// Every diagnostic carries a type, a severity, a source location and
// optionally a source snippet and a suggestion. Parsers never abort on a
// malformed unit: they record a warning and continue, so an ErrorList is the
// normal companion of every parse result.
//
// # Error Types
//
// ErrorTypeStructural: missing delimiters, unterminated groups, missing return type
//
// ErrorTypeMalformed: an entry that does not match its expected shape
//
// ErrorTypeEncoding: input bytes that cannot be decoded
//
// ErrorTypeMetadata: a library descriptor that cannot be read
//
// ErrorTypeSemantic: duplicates, bad enumeration defaults, unknown names
//
// ErrorTypeIO: file I/O errors
//
// # Basic Usage
//
//	el := errors.NewErrorList()
//	el.AddWarning(errors.ErrorTypeMalformed, "cannot parse entry", loc)
//	errors.AddSourceContext(el, loc.File, text)
//
//	if el.HasFailures() {
//	    return el.ToError()
//	}
//
// # Error Format
//
//	warning[malformed] cannot parse variable entry "x INT"
//	  --> MyLib.fun:12:3
//	  |
//	   11 |     Enable : BOOL;
//	-> 12 |     x INT;
//	      |   ^
//	  |
//	  = suggestion: Did you mean 'MAX_AXES'?
//
// # Suggestions
//
// Name suggestions use Levenshtein distance (github.com/agext/levenshtein)
// over case-folded names.
package errors
