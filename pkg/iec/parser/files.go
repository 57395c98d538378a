package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
	"libscribe-hq/libscribe/pkg/iec/scanner"
)

// FileKind identifies a declaration file by its extension.
type FileKind string

const (
	FileFunctions FileKind = ".fun"
	FileTypes     FileKind = ".typ"
	FileVariables FileKind = ".var"
	FileUnknown   FileKind = ""
)

// KindOf returns the file kind for path.
func KindOf(path string) FileKind {
	switch FileKind(strings.ToLower(filepath.Ext(path))) {
	case FileFunctions:
		return FileFunctions
	case FileTypes:
		return FileTypes
	case FileVariables:
		return FileVariables
	default:
		return FileUnknown
	}
}

// FileResult is the outcome of parsing one declaration file.
type FileResult struct {
	Path         string
	Kind         FileKind
	Declarations ast.Declarations
	Warnings     *errors.ErrorList
	Units        int // candidate units found by the splitter
	Failed       int // units that produced no declaration
}

func newFileResult(path string, kind FileKind) *FileResult {
	return &FileResult{Path: path, Kind: kind, Warnings: errors.NewErrorList()}
}

// unitFailed records a unit that produced no declaration. The failure is
// downgraded to a warning so the file keeps its other declarations.
func (r *FileResult) unitFailed(err error) {
	r.Failed++
	if e, ok := err.(*errors.Error); ok {
		e.Severity = errors.SeverityWarning
		r.Warnings.Add(e)
		return
	}
	r.Warnings.AddWarning(errors.ErrorTypeStructural, err.Error(), ast.Location{File: r.Path})
}

// ParseFile parses text according to the extension of path.
func (p *Parser) ParseFile(path, text string) (*FileResult, error) {
	if int64(len(text)) > p.maxFileSize {
		return nil, &errors.Error{
			Type:     errors.ErrorTypeIO,
			Severity: errors.SeverityError,
			Message:  fmt.Sprintf("File size %d exceeds maximum %d bytes", len(text), p.maxFileSize),
			Location: ast.Location{File: path},
		}
	}

	var result *FileResult
	switch KindOf(path) {
	case FileFunctions:
		result = p.ParseFunctionFile(path, text)
	case FileTypes:
		result = p.ParseTypeFile(path, text)
	case FileVariables:
		result = p.ParseVarFile(path, text)
	default:
		return nil, &errors.Error{
			Type:     errors.ErrorTypeIO,
			Severity: errors.SeverityError,
			Message:  fmt.Sprintf("unsupported declaration file %q", filepath.Base(path)),
			Location: ast.Location{File: path},
		}
	}
	errors.AddSourceContext(result.Warnings, path, text)
	return result, nil
}

// ParseFunctionFile parses every FUNCTION and FUNCTION_BLOCK of a function
// declaration file.
func (p *Parser) ParseFunctionFile(path, text string) *FileResult {
	result := newFileResult(path, FileFunctions)
	units, warnings := scanner.SplitFunctionFile(path, text)
	result.Warnings.Merge(warnings)
	result.Units = len(units)

	for _, unit := range units {
		switch unit.Kind {
		case scanner.KindFunctionBlock:
			fb, w, err := p.ParseFunctionBlock(unit)
			result.Warnings.Merge(w)
			if err != nil {
				result.unitFailed(err)
				continue
			}
			result.Declarations.FunctionBlocks = append(result.Declarations.FunctionBlocks, fb)
		case scanner.KindFunction:
			fn, w, err := p.ParseFunction(unit)
			result.Warnings.Merge(w)
			if err != nil {
				result.unitFailed(err)
				continue
			}
			result.Declarations.Functions = append(result.Declarations.Functions, fn)
		}
	}
	return result
}

// ParseTypeFile parses every structure and enumeration of a type
// declaration file.
func (p *Parser) ParseTypeFile(path, text string) *FileResult {
	result := newFileResult(path, FileTypes)
	units, warnings := scanner.SplitTypeFile(path, text)
	result.Warnings.Merge(warnings)
	result.Units = len(units)

	for _, unit := range units {
		switch unit.Kind {
		case scanner.KindStructure:
			s, w, err := p.ParseStructure(unit)
			result.Warnings.Merge(w)
			if err != nil {
				result.unitFailed(err)
				continue
			}
			result.Declarations.Structures = append(result.Declarations.Structures, s)
		case scanner.KindEnumeration:
			e, w, err := p.ParseEnumeration(unit)
			result.Warnings.Merge(w)
			if err != nil {
				result.unitFailed(err)
				continue
			}
			result.Declarations.Enumerations = append(result.Declarations.Enumerations, e)
		}
	}
	return result
}

// ParseVarFile parses the VAR CONSTANT blocks of a variable declaration
// file.
func (p *Parser) ParseVarFile(path, text string) *FileResult {
	result := newFileResult(path, FileVariables)
	units, warnings := scanner.SplitVarFile(path, text)
	result.Warnings.Merge(warnings)
	result.Units = len(units)

	for _, unit := range units {
		constants, w, err := p.ParseConstants(unit)
		result.Warnings.Merge(w)
		if err != nil {
			result.unitFailed(err)
			continue
		}
		result.Declarations.Constants = append(result.Declarations.Constants, constants...)
	}
	return result
}

// ParseConstants parses one VAR CONSTANT block.
func (p *Parser) ParseConstants(unit scanner.Unit) ([]*ast.Variable, *errors.ErrorList, error) {
	u := newUnitParse(unit)
	var constants []*ast.Variable
	u.sections(0, "constant block", func(role ast.Role, vars []*ast.Variable) bool {
		if role != ast.RoleConstant {
			return false
		}
		constants = append(constants, vars...)
		return true
	})

	constants, err := p.dedupeVariables("constant block", constants, u.warnings)
	if err != nil {
		return nil, u.warnings, err
	}
	return constants, u.warnings, nil
}
