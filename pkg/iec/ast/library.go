package ast

import "errors"

// DefaultVersion is the library version used when no descriptor sets one.
const DefaultVersion = "1.0.0"

// ErrFrozen is returned when a frozen Library is modified.
var ErrFrozen = errors.New("library is frozen")

// DeclaredFile is a file listed in the library descriptor.
type DeclaredFile struct {
	Path        string `json:"path" yaml:"path"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Dependency is a library dependency listed in the descriptor.
type Dependency struct {
	ObjectName  string `json:"object_name" yaml:"object_name"`
	FromVersion string `json:"from_version,omitempty" yaml:"from_version,omitempty"`
	ToVersion   string `json:"to_version,omitempty" yaml:"to_version,omitempty"`
}

// Metadata holds descriptor overrides. Nil fields leave the library value
// untouched.
type Metadata struct {
	Name           *string
	Version        *string
	SubType        *string
	Description    *string
	HeaderFileName *string
	FileVersion    *string
	Files          []DeclaredFile
	Dependencies   []Dependency
}

// Library is the aggregate root for one library folder.
//
// A Library is built by strictly additive AppendDeclarations calls and by
// ApplyMetadata overrides, then frozen. Consumers such as the resolver only
// accept frozen libraries.
type Library struct {
	Name           string         `json:"name" yaml:"name"`
	Version        string         `json:"version" yaml:"version"`
	SubType        string         `json:"sub_type,omitempty" yaml:"sub_type,omitempty"`
	Description    string         `json:"description,omitempty" yaml:"description,omitempty"`
	HeaderFileName string         `json:"header_file_name,omitempty" yaml:"header_file_name,omitempty"`
	FileVersion    string         `json:"file_version,omitempty" yaml:"file_version,omitempty"`
	Files          []DeclaredFile `json:"files,omitempty" yaml:"files,omitempty"`
	Dependencies   []Dependency   `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	Declarations `yaml:",inline"`

	frozen bool
}

// NewLibrary returns an empty library with the default version.
func NewLibrary(name string) *Library {
	return &Library{Name: name, Version: DefaultVersion}
}

// AppendDeclarations adds declarations to the library. Existing entries are
// never replaced.
func (l *Library) AppendDeclarations(d Declarations) error {
	if l.frozen {
		return ErrFrozen
	}
	l.Declarations.Append(d)
	return nil
}

// ApplyMetadata overwrites the fields set in md. Declaration lists are not
// touched.
func (l *Library) ApplyMetadata(md Metadata) error {
	if l.frozen {
		return ErrFrozen
	}
	setIf(&l.Name, md.Name)
	setIf(&l.Version, md.Version)
	setIf(&l.SubType, md.SubType)
	setIf(&l.Description, md.Description)
	setIf(&l.HeaderFileName, md.HeaderFileName)
	setIf(&l.FileVersion, md.FileVersion)
	if md.Files != nil {
		l.Files = append([]DeclaredFile(nil), md.Files...)
	}
	if md.Dependencies != nil {
		l.Dependencies = append([]Dependency(nil), md.Dependencies...)
	}
	return nil
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Freeze marks the library read-only.
func (l *Library) Freeze() {
	l.frozen = true
}

// Frozen reports whether Freeze has been called.
func (l *Library) Frozen() bool {
	return l.frozen
}

// Structure returns the structure named name, or nil.
func (l *Library) Structure(name string) *Structure {
	for _, s := range l.Structures {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Enumeration returns the enumeration named name, or nil.
func (l *Library) Enumeration(name string) *Enumeration {
	for _, e := range l.Enumerations {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Constant returns the constant named name, or nil.
func (l *Library) Constant(name string) *Variable {
	for _, c := range l.Constants {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FunctionBlock returns the function block named name, or nil.
func (l *Library) FunctionBlock(name string) *FunctionBlock {
	for _, fb := range l.FunctionBlocks {
		if fb.Name == name {
			return fb
		}
	}
	return nil
}

// Function returns the function named name, or nil.
func (l *Library) Function(name string) *Function {
	for _, f := range l.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Stats counts the declarations of a library.
type Stats struct {
	Functions      int `json:"functions" yaml:"functions"`
	FunctionBlocks int `json:"function_blocks" yaml:"function_blocks"`
	Structures     int `json:"structures" yaml:"structures"`
	Enumerations   int `json:"enumerations" yaml:"enumerations"`
	Constants      int `json:"constants" yaml:"constants"`
}

// Stats returns declaration counts.
func (l *Library) Stats() Stats {
	return Stats{
		Functions:      len(l.Functions),
		FunctionBlocks: len(l.FunctionBlocks),
		Structures:     len(l.Structures),
		Enumerations:   len(l.Enumerations),
		Constants:      len(l.Constants),
	}
}
