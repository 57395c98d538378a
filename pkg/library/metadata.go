package library

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
)

var fileVersionRe = regexp.MustCompile(`FileVersion="([^"]+)"`)

// lbyLibrary is the root element of a library descriptor. Field tags carry
// no namespace so both the plain and the namespaced form match.
type lbyLibrary struct {
	Version        *string `xml:"Version,attr"`
	SubType        *string `xml:"SubType,attr"`
	Description    *string `xml:"Description,attr"`
	HeaderFileName *string `xml:"HeaderFileName,attr"`

	AutomationStudio *struct {
		FileVersion string `xml:"FileVersion,attr"`
	} `xml:"AutomationStudio"`

	Files []struct {
		Path        string `xml:",chardata"`
		Description string `xml:"Description,attr"`
	} `xml:"Files>File"`

	Dependencies []struct {
		ObjectName  string `xml:"ObjectName,attr"`
		FromVersion string `xml:"FromVersion,attr"`
		ToVersion   string `xml:"ToVersion,attr"`
	} `xml:"Dependencies>Dependency"`
}

// ParseMetadata reads a library descriptor. The library name is not part
// of the descriptor; it comes from the folder name. Any failure is returned
// as a metadata *errors.Error.
func ParseMetadata(r io.Reader) (*ast.Metadata, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var (
		root        *lbyLibrary
		fileVersion string
	)
	for root == nil {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, metadataError("invalid descriptor XML: %v", err)
		}
		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == "AutomationStudio" {
				if m := fileVersionRe.FindSubmatch(t.Inst); m != nil {
					fileVersion = string(m[1])
				}
			}
		case xml.StartElement:
			root = &lbyLibrary{}
			if err := dec.DecodeElement(root, &t); err != nil {
				return nil, metadataError("invalid descriptor XML: %v", err)
			}
		}
	}
	if root == nil {
		return nil, metadataError("descriptor has no root element")
	}

	md := &ast.Metadata{
		Version:        nonEmpty(root.Version),
		SubType:        nonEmpty(root.SubType),
		Description:    nonEmpty(root.Description),
		HeaderFileName: nonEmpty(root.HeaderFileName),
	}
	if root.AutomationStudio != nil && root.AutomationStudio.FileVersion != "" {
		fileVersion = root.AutomationStudio.FileVersion
	}
	if fileVersion != "" {
		md.FileVersion = &fileVersion
	}

	md.Files = make([]ast.DeclaredFile, 0, len(root.Files))
	for _, f := range root.Files {
		md.Files = append(md.Files, ast.DeclaredFile{
			Path:        strings.TrimSpace(f.Path),
			Description: f.Description,
		})
	}
	md.Dependencies = make([]ast.Dependency, 0, len(root.Dependencies))
	for _, d := range root.Dependencies {
		md.Dependencies = append(md.Dependencies, ast.Dependency{
			ObjectName:  d.ObjectName,
			FromVersion: d.FromVersion,
			ToVersion:   d.ToVersion,
		})
	}
	return md, nil
}

// ParseMetadataFile reads the descriptor at path.
func ParseMetadataFile(path string) (*ast.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errors.Error{
			Type:     errors.ErrorTypeIO,
			Severity: errors.SeverityError,
			Message:  fmt.Sprintf("cannot open descriptor: %v", err),
			Location: ast.Location{File: path},
		}
	}
	defer f.Close()

	md, err := ParseMetadata(f)
	if e, ok := err.(*errors.Error); ok {
		e.Location.File = path
	}
	return md, err
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func metadataError(format string, args ...any) *errors.Error {
	return errors.Errorf(errors.ErrorTypeMetadata, ast.Location{}, format, args...)
}

// charsetReader decodes descriptors declared in a non UTF-8 encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported descriptor encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
