package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"libscribe-hq/libscribe/pkg/iec/parser"
)

// Layout lists the files of a library folder.
type Layout struct {
	// Root is the library folder
	Root string

	// Name is the library name taken from the folder name
	Name string

	// Primary is the single function declaration file in Root
	Primary string

	// Types and Variables are all *.typ and *.var files below Root, sorted
	Types     []string
	Variables []string

	// Descriptor is the first *.lby file in Root, or empty
	Descriptor string
}

// Files returns every declaration file in merge order: the function file,
// then type files, then variable files.
func (l *Layout) Files() []string {
	files := make([]string, 0, 1+len(l.Types)+len(l.Variables))
	files = append(files, l.Primary)
	files = append(files, l.Types...)
	return append(files, l.Variables...)
}

// Discover finds the declaration files of the library folder dir. Hidden
// directories below dir are skipped.
func Discover(dir string) (*Layout, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Message: "invalid path", Cause: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Path: dir, Message: "directory not found", Cause: err}
		}
		return nil, &LoadError{Path: dir, Message: "failed to access directory", Cause: err}
	}
	if !info.IsDir() {
		return nil, &LoadError{Path: dir, Message: "not a directory"}
	}

	layout := &Layout{Root: abs, Name: filepath.Base(abs)}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, &LoadError{Path: dir, Message: "failed to read directory", Cause: err}
	}
	var primaries, descriptors []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".fun":
			primaries = append(primaries, filepath.Join(abs, e.Name()))
		case ".lby":
			descriptors = append(descriptors, filepath.Join(abs, e.Name()))
		}
	}
	switch len(primaries) {
	case 0:
		return nil, &LoadError{Path: dir, Message: "discovery failed", Cause: ErrNoPrimary}
	case 1:
		layout.Primary = primaries[0]
	default:
		names := make([]string, len(primaries))
		for i, p := range primaries {
			names[i] = filepath.Base(p)
		}
		return nil, &LoadError{
			Path:    dir,
			Message: fmt.Sprintf("found %s", strings.Join(names, ", ")),
			Cause:   ErrAmbiguousPrimary,
		}
	}
	if len(descriptors) > 0 {
		layout.Descriptor = descriptors[0]
	}

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != abs && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch parser.KindOf(path) {
		case parser.FileTypes:
			layout.Types = append(layout.Types, path)
		case parser.FileVariables:
			layout.Variables = append(layout.Variables, path)
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{Path: dir, Message: "failed to walk directory", Cause: err}
	}
	sort.Strings(layout.Types)
	sort.Strings(layout.Variables)

	return layout, nil
}

// IsLibraryFile reports whether path is a declaration or descriptor file.
func IsLibraryFile(path string) bool {
	return parser.KindOf(path) != parser.FileUnknown || strings.EqualFold(filepath.Ext(path), ".lby")
}

// Owner returns the library folder that path belongs to: the nearest
// directory at or above path's directory, and not above root, that directly
// holds a *.fun file.
func Owner(root, path string) (string, bool) {
	root = filepath.Clean(root)
	dir := filepath.Dir(filepath.Clean(path))
	for within(root, dir) {
		if hasPrimary(dir) {
			return dir, true
		}
		if dir == root {
			break
		}
		dir = filepath.Dir(dir)
	}
	return "", false
}

func within(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func hasPrimary(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".fun") {
			return true
		}
	}
	return false
}
