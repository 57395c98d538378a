package parser

import (
	"libscribe-hq/libscribe/pkg/iec/ast"
	"libscribe-hq/libscribe/pkg/iec/errors"
)

// named is one entry checked for repeated names.
type named struct {
	name     string
	location ast.Location
}

// applyDuplicates returns which entries survive the policy. Warnings are
// added to warnings; under DuplicatesReject the first repeat is returned as
// an error.
func (p *Parser) applyDuplicates(owner string, entries []named, warnings *errors.ErrorList) ([]bool, *errors.Error) {
	keep := make([]bool, len(entries))
	for i := range keep {
		keep[i] = true
	}
	if p.duplicates == DuplicatesKeep {
		return keep, nil
	}

	last := make(map[string]int, len(entries))
	first := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, ok := first[e.name]; !ok {
			first[e.name] = i
		}
		last[e.name] = i
	}

	for i, e := range entries {
		if first[e.name] == last[e.name] {
			continue
		}
		switch p.duplicates {
		case DuplicatesReject:
			if i != first[e.name] {
				err := errors.Errorf(errors.ErrorTypeStructural, e.location, "%s declares %q more than once", owner, e.name)
				err.Suggestion = errors.SuggestRename(e.name)
				return nil, err
			}
		case DuplicatesWarn:
			if i != first[e.name] {
				warnings.Add(errors.Warning(errors.ErrorTypeSemantic, e.location, "%s declares %q more than once", owner, e.name))
			}
		case DuplicatesLastWins:
			if i != last[e.name] {
				keep[i] = false
				warnings.Add(errors.Warning(errors.ErrorTypeSemantic, e.location,
					"%s declares %q more than once; earlier declaration dropped", owner, e.name))
			}
		}
	}
	return keep, nil
}

// dedupeVariables applies the policy to vars and returns the survivors.
func (p *Parser) dedupeVariables(owner string, vars []*ast.Variable, warnings *errors.ErrorList) ([]*ast.Variable, *errors.Error) {
	entries := make([]named, len(vars))
	for i, v := range vars {
		entries[i] = named{name: v.Name, location: v.Location}
	}
	keep, err := p.applyDuplicates(owner, entries, warnings)
	if err != nil {
		return nil, err
	}
	out := vars[:0:0]
	for i, v := range vars {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out, nil
}
