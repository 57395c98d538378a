package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" candidate.
const maxSuggestDistance = 3

// SuggestName suggests the closest known name for an unknown one. It returns
// an empty string when nothing is close enough.
func SuggestName(unknown string, known []string) string {
	best := closest(unknown, known)
	if best == "" {
		return ""
	}
	return fmt.Sprintf("Did you mean '%s'?", best)
}

// SuggestLiteral suggests a valid enumeration literal for an unknown default.
func SuggestLiteral(unknown string, literals []string) string {
	if s := SuggestName(unknown, literals); s != "" {
		return s
	}
	if len(literals) == 0 {
		return ""
	}
	if len(literals) > 5 {
		return fmt.Sprintf("Valid literals include: %s, ...", strings.Join(literals[:5], ", "))
	}
	return fmt.Sprintf("Valid literals: %s", strings.Join(literals, ", "))
}

// SuggestRename suggests renaming a duplicate declaration.
func SuggestRename(name string) string {
	return fmt.Sprintf("Rename or remove one of the '%s' declarations", name)
}

func closest(unknown string, known []string) string {
	if len(known) == 0 {
		return ""
	}
	candidates := append([]string(nil), known...)
	sort.Strings(candidates)

	bestDist := maxSuggestDistance + 1
	var best string
	for _, name := range candidates {
		if name == unknown {
			continue
		}
		dist := levenshtein.Distance(strings.ToUpper(unknown), strings.ToUpper(name), nil)
		if dist < bestDist {
			bestDist = dist
			best = name
		}
	}
	return best
}
