package browser

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two entries; it reports a negative value when a sorts
// before b, zero when equal, and a positive value otherwise.
type Comparator func(a, b Entry) int

// ByName is the canonical listing order: directories before non-directories,
// then case-insensitive lexicographic by name. Distinct names that share a
// lowercase form are tie-broken by their original spelling so the order
// stays deterministic.
func ByName(a, b Entry) int {
	if c := compareKinds(a, b); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// Collated returns a locale-aware comparator: directories still sort first,
// but names are ordered by the collation rules of the given language.
func Collated(tag language.Tag) Comparator {
	collator := collate.New(tag, collate.IgnoreCase)
	return func(a, b Entry) int {
		if c := compareKinds(a, b); c != 0 {
			return c
		}
		if c := collator.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	}
}

func compareKinds(a, b Entry) int {
	aDir := a.Kind == KindDirectory
	bDir := b.Kind == KindDirectory
	switch {
	case aDir && !bDir:
		return -1
	case !aDir && bDir:
		return 1
	default:
		return 0
	}
}
