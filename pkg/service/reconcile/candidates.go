package reconcile

import (
	"strings"

	"github.com/shamay-ai/mekorot/pkg/domain/model"
)

// Aliases under which extraction producers have historically filed top-level
// fields, even though the UI surfaces those fields unnested
var topLevelAliases = []string{"land_registry", "tabu"}

// toSnakeCase inserts an underscore before each internal capital letter and
// lowercases the whole string: "registrationOffice" -> "registration_office".
// Dots are preserved, so nested paths convert per segment.
func toSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// resolveCandidates returns the ordered list of index keys to try for a
// field path. Producers and the UI evolved independent naming conventions;
// resolving by best-effort variants avoids silently dropping legitimate
// provenance. The first candidate with a non-empty bucket wins.
func resolveCandidates(path string, nested bool) []string {
	snake := toSnakeCase(path)

	candidates := []string{
		path,
		snake,
		strings.ToLower(path),
		strings.ToUpper(path),
	}

	if nested {
		// The producer may have flattened the structure, or joined it
		// with an underscore instead of a dot
		if idx := strings.LastIndex(path, "."); idx >= 0 {
			structure, key := path[:idx], path[idx+1:]
			candidates = append(candidates, key, structure+"_"+key)
		}
	}

	return dedupeStrings(candidates)
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Resolve returns the candidate record set for a field path, walking the
// fallback chain of naming variants.
//
// Top-level fields additionally union in records filed under the
// "land_registry." and "tabu." aliases. For nested fields the snake_case
// form of the full path is authoritative: when its bucket is non-empty it
// overrides whatever the fallback chain found.
func (idx Index) Resolve(path string, nested bool) []*model.ProvenanceRecord {
	var matched []*model.ProvenanceRecord
	for _, candidate := range resolveCandidates(path, nested) {
		if records := idx.Lookup(candidate); len(records) > 0 {
			matched = records
			break
		}
	}

	if nested {
		if records := idx.Lookup(toSnakeCase(path)); len(records) > 0 {
			matched = records
		}
		return matched
	}

	for _, alias := range topLevelAliases {
		matched = append(matched, idx.Lookup(alias+"."+path)...)
	}
	return matched
}
