package converter

import (
	"path/filepath"
	"strings"
)

// Rules holds the user-supplied exclusion lists in normalized form:
// extensions lowercased with dots stripped, name fragments lowercased.
type Rules struct {
	exts  map[string]struct{}
	names []string
}

// NewRules normalizes raw flag values into a Rules set. Entries are trimmed
// and lowercased, extension entries may carry a leading dot, empty entries
// are dropped.
func NewRules(extensions, names []string) Rules {
	rules := Rules{exts: make(map[string]struct{})}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			continue
		}
		rules.exts[ext] = struct{}{}
	}
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		rules.names = append(rules.names, name)
	}
	return rules
}

// Excluded reports whether a base filename is rejected by the rules.
// Extension matching ignores case; name matching is an unanchored substring
// test against the lowercased filename.
func (r Rules) Excluded(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if _, ok := r.exts[ext]; ok {
		return true
	}
	lower := strings.ToLower(filename)
	for _, fragment := range r.names {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
