package util

import (
	"sort"
	"strings"
)

// SortedKeys returns the keys of m in ascending order: a stable snapshot the
// caller can iterate or return while m keeps changing.
func SortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// WithPrefix returns the keys of m that start with prefix (match at position
// 0, case-sensitive). Snapshotting the matches first keeps prefix scans from
// deleting out of a mapping they are still iterating.
func WithPrefix(m map[string]any, prefix string) []string {
	var out []string
	for k := range m {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}
