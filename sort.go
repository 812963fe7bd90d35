// SPDX-License-Identifier: Apache-2.0

package cbor

import "sort"

// encodedEntry pairs a Map entry with its already-encoded key/value bytes,
// the unit the deterministic sort in spec.md §4.1 operates over.
type encodedEntry struct {
	keyBytes   []byte
	valueBytes []byte
}

// sortEntriesByKeyBytes orders entries by unsigned lexicographic comparison
// of their encoded key bytes (spec.md §4.1 "Map — deterministic key
// ordering"), ported from the teacher's encodeMap + BytewiseLexicalSort in
// cbor.go. The teacher sorted indices into a slice of reflect.Value map
// keys; this sorts encodedEntry values directly since the Value model has
// no reflect.Value map to index into.
func sortEntriesByKeyBytes(entries []encodedEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return lessKeyBytes(entries[i].keyBytes, entries[j].keyBytes)
	})
}

// lessKeyBytes implements unsigned lexicographic order where a byte
// sequence that is a strict prefix of another compares less (spec.md §4.1).
func lessKeyBytes(a, b []byte) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// equalKeyBytes reports whether a and b are the same encoded key, which the
// encoder rejects with ErrDuplicateMapKey (spec.md §4.1 "Tie-breaking
// between equal K_i must not occur").
func equalKeyBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
