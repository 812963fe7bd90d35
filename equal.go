// SPDX-License-Identifier: Apache-2.0

package cbor

import "bytes"

// Equal reports whether v and other represent the same CBOR value,
// comparing by semantic content rather than by internal representation (an
// Integer built with Int and one built with BigInt compare equal if they
// hold the same number) and treating Map entries as an unordered set of
// pairs, since decoding "preserves no particular order" (spec.md §4.2).
// Grounded on the Type.Equal-style semantic comparators throughout
// _examples/chaisql-chai/internal/types, needed here because Value holds
// unexported slice fields that make it unsuitable for reflect.DeepEqual or
// testify's default ObjectsAreEqual.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.AsBigInt().Cmp(other.AsBigInt()) == 0
	case KindFloat:
		vc, vf := v.AsFloatClass()
		oc, of := other.AsFloatClass()
		if vc != oc {
			return false
		}
		return vc != FloatFinite || vf == of
	case KindBoolean:
		return v.AsBool() == other.AsBool()
	case KindNull, KindUndefined:
		return true
	case KindByteString:
		return bytes.Equal(v.AsBytes(), other.AsBytes())
	case KindTextString:
		return v.AsText() == other.AsText()
	case KindArray:
		a, b := v.AsArray(), other.AsArray()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return mapEntriesEqual(v.AsMapEntries(), other.AsMapEntries())
	case KindSimpleValue:
		return v.AsSimpleValue() == other.AsSimpleValue()
	case KindTagged:
		a, b := v.AsTag(), other.AsTag()
		return a.Number == b.Number && a.Inner.Equal(b.Inner)
	case KindDatetime:
		return v.AsDatetime().t.Equal(other.AsDatetime().t)
	case KindTimestamp:
		a, b := v.AsTimestamp(), other.AsTimestamp()
		return a.Seconds == b.Seconds && a.Nanoseconds == b.Nanoseconds
	default:
		return false
	}
}

func mapEntriesEqual(a, b []MapEntry) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ae := range a {
		matched := false
		for j, be := range b {
			if used[j] {
				continue
			}
			if ae.Key.Equal(be.Key) && ae.Value.Equal(be.Value) {
				used[j] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
