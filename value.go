// SPDX-License-Identifier: Apache-2.0

package cbor

import "math/big"

// Kind identifies which variant of the CBOR value model a Value holds.
type Kind uint8

// The closed set of Value variants. See the package doc for the shape each
// Kind carries.
const (
	KindInteger Kind = iota
	KindFloat
	KindBoolean
	KindNull
	KindUndefined
	KindByteString
	KindTextString
	KindArray
	KindMap
	KindSimpleValue
	KindTagged
	KindDatetime
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindByteString:
		return "byte string"
	case KindTextString:
		return "text string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindSimpleValue:
		return "simple value"
	case KindTagged:
		return "tagged"
	case KindDatetime:
		return "datetime"
	case KindTimestamp:
		return "timestamp"
	default:
		return "invalid"
	}
}

// FloatClass distinguishes the finite-double case of a Float from the three
// distinguished specials, which the encoder always writes at half precision
// and the decoder accepts at any of the three widths.
type FloatClass uint8

const (
	FloatFinite FloatClass = iota
	FloatPositiveInfinity
	FloatNegativeInfinity
	FloatNaN
)

// MapEntry is one key/value pair of a Map, in caller-supplied order.
// Encoding reorders entries by their encoded key bytes (spec.md §4.1);
// decoding preserves no particular order.
type MapEntry struct {
	Key   Value
	Value Value
}

// Tag pairs a CBOR tag number with the inner value it wraps. It is the
// payload of both KindTagged (decoder fallback / caller input) and the
// input to a registered Interpreter.
type Tag struct {
	Number uint64
	Inner  Value
}

// Value is the sum type exchanged with callers on both the encode and
// decode paths (spec.md §3). The zero Value is KindInteger with Int == 0;
// use the constructor functions below rather than building a Value
// literal, since several Kinds are only valid with particular field
// combinations.
type Value struct {
	kind Kind

	// KindInteger: an arbitrary-precision signed integer. When big is nil
	// the value lives in intI64 or intU64 (intUnsigned says which field is
	// live, since a uint64 in [2^63, 2^64-1] cannot be stored in int64).
	// When big is non-nil it holds the full value and intI64/intU64 are
	// unused. BigInt always sets big, whatever the magnitude; Int and UInt
	// use the native fields.
	intUnsigned bool
	intU64      uint64
	intI64      int64
	big         *big.Int

	// KindFloat
	floatClass FloatClass
	float64    float64

	// KindBoolean
	boolean bool

	// KindByteString / KindTextString
	bytes []byte
	text  string

	// KindArray
	array []Value

	// KindMap
	mapEntries []MapEntry

	// KindSimpleValue: n in 0..=255, excluding the reserved bool/null/
	// undefined codes (20-23) and the float codes (25-27).
	simple byte

	// KindTagged
	tag *Tag

	// KindDatetime
	datetime Datetime

	// KindTimestamp
	timestamp Timestamp
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Int constructs an Integer Value from a native int64.
func Int(n int64) Value { return Value{kind: KindInteger, intI64: n} }

// UInt constructs an Integer Value from a native uint64, including the
// range [2^63, 2^64-1] that does not fit in int64.
func UInt(n uint64) Value { return Value{kind: KindInteger, intUnsigned: true, intU64: n} }

// BigInt constructs an Integer Value from an arbitrary-precision integer.
// Values that fit in [-(2^64), 2^64-1] encode using native major types 0/1;
// values outside that range encode as bignum tags 2/3 (spec.md §4.1).
func BigInt(n *big.Int) Value { return Value{kind: KindInteger, big: new(big.Int).Set(n)} }

// Float constructs a finite-double Float value.
func Float(f float64) Value { return Value{kind: KindFloat, floatClass: FloatFinite, float64: f} }

// PositiveInfinity is the distinguished +∞ Float marker.
func PositiveInfinity() Value { return Value{kind: KindFloat, floatClass: FloatPositiveInfinity} }

// NegativeInfinity is the distinguished -∞ Float marker.
func NegativeInfinity() Value { return Value{kind: KindFloat, floatClass: FloatNegativeInfinity} }

// NaN is the distinguished not-a-number Float marker. Its payload is
// ignored on decode and canonical on encode (spec.md §3).
func NaN() Value { return Value{kind: KindFloat, floatClass: FloatNaN} }

// Bool constructs a Boolean Value.
func Bool(b bool) Value { return Value{kind: KindBoolean, boolean: b} }

// Null constructs the Null Value.
func Null() Value { return Value{kind: KindNull} }

// Undefined constructs the Undefined Value.
func Undefined() Value { return Value{kind: KindUndefined} }

// Bytes constructs a ByteString Value.
func Bytes(b []byte) Value { return Value{kind: KindByteString, bytes: b} }

// Text constructs a TextString Value. The caller is responsible for the
// UTF-8 invariant on the encode path (spec.md §3); the decoder enforces it
// when producing TextString values.
func Text(s string) Value { return Value{kind: KindTextString, text: s} }

// Array constructs an Array Value from an ordered slice of elements.
func Array(elems []Value) Value { return Value{kind: KindArray, array: elems} }

// Map constructs a Map Value from caller-ordered entries. Keys must be
// pairwise distinct under the encoder's key-byte comparison (spec.md §3);
// the encoder reports DuplicateMapKey if two entries encode to the same key
// bytes.
func Map(entries []MapEntry) Value { return Value{kind: KindMap, mapEntries: entries} }

// SimpleValue constructs a generic major-type-7 simple value. n must not be
// one of the reserved codes 20-23 (false/true/null/undefined, use Bool,
// Null, or Undefined instead) or the float codes 25-27 (use Float).
func SimpleValue(n byte) Value { return Value{kind: KindSimpleValue, simple: n} }

// Tagged constructs a Tagged Value: the decoder's fallback representation
// for a tag number with no registered interpreter, and the caller's way to
// supply an arbitrary (tag, inner) pair on the encode path.
func Tagged(number uint64, inner Value) Value {
	return Value{kind: KindTagged, tag: &Tag{Number: number, Inner: inner}}
}

// IsInteger, IsFloat, ... report whether v holds the named Kind. These
// exist for readability at call sites that only need a boolean, mirroring
// the Is*() idiom used throughout chaisql's types.Type.
func (v Value) IsInteger() bool     { return v.kind == KindInteger }
func (v Value) IsFloat() bool       { return v.kind == KindFloat }
func (v Value) IsBoolean() bool     { return v.kind == KindBoolean }
func (v Value) IsNull() bool        { return v.kind == KindNull }
func (v Value) IsUndefined() bool   { return v.kind == KindUndefined }
func (v Value) IsByteString() bool  { return v.kind == KindByteString }
func (v Value) IsTextString() bool  { return v.kind == KindTextString }
func (v Value) IsArray() bool       { return v.kind == KindArray }
func (v Value) IsMap() bool         { return v.kind == KindMap }
func (v Value) IsSimpleValue() bool { return v.kind == KindSimpleValue }
func (v Value) IsTagged() bool      { return v.kind == KindTagged }
func (v Value) IsDatetime() bool    { return v.kind == KindDatetime }
func (v Value) IsTimestamp() bool   { return v.kind == KindTimestamp }

// AsBigInt returns v's integer payload as an arbitrary-precision integer.
// It panics if v is not KindInteger; callers that don't control v's Kind
// should check IsInteger first.
func (v Value) AsBigInt() *big.Int {
	if v.kind != KindInteger {
		panic("cbor: AsBigInt called on a non-Integer Value")
	}
	if v.big != nil {
		return new(big.Int).Set(v.big)
	}
	if v.intUnsigned {
		return new(big.Int).SetUint64(v.intU64)
	}
	return big.NewInt(v.intI64)
}

// AsInt64 returns v's integer payload as an int64 and whether it fit
// without truncation.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	n := v.AsBigInt()
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// AsFloatClass returns v's float class and, for FloatFinite, the value.
// It panics if v is not KindFloat.
func (v Value) AsFloatClass() (FloatClass, float64) {
	if v.kind != KindFloat {
		panic("cbor: AsFloatClass called on a non-Float Value")
	}
	return v.floatClass, v.float64
}

// AsBool returns v's boolean payload. It panics if v is not KindBoolean.
func (v Value) AsBool() bool {
	if v.kind != KindBoolean {
		panic("cbor: AsBool called on a non-Boolean Value")
	}
	return v.boolean
}

// AsBytes returns v's byte-string payload. It panics if v is not
// KindByteString.
func (v Value) AsBytes() []byte {
	if v.kind != KindByteString {
		panic("cbor: AsBytes called on a non-ByteString Value")
	}
	return v.bytes
}

// AsText returns v's text-string payload. It panics if v is not
// KindTextString.
func (v Value) AsText() string {
	if v.kind != KindTextString {
		panic("cbor: AsText called on a non-TextString Value")
	}
	return v.text
}

// AsArray returns v's ordered elements. It panics if v is not KindArray.
func (v Value) AsArray() []Value {
	if v.kind != KindArray {
		panic("cbor: AsArray called on a non-Array Value")
	}
	return v.array
}

// AsMapEntries returns v's entries in the order supplied at construction
// (encode) or decode order (decode). It panics if v is not KindMap.
func (v Value) AsMapEntries() []MapEntry {
	if v.kind != KindMap {
		panic("cbor: AsMapEntries called on a non-Map Value")
	}
	return v.mapEntries
}

// AsSimpleValue returns v's generic simple-value code. It panics if v is
// not KindSimpleValue.
func (v Value) AsSimpleValue() byte {
	if v.kind != KindSimpleValue {
		panic("cbor: AsSimpleValue called on a non-SimpleValue Value")
	}
	return v.simple
}

// AsTag returns v's tag number and inner value. It panics if v is not
// KindTagged.
func (v Value) AsTag() Tag {
	if v.kind != KindTagged {
		panic("cbor: AsTag called on a non-Tagged Value")
	}
	return *v.tag
}

// AsDatetime returns v's calendar-datetime payload. It panics if v is not
// KindDatetime.
func (v Value) AsDatetime() Datetime {
	if v.kind != KindDatetime {
		panic("cbor: AsDatetime called on a non-Datetime Value")
	}
	return v.datetime
}

// AsTimestamp returns v's instant-in-time payload. It panics if v is not
// KindTimestamp.
func (v Value) AsTimestamp() Timestamp {
	if v.kind != KindTimestamp {
		panic("cbor: AsTimestamp called on a non-Timestamp Value")
	}
	return v.timestamp
}
