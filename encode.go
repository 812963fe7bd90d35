// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"encoding/hex"
	"io"
	"math/big"

	"github.com/cockroachdb/errors"
)

// Encoder writes Values to an underlying io.Writer as CBOR, mirroring the
// teacher's Encoder/NewEncoder/write shape in cbor.go. Unlike the teacher,
// there is no MapKeySort field: spec.md §4.1 fixes the sort to bytewise
// lexicographic order on encoded key bytes, so there is nothing to
// override.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new Encoder. The io.Writer is not copied.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Marshal encodes v to a freshly allocated byte slice.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalHex encodes v and hex-encodes the result (spec.md §6 encode_hex).
func MarshalHex(v Value) (string, error) {
	b, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Encode writes v's CBOR encoding, dispatching on v.Kind() the way the
// teacher's Encode dispatches on reflect.Kind() in cbor.go.
func (e *Encoder) Encode(v Value) error {
	switch v.Kind() {
	case KindInteger:
		return e.encodeInteger(v)
	case KindFloat:
		class, f := v.AsFloatClass()
		return writeFloat(e.w, class, f)
	case KindBoolean:
		return e.encodeBool(v.AsBool())
	case KindNull:
		return e.writeSimple(simpleNull)
	case KindUndefined:
		return e.writeSimple(simpleUndefined)
	case KindByteString:
		return e.encodeByteString(v.AsBytes())
	case KindTextString:
		return e.encodeTextString(v.AsText())
	case KindArray:
		return e.encodeArray(v.AsArray())
	case KindMap:
		return e.encodeMap(v.AsMapEntries())
	case KindSimpleValue:
		return e.encodeSimpleValue(v.AsSimpleValue())
	case KindTagged:
		return e.encodeTagged(v.AsTag())
	case KindDatetime:
		return e.encodeDatetime(v.AsDatetime())
	case KindTimestamp:
		return e.encodeTimestamp(v.AsTimestamp())
	default:
		return markf(ErrUnencodableValue, "unencodable value kind %d", v.Kind())
	}
}

func (e *Encoder) encodeInteger(v Value) error {
	n := v.AsBigInt()
	if fitsNativeRange(n) {
		return e.encodeNativeBigInt(n)
	}
	return e.encodeBignumTag(n)
}

func (e *Encoder) encodeNativeBigInt(n *big.Int) error {
	if n.Sign() >= 0 {
		return writeHeader(e.w, majorUnsignedInt, n.Uint64())
	}
	mag := new(big.Int).Neg(n)
	mag.Sub(mag, big.NewInt(1))
	return writeHeader(e.w, majorNegativeInt, mag.Uint64())
}

func (e *Encoder) encodeBignumTag(n *big.Int) error {
	tagNumber := uint64(tagPositiveBignum)
	if n.Sign() < 0 {
		tagNumber = tagNegativeBignum
	}
	magnitude := bignumMagnitudeBytes(n)
	if err := writeHeader(e.w, majorTag, tagNumber); err != nil {
		return err
	}
	return e.encodeByteString(magnitude)
}

func (e *Encoder) encodeBool(b bool) error {
	if b {
		return e.writeSimple(simpleTrue)
	}
	return e.writeSimple(simpleFalse)
}

func (e *Encoder) writeSimple(code byte) error {
	_, err := e.w.Write([]byte{(majorSimple << 5) | code})
	return err
}

func (e *Encoder) encodeByteString(b []byte) error {
	if err := writeHeader(e.w, majorByteString, uint64(len(b))); err != nil {
		return err
	}
	_, err := e.w.Write(b)
	return err
}

func (e *Encoder) encodeTextString(s string) error {
	if err := writeHeader(e.w, majorTextString, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *Encoder) encodeArray(elems []Value) error {
	if err := writeHeader(e.w, majorArray, uint64(len(elems))); err != nil {
		return err
	}
	for i, el := range elems {
		if err := e.Encode(el); err != nil {
			return errors.Wrapf(err, "error encoding array item %d", i)
		}
	}
	return nil
}

// encodeMap implements the deterministic ordering in spec.md §4.1: each
// key and value is fully encoded first, pairs are sorted by encoded key
// bytes, and equal key bytes are rejected. Ported from the teacher's
// encodeMap in cbor.go, which performed the same key-bytes-first-then-sort
// dance over reflect.Value map keys.
func (e *Encoder) encodeMap(entries []MapEntry) error {
	encoded := make([]encodedEntry, len(entries))
	for i, ent := range entries {
		var kb, vb bytes.Buffer
		if err := NewEncoder(&kb).Encode(ent.Key); err != nil {
			return errors.Wrapf(err, "error encoding map key %d", i)
		}
		if err := NewEncoder(&vb).Encode(ent.Value); err != nil {
			return errors.Wrapf(err, "error encoding map value %d", i)
		}
		encoded[i] = encodedEntry{keyBytes: kb.Bytes(), valueBytes: vb.Bytes()}
	}

	sortEntriesByKeyBytes(encoded)

	for i := 1; i < len(encoded); i++ {
		if equalKeyBytes(encoded[i-1].keyBytes, encoded[i].keyBytes) {
			return markf(ErrDuplicateMapKey, "duplicate map key: % x", encoded[i].keyBytes)
		}
	}

	if err := writeHeader(e.w, majorMap, uint64(len(encoded))); err != nil {
		return err
	}
	for _, ent := range encoded {
		if _, err := e.w.Write(ent.keyBytes); err != nil {
			return err
		}
		if _, err := e.w.Write(ent.valueBytes); err != nil {
			return err
		}
	}
	return nil
}

// encodeSimpleValue rejects the codes reserved for bool/null/undefined and
// for floats (spec.md §3); everything else uses the teacher's additional-
// info-24-extension pattern (single byte for n<=23, extension byte
// otherwise) adapted from additionalInfo in the teacher's cbor.go.
func (e *Encoder) encodeSimpleValue(n byte) error {
	switch n {
	case simpleFalse, simpleTrue, simpleNull, simpleUndefined, simpleHalfFloat, simpleSingleFloat, simpleDoubleFloat:
		return markf(ErrUnencodableValue, "simple value %d is reserved", n)
	}
	if n <= 23 {
		_, err := e.w.Write([]byte{(majorSimple << 5) | n})
		return err
	}
	_, err := e.w.Write([]byte{(majorSimple << 5) | simpleByteWidth, n})
	return err
}

// encodeTagged implements the general (tag, inner) envelope (spec.md
// §4.1). The Number field is a uint64, so it is always within [0,
// 2^64-1]; ErrUnencodableTag exists in the taxonomy for API completeness
// but is structurally unreachable through this constructor.
func (e *Encoder) encodeTagged(t Tag) error {
	if err := writeHeader(e.w, majorTag, t.Number); err != nil {
		return err
	}
	return e.Encode(t.Inner)
}

func (e *Encoder) encodeDatetime(d Datetime) error {
	return e.encodeTagged(Tag{Number: tagDatetimeString, Inner: Text(d.rfc3339())})
}

func (e *Encoder) encodeTimestamp(ts Timestamp) error {
	var inner Value
	if ts.Nanoseconds == 0 {
		inner = Int(ts.Seconds)
	} else {
		inner = Float(float64(ts.Seconds) + float64(ts.Nanoseconds)*1e-9)
	}
	return e.encodeTagged(Tag{Number: tagEpochTimestamp, Inner: inner})
}
