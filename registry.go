// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"encoding/base64"
	"math"
	"math/big"

	"github.com/cockroachdb/errors"
)

var errUnexpectedBase64Shape = errors.New("cbor: base64 tag inner value is not a text string")

// Interpreter transforms a decoded (tag, inner) pair into a semantic Value
// (spec.md §4.3). It receives the options the decode call was started with
// and the depth of the tag's inner value (one more than the depth the tag
// itself was found at), so an interpreter that itself
// recurses into CBOR bytes (tag 24) can thread both through correctly.
type Interpreter func(tag uint64, inner Value, opts DecodeOptions, depth int) (Value, error)

// DefaultTagInterpreters returns the registry spec.md §4.3 describes,
// cross-checked against the tag numbers other_examples/synadia-labs-cbor-go
// defines and the tag-24/tag-0/tag-1 handling in
// _examples/fido-device-onboard-go-fdo/cbor/conventions.go, which the
// teacher otherwise leaves to caller-provided Marshaler/Unmarshaler types
// rather than a pluggable decode-time registry.
func DefaultTagInterpreters() map[uint64]Interpreter {
	return map[uint64]Interpreter{
		tagDatetimeString:    interpretTextPassthrough,
		tagEpochTimestamp:    interpretEpochTimestamp,
		tagPositiveBignum:    interpretBignum,
		tagNegativeBignum:    interpretBignum,
		tagEmbeddedCBOR:      interpretEmbeddedCBOR,
		tagURI:               interpretTextPassthrough,
		tagBase64URLString:   interpretBase64URL,
		tagBase64String:      interpretBase64Standard,
		tagRegexp:            interpretTextPassthrough,
		tagMIMEMessage:       interpretTextPassthrough,
		tagSelfDescribedCBOR: interpretIdentity,
	}
}

func invalidTagShape(tag uint64) error {
	return markf(ErrInvalidTaggedValue, "tag %d: inner value has an unexpected shape", tag)
}

// interpretTextPassthrough backs tags 0, 32, 35, 36: each wraps a text
// string whose value is returned unchanged (spec.md §4.3).
func interpretTextPassthrough(tag uint64, inner Value, _ DecodeOptions, _ int) (Value, error) {
	if !inner.IsTextString() {
		return Value{}, invalidTagShape(tag)
	}
	return inner, nil
}

// interpretIdentity backs tag 55799 (self-described CBOR), which carries no
// information beyond flagging the stream as CBOR.
func interpretIdentity(_ uint64, inner Value, _ DecodeOptions, _ int) (Value, error) {
	return inner, nil
}

// interpretEpochTimestamp backs tag 1: an integer or float number of
// seconds since the Unix epoch, returned as an Integer count of nanoseconds
// since the epoch (spec.md §4.3). A float inner value measures seconds with
// fractional precision, so the conversion to nanoseconds necessarily rounds.
func interpretEpochTimestamp(tag uint64, inner Value, _ DecodeOptions, _ int) (Value, error) {
	switch inner.Kind() {
	case KindInteger:
		seconds := inner.AsBigInt()
		ns := new(big.Int).Mul(seconds, big.NewInt(1_000_000_000))
		return BigInt(ns), nil
	case KindFloat:
		class, f := inner.AsFloatClass()
		if class != FloatFinite {
			return Value{}, invalidTagShape(tag)
		}
		return Int(int64(math.Round(f * 1e9))), nil
	default:
		return Value{}, invalidTagShape(tag)
	}
}

// interpretBignum backs tags 2 and 3: a byte string holding the big-endian
// unsigned magnitude of a positive (tag 2) or negative (tag 3) integer,
// reusing bignumFromMagnitude from the encoder's own bignum.go.
func interpretBignum(tag uint64, inner Value, _ DecodeOptions, _ int) (Value, error) {
	if !inner.IsByteString() {
		return Value{}, invalidTagShape(tag)
	}
	return BigInt(bignumFromMagnitude(tag, inner.AsBytes())), nil
}

// interpretEmbeddedCBOR backs tag 24: a byte string holding another
// complete, self-contained CBOR item. It recursively decodes that byte
// string at the depth it was invoked at — per spec.md §4.3's explicit "at
// the same depth" instruction, rather than incrementing again on top of
// the +1 the tag's own inner byte string already cost (spec.md §9, see
// DESIGN.md) — and requires the embedded item to consume every byte.
func interpretEmbeddedCBOR(tag uint64, inner Value, opts DecodeOptions, depth int) (Value, error) {
	if !inner.IsByteString() {
		return Value{}, invalidTagShape(tag)
	}
	v, rest, err := decodeAtDepth(inner.AsBytes(), opts, depth)
	if err != nil {
		return Value{}, markf(ErrInvalidCborData, "tag %d: %v", tag, err)
	}
	if len(rest) != 0 {
		return Value{}, markf(ErrInvalidTrailingData, "tag %d: %d byte(s) left over after embedded item", tag, len(rest))
	}
	return v, nil
}

// interpretBase64URL backs tag 33: a text string holding base64url-encoded
// data, tolerating both padded and unpadded input the way most producers in
// the wild emit it.
func interpretBase64URL(tag uint64, inner Value, _ DecodeOptions, _ int) (Value, error) {
	data, err := decodeBase64Either(base64.URLEncoding, base64.RawURLEncoding, inner)
	if err != nil {
		return Value{}, markf(ErrInvalidBase64UrlData, "tag %d: %v", tag, err)
	}
	return Bytes(data), nil
}

// interpretBase64Standard backs tag 34: a text string holding standard
// base64-encoded data.
func interpretBase64Standard(tag uint64, inner Value, _ DecodeOptions, _ int) (Value, error) {
	data, err := decodeBase64Either(base64.StdEncoding, base64.RawStdEncoding, inner)
	if err != nil {
		return Value{}, markf(ErrInvalidBase64Data, "tag %d: %v", tag, err)
	}
	return Bytes(data), nil
}

func decodeBase64Either(padded, unpadded *base64.Encoding, inner Value) ([]byte, error) {
	if !inner.IsTextString() {
		return nil, errUnexpectedBase64Shape
	}
	s := inner.AsText()
	data, err := padded.DecodeString(s)
	if err == nil {
		return data, nil
	}
	return unpadded.DecodeString(s)
}
