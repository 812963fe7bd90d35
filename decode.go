// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"encoding/hex"
	"io"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// DecodeOptions configures a decode call (spec.md §6 "Options record").
// Like the teacher's Encoder.MapKeySort, this is a plain struct with public
// fields set directly rather than a functional-options chain.
type DecodeOptions struct {
	// MaxDepth bounds recursive descent; exceeding it fails with
	// ErrMaxDepthReached. Depth starts at 0 for the top-level item.
	MaxDepth int

	// TagInterpreters replaces the default registry wholesale. Callers who
	// want to add to the defaults should merge DefaultTagInterpreters()
	// themselves (spec.md §6).
	TagInterpreters map[uint64]Interpreter
}

// DefaultMaxDepth is the default recursion bound (spec.md §4.2).
const DefaultMaxDepth = 1024

// DefaultOptions returns the default DecodeOptions: MaxDepth 1024 and the
// default tag-interpreter registry.
func DefaultOptions() DecodeOptions {
	return DecodeOptions{MaxDepth: DefaultMaxDepth, TagInterpreters: DefaultTagInterpreters()}
}

// Decoder reads one CBOR item at a time from an underlying byte source,
// mirroring the teacher's Decoder/NewDecoder shape in cbor.go. Unlike the
// teacher's Decoder, this one tracks a single pending (peeked) byte itself
// instead of relying on a buffered reader, so the "remaining bytes" a
// top-level Decode call reports is exact even across a peek for an
// indefinite-length container's break marker.
type Decoder struct {
	r       io.Reader
	pending *byte
	opts    DecodeOptions
}

// NewDecoder returns a new Decoder reading from r with opts.
func NewDecoder(r io.Reader, opts DecodeOptions) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Read implements io.Reader, draining a pending peeked byte first. This
// lets every lower-level read (readHeader, raw payload reads) go through
// the Decoder uniformly, peek included.
func (d *Decoder) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if d.pending != nil {
		p[0] = *d.pending
		d.pending = nil
		if len(p) == 1 {
			return 1, nil
		}
		n, err := d.r.Read(p[1:])
		return n + 1, err
	}
	return d.r.Read(p)
}

func (d *Decoder) peekByte() (byte, error) {
	if d.pending != nil {
		return *d.pending, nil
	}
	var b [1]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		if err == io.EOF {
			return 0, ErrNoInput
		}
		return 0, err
	}
	d.pending = &b[0]
	return b[0], nil
}

// discardPeeked consumes the byte returned by the most recent peekByte
// without it being read again.
func (d *Decoder) discardPeeked() { d.pending = nil }

// Decode reads exactly one top-level CBOR item from the head of data and
// returns it along with the unconsumed remainder (spec.md §6). A missing
// opts argument uses DefaultOptions.
func Decode(data []byte, opts ...DecodeOptions) (Value, []byte, error) {
	o := DefaultOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	return decodeAtDepth(data, o, 0)
}

// DecodeHex hex-decodes text and then decodes it, re-hex-encoding the
// remainder for the caller (spec.md §6).
func DecodeHex(text string, opts ...DecodeOptions) (Value, string, error) {
	data, err := hex.DecodeString(text)
	if err != nil {
		return Value{}, "", errors.Wrapf(err, "cbor: invalid hex input")
	}
	v, rest, err := Decode(data, opts...)
	if err != nil {
		return Value{}, "", err
	}
	return v, hex.EncodeToString(rest), nil
}

// decodeAtDepth is the shared entry point behind both Decode and the tag-24
// embedded-CBOR interpreter, which must decode at the depth it was invoked
// at rather than restarting from 0 (spec.md §4.3, §9).
func decodeAtDepth(data []byte, opts DecodeOptions, depth int) (Value, []byte, error) {
	r := bytes.NewReader(data)
	d := NewDecoder(r, opts)
	v, err := d.decodeValue(depth)
	if err != nil {
		return Value{}, nil, err
	}
	rest := data[len(data)-r.Len():]
	return v, rest, nil
}

// isGenericTruncation reports whether err represents running out of input
// where another item's header was expected, as opposed to a more specific
// failure (a malformed item, a bad tag shape, a truncated integer/float
// whose own kind is already named). Only this generic case gets remapped
// to a container's own truncation kind (spec.md §4.2 "Error precedence");
// every other error bubbles unchanged, per spec.md §7 "Propagation".
func isGenericTruncation(err error) bool {
	return errors.Is(err, ErrNoInput) || errors.Is(err, ErrTruncatedSequence)
}

func invalidTypeTag(b byte) error {
	return markf(ErrInvalidTypeTag, "invalid initial byte 0x%02x", b)
}

// decodeValue dispatches on the initial byte's major type, the core loop
// ported from the teacher's decodeVal in cbor.go — generalized to build a
// Value instead of populating a reflect.Value, and to thread and bound a
// depth counter the teacher's decoder never tracked at all.
func (d *Decoder) decodeValue(depth int) (Value, error) {
	if depth > d.opts.MaxDepth {
		return Value{}, ErrMaxDepthReached
	}

	h, err := readHeader(d)
	if err != nil {
		return Value{}, err
	}
	first := (h.major << 5) | h.lowBits

	switch h.major {
	case majorUnsignedInt:
		if h.lowBits > additionalEightBytes {
			return Value{}, invalidTypeTag(first)
		}
		return UInt(h.value), nil

	case majorNegativeInt:
		if h.lowBits > additionalEightBytes {
			return Value{}, invalidTypeTag(first)
		}
		return negativeIntValue(h.value), nil

	case majorByteString:
		return d.decodeByteOrTextString(h, first, false)

	case majorTextString:
		return d.decodeByteOrTextString(h, first, true)

	case majorArray:
		return d.decodeArray(h, first, depth)

	case majorMap:
		return d.decodeMap(h, first, depth)

	case majorTag:
		if h.lowBits > additionalEightBytes {
			return Value{}, invalidTypeTag(first)
		}
		return d.decodeTagged(h.value, depth)

	case majorSimple:
		return d.decodeSimple(h, first)

	default:
		return Value{}, invalidTypeTag(first)
	}
}

func negativeIntValue(value uint64) Value {
	if value <= math.MaxInt64-1 {
		return Int(-(int64(value) + 1))
	}
	n := new(big.Int).SetUint64(value)
	n.Add(n, big.NewInt(1))
	n.Neg(n)
	return BigInt(n)
}

func (d *Decoder) decodeByteOrTextString(h header, first byte, isText bool) (Value, error) {
	truncatedErr := ErrTruncatedByteString
	if isText {
		truncatedErr = ErrTruncatedUtf8String
	}

	if h.lowBits == additionalIndefinite {
		return d.decodeIndefiniteString(isText, truncatedErr)
	}
	if h.lowBits > additionalEightBytes {
		return Value{}, invalidTypeTag(first)
	}
	if h.value > MaxArrayDecodeLength {
		return Value{}, markf(truncatedErr, "declared length %d exceeds max", h.value)
	}

	buf := make([]byte, h.value)
	if _, err := io.ReadFull(d, buf); err != nil {
		return Value{}, markf(truncatedErr, "%v", err)
	}
	return stringValue(isText, buf)
}

// decodeIndefiniteString implements the RFC 8949 chunked semantics for an
// indefinite-length byte/text string: a sequence of definite-length chunks
// of the same major type, terminated by the 0xFF break byte. This departs
// from the teacher's package (which has no indefinite-length support at
// all) and resolves spec.md §9 Open Question 1 in favor of the corrected
// RFC behavior rather than the forward-scan-for-0xFF reference behavior.
func (d *Decoder) decodeIndefiniteString(isText bool, truncatedErr error) (Value, error) {
	expectedMajor := majorByteString
	if isText {
		expectedMajor = majorTextString
	}

	var data []byte
	for {
		peek, err := d.peekByte()
		if err != nil {
			return Value{}, markf(truncatedErr, "unterminated indefinite-length string: %v", err)
		}
		if peek == 0xFF {
			d.discardPeeked()
			break
		}
		if peek>>5 != expectedMajor {
			return Value{}, markf(ErrInvalidTypeTag, "indefinite-length string chunk has wrong major type 0x%02x", peek)
		}

		h, err := readHeader(d)
		if err != nil {
			return Value{}, err
		}
		if h.lowBits == additionalIndefinite {
			return Value{}, markf(ErrInvalidTypeTag, "nested indefinite-length chunk is not permitted")
		}
		if h.lowBits > additionalEightBytes {
			return Value{}, invalidTypeTag((h.major << 5) | h.lowBits)
		}
		if h.value > MaxArrayDecodeLength {
			return Value{}, markf(truncatedErr, "chunk length %d exceeds max", h.value)
		}

		chunk := make([]byte, h.value)
		if _, err := io.ReadFull(d, chunk); err != nil {
			return Value{}, markf(truncatedErr, "%v", err)
		}
		data = append(data, chunk...)
	}

	return stringValue(isText, data)
}

func stringValue(isText bool, buf []byte) (Value, error) {
	if !isText {
		return Bytes(buf), nil
	}
	if !utf8.Valid(buf) {
		return Value{}, markf(ErrInvalidUtf8String, "invalid UTF-8: % x", buf)
	}
	return Text(string(buf)), nil
}

func (d *Decoder) decodeArray(h header, first byte, depth int) (Value, error) {
	if h.lowBits == additionalIndefinite {
		var elems []Value
		for {
			peek, err := d.peekByte()
			if err != nil {
				return Value{}, markf(ErrTruncatedArray, "unterminated indefinite-length array: %v", err)
			}
			if peek == 0xFF {
				d.discardPeeked()
				break
			}
			v, err := d.decodeValue(depth + 1)
			if err != nil {
				if isGenericTruncation(err) {
					return Value{}, markf(ErrTruncatedArray, "%v", err)
				}
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return Array(elems), nil
	}

	if h.lowBits > additionalEightBytes {
		return Value{}, invalidTypeTag(first)
	}
	if h.value > MaxArrayDecodeLength {
		return Value{}, markf(ErrTruncatedArray, "declared length %d exceeds max", h.value)
	}

	elems := make([]Value, 0, h.value)
	for i := uint64(0); i < h.value; i++ {
		v, err := d.decodeValue(depth + 1)
		if err != nil {
			if isGenericTruncation(err) {
				return Value{}, markf(ErrTruncatedArray, "item %d: %v", i, err)
			}
			return Value{}, err
		}
		elems = append(elems, v)
	}
	return Array(elems), nil
}

func (d *Decoder) decodeMap(h header, first byte, depth int) (Value, error) {
	var flat []Value

	if h.lowBits == additionalIndefinite {
		for {
			peek, err := d.peekByte()
			if err != nil {
				return Value{}, markf(ErrTruncatedMap, "unterminated indefinite-length map: %v", err)
			}
			if peek == 0xFF {
				d.discardPeeked()
				break
			}
			v, err := d.decodeValue(depth + 1)
			if err != nil {
				if isGenericTruncation(err) {
					return Value{}, markf(ErrTruncatedMap, "%v", err)
				}
				return Value{}, err
			}
			flat = append(flat, v)
		}
	} else {
		if h.lowBits > additionalEightBytes {
			return Value{}, invalidTypeTag(first)
		}
		if h.value > MaxArrayDecodeLength/2 {
			return Value{}, markf(ErrTruncatedMap, "declared pair count %d exceeds max", h.value)
		}
		flat = make([]Value, 0, h.value*2)
		for i := uint64(0); i < h.value; i++ {
			k, err := d.decodeValue(depth + 1)
			if err != nil {
				if isGenericTruncation(err) {
					return Value{}, markf(ErrTruncatedMap, "key %d: %v", i, err)
				}
				return Value{}, err
			}
			v, err := d.decodeValue(depth + 1)
			if err != nil {
				if isGenericTruncation(err) {
					return Value{}, markf(ErrTruncatedMap, "value %d: %v", i, err)
				}
				return Value{}, err
			}
			flat = append(flat, k, v)
		}
	}

	if len(flat)%2 != 0 {
		return Value{}, ErrOddNumberOfMapValues
	}
	entries, err := buildMapEntries(flat)
	if err != nil {
		return Value{}, err
	}
	return Map(entries), nil
}

// buildMapEntries consumes a flat [k0, v0, k1, v1, ...] sequence into
// MapEntry pairs, the last occurrence winning on a repeated key (spec.md
// §4.2 "Map construction", §9 Open Question 2). Value isn't itself
// comparable (it can hold slices), so — unlike the teacher's decodeMap,
// which relies on native Go map key comparability via reflect — dedup here
// keys on each key's own encoded bytes.
func buildMapEntries(flat []Value) ([]MapEntry, error) {
	entries := make([]MapEntry, 0, len(flat)/2)
	seen := make(map[string]int, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		k, v := flat[i], flat[i+1]
		kb, err := Marshal(k)
		if err != nil {
			return nil, err
		}
		key := string(kb)
		if idx, ok := seen[key]; ok {
			entries[idx].Value = v
			continue
		}
		seen[key] = len(entries)
		entries = append(entries, MapEntry{Key: k, Value: v})
	}
	return entries, nil
}

func (d *Decoder) decodeTagged(tagNumber uint64, depth int) (Value, error) {
	inner, err := d.decodeValue(depth + 1)
	if err != nil {
		if isGenericTruncation(err) {
			return Value{}, markf(ErrTruncatedTaggedValue, "tag %d: %v", tagNumber, err)
		}
		return Value{}, err
	}

	if interp, ok := d.opts.TagInterpreters[tagNumber]; ok {
		return interp(tagNumber, inner, d.opts, depth+1)
	}
	return Tagged(tagNumber, inner), nil
}

func (d *Decoder) decodeSimple(h header, first byte) (Value, error) {
	switch h.lowBits {
	case simpleFalse:
		return Bool(false), nil
	case simpleTrue:
		return Bool(true), nil
	case simpleNull:
		return Null(), nil
	case simpleUndefined:
		return Undefined(), nil
	case simpleByteWidth:
		return SimpleValue(byte(h.value)), nil
	case simpleHalfFloat:
		class, f := decodeHalfFloatBits(uint16(h.value))
		return floatValue(class, f), nil
	case simpleSingleFloat:
		class, f := decodeSingleFloatBits(uint32(h.value))
		return floatValue(class, f), nil
	case simpleDoubleFloat:
		class, f := decodeDoubleFloatBits(h.value)
		return floatValue(class, f), nil
	default:
		if h.lowBits <= 19 {
			return SimpleValue(h.lowBits), nil
		}
		return Value{}, invalidTypeTag(first)
	}
}

func floatValue(class FloatClass, f float64) Value {
	switch class {
	case FloatPositiveInfinity:
		return PositiveInfinity()
	case FloatNegativeInfinity:
		return NegativeInfinity()
	case FloatNaN:
		return NaN()
	default:
		return Float(f)
	}
}
