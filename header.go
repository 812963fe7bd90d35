// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"encoding/binary"
	"io"
)

// writeHeader emits the minimum-width major-type/additional-information
// header for the given major type and length (spec.md §4.1), returning any
// error from w. This generalizes the teacher's additionalInfo
// helper in cbor.go, which built the same byte layout from a pre-trimmed
// big-endian slice; writeHeader instead owns the width selection so every
// caller states the length once as a uint64.
func writeHeader(w io.Writer, major byte, length uint64) error {
	b := (major & highBitsMask) << 5
	switch {
	case length <= 23:
		_, err := w.Write([]byte{b | byte(length)})
		return err
	case length <= 0xFF:
		_, err := w.Write([]byte{b | additionalOneByte, byte(length)})
		return err
	case length <= 0xFFFF:
		var buf [3]byte
		buf[0] = b | additionalTwoBytes
		binary.BigEndian.PutUint16(buf[1:], uint16(length))
		_, err := w.Write(buf[:])
		return err
	case length <= 0xFFFFFFFF:
		var buf [5]byte
		buf[0] = b | additionalFourBytes
		binary.BigEndian.PutUint32(buf[1:], uint32(length))
		_, err := w.Write(buf[:])
		return err
	default:
		var buf [9]byte
		buf[0] = b | additionalEightBytes
		binary.BigEndian.PutUint64(buf[1:], length)
		_, err := w.Write(buf[:])
		return err
	}
}

// header is the result of decoding one CBOR initial byte and its following
// length/value bytes: the major type, the raw low 5 bits (needed to
// distinguish an immediate value from a width code in the simple/float
// space), and the resolved 64-bit length/value.
type header struct {
	major    byte
	lowBits  byte
	value    uint64
	hadWidth bool // true if lowBits was a width code (24-27), not an immediate value
}

// readHeader reads one CBOR initial byte and, if the additional-information
// field indicates a following length, that length, from r. It is the
// decoder-side counterpart to writeHeader, generalizing the teacher's
// typeInfo/toU64 pair in cbor.go to return a resolved value rather than a
// raw byte slice.
func readHeader(r io.Reader) (header, error) {
	var first [1]byte
	n, err := io.ReadFull(r, first[:])
	if n == 0 && err != nil {
		if err == io.EOF {
			return header{}, ErrNoInput
		}
		return header{}, err
	}
	if err != nil {
		return header{}, err
	}

	major := first[0] >> 5
	low := first[0] & lowBitsMask

	switch low {
	case additionalOneByte:
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return header{}, unexpectedEOF(err, major, low)
		}
		return header{major: major, lowBits: low, value: uint64(b[0]), hadWidth: true}, nil
	case additionalTwoBytes:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return header{}, unexpectedEOF(err, major, low)
		}
		return header{major: major, lowBits: low, value: uint64(binary.BigEndian.Uint16(b[:])), hadWidth: true}, nil
	case additionalFourBytes:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return header{}, unexpectedEOF(err, major, low)
		}
		return header{major: major, lowBits: low, value: uint64(binary.BigEndian.Uint32(b[:])), hadWidth: true}, nil
	case additionalEightBytes:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return header{}, unexpectedEOF(err, major, low)
		}
		return header{major: major, lowBits: low, value: binary.BigEndian.Uint64(b[:]), hadWidth: true}, nil
	default:
		return header{major: major, lowBits: low, value: uint64(low)}, nil
	}
}

// unexpectedEOF maps a truncated-read error to the container-specific
// sentinel named in spec.md §7 for the major type/additional-info pair being
// read. Major type 7's "following bytes" carry either a float payload
// (low bits 25-27) or a simple-value extension byte (low bits 24), so that
// major type needs its own branch on low rather than falling into the
// generic sequence sentinel.
func unexpectedEOF(err error, major, low byte) error {
	switch major {
	case majorUnsignedInt:
		return markf(ErrTruncatedUnsignedInteger, "truncated unsigned integer: %v", err)
	case majorNegativeInt:
		return markf(ErrTruncatedNegativeInteger, "truncated negative integer: %v", err)
	case majorSimple:
		if low == simpleByteWidth {
			return markf(ErrTruncatedSimpleValue, "truncated simple value: %v", err)
		}
		return markf(ErrTruncatedFloat, "truncated float: %v", err)
	default:
		return markf(ErrTruncatedSequence, "truncated sequence header: %v", err)
	}
}
