// SPDX-License-Identifier: Apache-2.0

package cbor

// Major types (high 3 bits of the initial byte). Naming and grouping
// follow _examples/fido-device-onboard-go-fdo/cbor/cbor.go.
const (
	majorUnsignedInt byte = 0x00
	majorNegativeInt byte = 0x01
	majorByteString  byte = 0x02
	majorTextString  byte = 0x03
	majorArray       byte = 0x04
	majorMap         byte = 0x05
	majorTag         byte = 0x06
	majorSimple      byte = 0x07
)

// Additional-information codes (low 5 bits) that indicate a following
// length/value of 1, 2, 4, or 8 bytes rather than an immediate value.
const (
	additionalOneByte    byte = 24
	additionalTwoBytes   byte = 25
	additionalFourBytes  byte = 26
	additionalEightBytes byte = 27
	additionalIndefinite byte = 31
)

// Well-known major-type-7 (simple value / float) additional-info codes.
const (
	simpleFalse     byte = 20
	simpleTrue      byte = 21
	simpleNull      byte = 22
	simpleUndefined byte = 23
	simpleByteWidth byte = 24 // one following byte carries the simple value, 24..255
	simpleHalfFloat byte = 25
	simpleSingleFloat byte = 26
	simpleDoubleFloat byte = 27
)

const (
	highBitsMask byte = 0x07
	lowBitsMask  byte = 0x1f
)

// Default tag-interpreter registry members (spec.md §4.3), named per
// RFC 8949 and cross-checked against other_examples/synadia-labs-cbor-go__defs.go.
const (
	tagDatetimeString   uint64 = 0
	tagEpochTimestamp   uint64 = 1
	tagPositiveBignum   uint64 = 2
	tagNegativeBignum   uint64 = 3
	tagEmbeddedCBOR     uint64 = 24
	tagURI              uint64 = 32
	tagBase64URLString  uint64 = 33
	tagBase64String     uint64 = 34
	tagRegexp           uint64 = 35
	tagMIMEMessage      uint64 = 36
	tagSelfDescribedCBOR uint64 = 55799
)

// MaxArrayDecodeLength bounds the number of elements the decoder will
// allocate for a single array/map/string length field, guarding against a
// maliciously large declared length forcing a huge allocation before any
// data has actually been read. Ported from the teacher's identically-named
// constant in cbor.go.
const MaxArrayDecodeLength = 100_000
