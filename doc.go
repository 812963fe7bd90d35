// SPDX-License-Identifier: Apache-2.0

// Package cbor encodes and decodes RFC 8949 Concise Binary Object
// Representation using Value, a closed sum type covering every CBOR major
// type plus the two caller-facing sugared forms Datetime and Timestamp.
//
// Construct a Value with one of the top-level constructors (Int, UInt,
// BigInt, Float, Bool, Bytes, Text, Array, Map, SimpleValue, Tagged,
// NewDatetime, NewTimestamp) and pass it to Marshal or an Encoder. Decode
// or a Decoder produces a Value whose Kind() dispatches to an As*()
// accessor.
//
// Map encoding is always deterministic: entries are reordered by the
// bytewise order of their own encoded key bytes regardless of the order
// they were supplied in, and two entries that encode to the same key bytes
// are rejected with ErrDuplicateMapKey.
//
// Decoding bounds recursion with DecodeOptions.MaxDepth and, by default,
// runs every decoded tag through a registry of Interpreters (tags 0, 1, 2,
// 3, 24, 32-36, and 55799) that turn the raw (tag, inner) pair into a more
// specific Value. Tags with no registered interpreter decode to a Tagged
// Value.
package cbor
