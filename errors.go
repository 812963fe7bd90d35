// SPDX-License-Identifier: Apache-2.0

package cbor

import "github.com/cockroachdb/errors"

// Sentinel errors for the taxonomy in spec.md §7. Concrete failures wrap one
// of these with errors.Wrapf so callers can branch with errors.Is (both the
// standard library's and github.com/cockroachdb/errors') while the
// wrapping message still carries the offending byte, value, or reason. This
// mirrors how _examples/chaisql-chai uses github.com/cockroachdb/errors
// throughout internal/types and internal/encoding: one sentinel per failure
// kind, details attached at the call site rather than encoded as Go error
// types with exported fields.
var (
	// Structural
	ErrInvalidTypeTag           = errors.New("cbor: invalid initial byte")
	ErrNoInput                  = errors.New("cbor: no input")
	ErrTruncatedUnsignedInteger = errors.New("cbor: truncated unsigned integer")
	ErrTruncatedNegativeInteger = errors.New("cbor: truncated negative integer")
	ErrTruncatedByteString      = errors.New("cbor: truncated byte string")
	ErrTruncatedUtf8String      = errors.New("cbor: truncated text string")
	ErrTruncatedArray           = errors.New("cbor: truncated array")
	ErrTruncatedMap             = errors.New("cbor: truncated map")
	ErrTruncatedSimpleValue     = errors.New("cbor: truncated simple value")
	ErrTruncatedFloat           = errors.New("cbor: truncated float")
	ErrTruncatedTaggedValue     = errors.New("cbor: truncated tagged value")
	ErrTruncatedSequence        = errors.New("cbor: truncated sequence")
	ErrOddNumberOfMapValues     = errors.New("cbor: odd number of map values")

	// Semantic
	ErrInvalidUtf8String   = errors.New("cbor: invalid UTF-8 in text string")
	ErrIncompleteUtf8String = errors.New("cbor: incomplete UTF-8 sequence in text string")

	// Resource
	ErrMaxDepthReached = errors.New("cbor: max depth reached")

	// Encoder
	ErrUnencodableValue = errors.New("cbor: unencodable value")
	ErrUnencodableTag    = errors.New("cbor: unencodable tag")
	ErrDuplicateMapKey  = errors.New("cbor: duplicate map key")

	// Interpreter
	ErrInvalidTaggedValue = errors.New("cbor: invalid tagged value for interpreter")
	ErrInvalidBase64Data  = errors.New("cbor: invalid base64 data")
	ErrInvalidBase64UrlData = errors.New("cbor: invalid base64url data")
	ErrInvalidCborData    = errors.New("cbor: invalid embedded CBOR data")
	ErrInvalidTrailingData = errors.New("cbor: invalid trailing data after embedded CBOR")
)

// markf wraps sentinel with a formatted message, matching the
// errors.Wrapf idiom used by _examples/chaisql-chai. The sentinel stays in
// the Unwrap chain, so the standard library's errors.Is finds it too.
func markf(sentinel error, format string, args ...any) error {
	return errors.Wrapf(sentinel, format, args...)
}
