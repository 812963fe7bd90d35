// SPDX-License-Identifier: Apache-2.0

package cbor

import "math/big"

// native range boundaries from spec.md §4.1: integers in
// [-(2^64), 2^64-1] use native major types 0/1; integers outside that
// range are encoded as bignum tags 2/3. Grounded on math/big's Bytes()/
// SetBytes() idiom as used by _examples/chaisql-chai/internal/types/bigint.go
// (justified over a third-party bignum library in SPEC_FULL.md §3: nothing
// in the pack vendors one).
var (
	maxUint64Plus1 = new(big.Int).Lsh(big.NewInt(1), 64)
	minNativeInt   = new(big.Int).Neg(maxUint64Plus1)
)

// fitsNativeRange reports whether n can be encoded with major type 0 or 1
// rather than a bignum tag.
func fitsNativeRange(n *big.Int) bool {
	return n.Cmp(minNativeInt) >= 0 && n.Cmp(maxUint64Plus1) < 0
}

// bignumMagnitudeBytes returns the big-endian minimal-length unsigned-
// magnitude bytes backing a tag-2/3 byte string: n's own magnitude for a
// positive bignum, or (-1-n)'s magnitude for a negative one (spec.md §4.1).
func bignumMagnitudeBytes(n *big.Int) []byte {
	if n.Sign() >= 0 {
		return n.Bytes()
	}
	mag := new(big.Int).Neg(n)
	mag.Sub(mag, big.NewInt(1))
	return mag.Bytes()
}

// bignumFromMagnitude reconstructs the signed integer a tag-2 (positive) or
// tag-3 (negative) byte string represents.
func bignumFromMagnitude(tagNumber uint64, magnitude []byte) *big.Int {
	n := new(big.Int).SetBytes(magnitude)
	if tagNumber == tagNegativeBignum {
		n.Add(n, big.NewInt(1))
		n.Neg(n)
	}
	return n
}
