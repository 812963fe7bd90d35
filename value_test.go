// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueEqualIgnoresRepresentation(t *testing.T) {
	assert.True(t, Int(5).Equal(UInt(5)))
	assert.True(t, Int(5).Equal(BigInt(big.NewInt(5))))
	assert.False(t, Int(5).Equal(Int(6)))
	assert.True(t, NaN().Equal(NaN()))
	assert.False(t, NaN().Equal(Float(0)))
	assert.True(t, Float(0).Equal(Float(0)))
}

func TestValueEqualMapIgnoresOrder(t *testing.T) {
	a := Map([]MapEntry{{Key: Text("a"), Value: Int(1)}, {Key: Text("b"), Value: Int(2)}})
	b := Map([]MapEntry{{Key: Text("b"), Value: Int(2)}, {Key: Text("a"), Value: Int(1)}})
	assert.True(t, a.Equal(b))

	c := Map([]MapEntry{{Key: Text("a"), Value: Int(1)}, {Key: Text("b"), Value: Int(3)}})
	assert.False(t, a.Equal(c))
}

func TestValueAsAccessorsPanicOnWrongKind(t *testing.T) {
	assert.Panics(t, func() { Int(1).AsBytes() })
	assert.Panics(t, func() { Text("x").AsBigInt() })
	assert.Panics(t, func() { Bool(true).AsArray() })
}

func TestDatetimeAndTimestampEncode(t *testing.T) {
	instant := time.Date(2013, 3, 21, 20, 4, 0, 0, time.UTC)

	t.Run("datetime", func(t *testing.T) {
		hx, err := MarshalHex(NewDatetime(instant))
		require.NoError(t, err)
		assert.Equal(t, "c074323031332d30332d32315432303a30343a30305a", hx)
	})

	t.Run("timestamp-whole-seconds", func(t *testing.T) {
		hx, err := MarshalHex(NewTimestamp(1363896240, 0))
		require.NoError(t, err)
		assert.Equal(t, "c11a514b67b0", hx)
	})

	t.Run("timestamp-from-time", func(t *testing.T) {
		v := NewTimestampFromTime(instant)
		hx, err := MarshalHex(v)
		require.NoError(t, err)
		assert.Equal(t, "c11a514b67b0", hx)
	})
}

func TestErrorTaxonomyBranching(t *testing.T) {
	_, err := Marshal(Map([]MapEntry{{Key: Int(1), Value: Int(1)}, {Key: Int(1), Value: Int(2)}}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateMapKey)

	_, _, err = Decode([]byte{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoInput)

	_, _, err = Decode([]byte{0x5F, 0x61, 0x00}) // indefinite bytestring chunk has wrong major type
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTypeTag)
}
