// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"math"
	"math/big"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
	}{
		{"zero", Int(0)},
		{"small-negative", Int(-10)},
		{"large-unsigned", UInt(math.MaxUint64)},
		{"double", Float(1.5)},
		{"positive-infinity", PositiveInfinity()},
		{"nan", NaN()},
		{"true", Bool(true)},
		{"null", Null()},
		{"undefined", Undefined()},
		{"bytes", Bytes([]byte{1, 2, 3, 4})},
		{"text", Text("hello, world")},
		{"array", Array([]Value{Int(1), Int(2), Int(3)})},
		{"nested-array", Array([]Value{Array([]Value{Int(1)}), Text("x")})},
		{"map", Map([]MapEntry{{Key: Text("a"), Value: Int(1)}, {Key: Text("b"), Value: Int(2)}})},
		{"simple-value", SimpleValue(100)},
		{"tagged-unregistered", Tagged(1000, Int(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.v)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			got, rest, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(rest) != 0 {
				t.Errorf("unexpected trailing bytes: % x", rest)
			}
			if !got.Equal(tt.v) {
				t.Errorf("round trip mismatch: got %#v want %#v", got, tt.v)
			}
		})
	}
}

func TestDecodeLeavesTrailingBytes(t *testing.T) {
	data := mustDecodeHex(t, "0102") // two one-byte integers back to back
	v, rest, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !v.Equal(Int(1)) {
		t.Errorf("got %#v want Int(1)", v)
	}
	if len(rest) != 1 || rest[0] != 0x02 {
		t.Errorf("got rest % x want [02]", rest)
	}
}

func TestDecodeIndefiniteLengthContainers(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		data := mustDecodeHex(t, "9f010203ff") // indefinite array [1, 2, 3]
		v, rest, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if len(rest) != 0 {
			t.Errorf("unexpected trailing bytes: % x", rest)
		}
		if !v.Equal(Array([]Value{Int(1), Int(2), Int(3)})) {
			t.Errorf("got %#v", v)
		}
	})

	t.Run("map", func(t *testing.T) {
		data := mustDecodeHex(t, "bf616101ff") // indefinite map {"a": 1}
		v, _, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !v.Equal(Map([]MapEntry{{Key: Text("a"), Value: Int(1)}})) {
			t.Errorf("got %#v", v)
		}
	})

	t.Run("text-string-chunks", func(t *testing.T) {
		// indefinite text string made of chunks "strea" and "ming"
		// (RFC 8949 §2.2.2 example)
		data := mustDecodeHex(t, "7f657374726561646d696e67ff")
		v, rest, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if len(rest) != 0 {
			t.Errorf("unexpected trailing bytes: % x", rest)
		}
		if !v.Equal(Text("streaming")) {
			t.Errorf("got %#v want Text(\"streaming\")", v)
		}
	})
}

func TestDecodeMapDuplicateKeyLastWins(t *testing.T) {
	data := mustDecodeHex(t, "bf01020103ff") // indefinite map {1: 2, 1: 3}
	v, _, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	entries := v.AsMapEntries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !entries[0].Value.Equal(Int(3)) {
		t.Errorf("got value %#v, want Int(3)", entries[0].Value)
	}
}

func TestDecodeOddMapValuesRejected(t *testing.T) {
	data := mustDecodeHex(t, "bf010201ff") // indefinite map with an unpaired trailing key
	_, _, err := Decode(data)
	if !errors.Is(err, ErrOddNumberOfMapValues) {
		t.Errorf("got %v, want ErrOddNumberOfMapValues", err)
	}
}

func TestDecodeInvalidInitialByteRejected(t *testing.T) {
	_, _, err := Decode([]byte{0xFF}) // break byte outside any container
	if !errors.Is(err, ErrInvalidTypeTag) {
		t.Errorf("got %v, want ErrInvalidTypeTag", err)
	}
}

func TestDecodeTruncatedArrayRejected(t *testing.T) {
	data := mustDecodeHex(t, "8301") // array header declares 3 items, supplies 1
	_, _, err := Decode(data)
	if !errors.Is(err, ErrTruncatedArray) {
		t.Errorf("got %v, want ErrTruncatedArray", err)
	}
}

func TestDecodeTruncatedFloatRejected(t *testing.T) {
	// half-float marker (0xf9) with its 2 length bytes missing
	_, _, err := Decode([]byte{0xf9})
	if !errors.Is(err, ErrTruncatedFloat) {
		t.Errorf("got %v, want ErrTruncatedFloat", err)
	}
}

func TestDecodeTruncatedSimpleValueRejected(t *testing.T) {
	// one-byte-simple-value marker (0xf8) with its extension byte missing
	_, _, err := Decode([]byte{0xf8})
	if !errors.Is(err, ErrTruncatedSimpleValue) {
		t.Errorf("got %v, want ErrTruncatedSimpleValue", err)
	}
}

func TestDecodeMaxDepthReached(t *testing.T) {
	opts := DecodeOptions{MaxDepth: 2, TagInterpreters: DefaultTagInterpreters()}
	data := mustDecodeHex(t, "81818100") // [[[0]]], the 0 sits at depth 3
	_, _, err := Decode(data, opts)
	if !errors.Is(err, ErrMaxDepthReached) {
		t.Errorf("got %v, want ErrMaxDepthReached", err)
	}
}

func TestDecodeMaxDepthAtExactlyAllowedDepthSucceeds(t *testing.T) {
	opts := DecodeOptions{MaxDepth: 3, TagInterpreters: DefaultTagInterpreters()}
	data := mustDecodeHex(t, "81818100")
	_, _, err := Decode(data, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeTagInterpreters(t *testing.T) {
	t.Run("datetime", func(t *testing.T) {
		v, _, err := DecodeHex("c074323031332d30332d32315432303a30343a30305a")
		if err != nil {
			t.Fatalf("DecodeHex: %v", err)
		}
		if !v.IsTextString() || v.AsText() != "2013-03-21T20:04:00Z" {
			t.Errorf("got %#v", v)
		}
	})

	t.Run("epoch-timestamp-integer", func(t *testing.T) {
		v, _, err := DecodeHex("c11a514b67b0")
		if err != nil {
			t.Fatalf("DecodeHex: %v", err)
		}
		want := BigInt(big.NewInt(1363896240000000000))
		if !v.Equal(want) {
			t.Errorf("got %#v want %#v", v, want)
		}
	})

	t.Run("positive-bignum", func(t *testing.T) {
		v, _, err := DecodeHex("c249010000000000000000")
		if err != nil {
			t.Fatalf("DecodeHex: %v", err)
		}
		if _, ok := v.AsInt64(); ok {
			t.Errorf("expected the bignum not to fit in int64")
		}
		data, err := Marshal(v)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if hx, err := MarshalHex(v); err != nil || hx != "c249010000000000000000" {
			t.Errorf("re-encoded to %s (err %v)", hx, err)
		}
		_ = data
	})

	t.Run("base64url", func(t *testing.T) {
		// tag 33 wrapping "aGVsbG8" (base64url, no padding, decodes to "hello")
		v, _, err := DecodeHex("d8216761475673624738")
		if err != nil {
			t.Fatalf("DecodeHex: %v", err)
		}
		if !v.IsByteString() || string(v.AsBytes()) != "hello" {
			t.Errorf("got %#v", v)
		}
	})

	t.Run("self-described", func(t *testing.T) {
		v, _, err := DecodeHex("d9d9f700") // tag 55799 wrapping the integer 0
		if err != nil {
			t.Fatalf("DecodeHex: %v", err)
		}
		if !v.Equal(Int(0)) {
			t.Errorf("got %#v", v)
		}
	})

	t.Run("embedded-cbor", func(t *testing.T) {
		// tag 24 wrapping the 1-byte string h'01', which itself decodes to
		// the integer 1
		v, _, err := DecodeHex("d8184101")
		if err != nil {
			t.Fatalf("DecodeHex: %v", err)
		}
		if !v.Equal(Int(1)) {
			t.Errorf("got %#v", v)
		}
	})

	t.Run("embedded-cbor-trailing-data-rejected", func(t *testing.T) {
		// tag 24 wrapping h'0101' -- two back-to-back integers, not one item
		_, _, err := DecodeHex("d818420101")
		if !errors.Is(err, ErrInvalidTrailingData) {
			t.Errorf("got %v, want ErrInvalidTrailingData", err)
		}
	})
}
