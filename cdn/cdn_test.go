// SPDX-License-Identifier: Apache-2.0

package cdn_test

import (
	"testing"

	"github.com/vellum-cbor/cbor"
	"github.com/vellum-cbor/cbor/cdn"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want string
	}{
		{"text", "6568656c6c6f", `"hello"`},
		{"true", "f5", "true"},
		{"false", "f4", "false"},
		{"null", "f6", "null"},
		{"undefined", "f7", "undefined"},
		{"unsigned", "1864", "100"},
		{"negative", "3863", "-100"},
		{"bytes", "4412345678", "h'12345678'"},
		{"empty array", "80", "[]"},
		{"array", "83010203", "[1, 2, 3]"},
		{"empty map", "a0", "{}"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			v, rest, err := cbor.DecodeHex(tt.hex)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if rest != "" {
				t.Fatalf("unexpected trailing bytes: %s", rest)
			}
			if got := cdn.Format(v); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatMap(t *testing.T) {
	v, rest, err := cbor.DecodeHex("a2616101616202")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rest != "" {
		t.Fatalf("unexpected trailing bytes: %s", rest)
	}
	got := cdn.Format(v)
	want := `{"a": 1, "b": 2}`
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatTagged(t *testing.T) {
	// tag 1000 wrapping the unsigned integer 1, no registered interpreter
	v, rest, err := cbor.DecodeHex("d903e801")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rest != "" {
		t.Fatalf("unexpected trailing bytes: %s", rest)
	}
	got := cdn.Format(v)
	want := "1000(1)"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatNestedContainers(t *testing.T) {
	v := cbor.Array([]cbor.Value{
		cbor.Int(1),
		cbor.Map([]cbor.MapEntry{
			{Key: cbor.Text("k"), Value: cbor.Bool(true)},
		}),
		cbor.Bytes([]byte{0xAB, 0xCD}),
	})
	got := cdn.Format(v)
	want := `[1, {"k": true}, h'abcd']`
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
