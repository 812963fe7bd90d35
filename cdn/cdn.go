// SPDX-License-Identifier: Apache-2.0

// Package cdn renders a cbor.Value as CBOR diagnostic notation: a simple
// human-readable notation meant for documentation and debugging, not for
// interchange (CBOR interchange always happens in the binary format).
//
// Only base16 notation is used for byte strings:
//
//	h'12345678' // this package's output
//	b32'CI2FM6A' or b64'EjRWeA' // not produced
//
// Example:
//
//	s := cdn.Format(v)
package cdn

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vellum-cbor/cbor"
)

// Format renders v as a diagnostic-notation string. Unlike the teacher's
// cdn package, which round-trips diagnostic text through cbor.Marshal/
// Unmarshal(any) in both directions, this operates directly on the Value
// tree and only goes one way: there is no parser back from text to a
// Value, since nothing in this codec's scope needs one.
func Format(v cbor.Value) string {
	var b bytes.Buffer
	formatValue(&b, v)
	return b.String()
}

func formatValue(b *bytes.Buffer, v cbor.Value) { //nolint:gocyclo
	switch v.Kind() {
	case cbor.KindInteger:
		b.WriteString(v.AsBigInt().String())

	case cbor.KindFloat:
		formatFloat(b, v)

	case cbor.KindBoolean:
		if v.AsBool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}

	case cbor.KindNull:
		b.WriteString("null")

	case cbor.KindUndefined:
		b.WriteString("undefined")

	case cbor.KindByteString:
		b.WriteString("h'")
		_, _ = hex.NewEncoder(b).Write(v.AsBytes())
		b.WriteString("'")

	case cbor.KindTextString:
		d, _ := json.Marshal(v.AsText())
		b.Write(d)

	case cbor.KindArray:
		b.WriteString("[")
		for i, el := range v.AsArray() {
			if i > 0 {
				b.WriteString(", ")
			}
			formatValue(b, el)
		}
		b.WriteString("]")

	case cbor.KindMap:
		b.WriteString("{")
		for i, ent := range v.AsMapEntries() {
			if i > 0 {
				b.WriteString(", ")
			}
			formatValue(b, ent.Key)
			b.WriteString(": ")
			formatValue(b, ent.Value)
		}
		b.WriteString("}")

	case cbor.KindSimpleValue:
		fmt.Fprintf(b, "simple(%d)", v.AsSimpleValue())

	case cbor.KindTagged:
		t := v.AsTag()
		b.WriteString(strconv.FormatUint(t.Number, 10))
		b.WriteString("(")
		formatValue(b, t.Inner)
		b.WriteString(")")

	case cbor.KindDatetime, cbor.KindTimestamp:
		// Only ever produced by a caller constructing a Value directly;
		// the default tag interpreters resolve tags 0 and 1 into a plain
		// TextString/Integer, which the cases above already cover.
		b.WriteString("<unrepresentable>")

	default:
		b.WriteString("<invalid>")
	}
}

func formatFloat(b *bytes.Buffer, v cbor.Value) {
	class, f := v.AsFloatClass()
	switch class {
	case cbor.FloatPositiveInfinity:
		b.WriteString("Infinity")
	case cbor.FloatNegativeInfinity:
		b.WriteString("-Infinity")
	case cbor.FloatNaN:
		b.WriteString("NaN")
	default:
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
}
