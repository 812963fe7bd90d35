// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"time"

	"github.com/golang-module/carbon/v2"
)

// Datetime is the caller-facing constructor payload for a calendar
// datetime plus UTC offset (spec.md §3, §4.1 "Datetime(d, offset)"). It
// only ever appears on the encode path: decoding a tag-0 item yields the
// registered interpreter's output (the RFC 3339 text string itself), not a
// reconstructed Datetime.
type Datetime struct {
	t time.Time
}

// NewDatetime constructs a Datetime Value from a time.Time. The instant's
// offset (t.Zone()) becomes the encoded UTC offset; pass a UTC time to get
// the "Z" form.
func NewDatetime(t time.Time) Value {
	return Value{kind: KindDatetime, datetime: Datetime{t: t}}
}

// rfc3339 renders d using carbon's formatter, which follows Go's time
// package rules for the offset suffix ("Z" at offset 0, "±HH:MM"
// otherwise) — the "external calendar/time conversion helper" spec.md §1
// names as a collaborator to the core, implemented here with
// github.com/golang-module/carbon/v2 per SPEC_FULL.md §3, grounded on its
// use throughout _examples/chaisql-chai.
func (d Datetime) rfc3339() string {
	return carbon.CreateFromStdTime(d.t).ToRfc3339String()
}

// Timestamp is the caller-facing constructor payload for an instant in
// time (spec.md §3, §4.1 "Timestamp(d)"): seconds since the Unix epoch plus
// a sub-second nanosecond remainder. Like Datetime, it is encoder-only.
type Timestamp struct {
	Seconds     int64
	Nanoseconds int64
}

// NewTimestamp constructs a Timestamp Value directly from a (seconds,
// nanoseconds) pair.
func NewTimestamp(seconds, nanoseconds int64) Value {
	return Value{kind: KindTimestamp, timestamp: Timestamp{Seconds: seconds, Nanoseconds: nanoseconds}}
}

// NewTimestampFromTime constructs a Timestamp Value from a time.Time,
// using carbon to decompose it into the (seconds, nanoseconds) pair spec.md
// §1 describes as the output of the external calendar/time helper.
func NewTimestampFromTime(t time.Time) Value {
	c := carbon.CreateFromStdTime(t)
	seconds := c.Timestamp()
	nanoseconds := int64(c.Nanosecond())
	return NewTimestamp(seconds, nanoseconds)
}
