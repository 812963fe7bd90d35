// SPDX-License-Identifier: Apache-2.0

// Command cbordump decodes a CBOR item and prints it in diagnostic
// notation, in the single-binary flag.FlagSet idiom of the teacher's own
// examples/cmd tools.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vellum-cbor/cbor"
	"github.com/vellum-cbor/cbor/cdn"
)

var (
	flags   = flag.NewFlagSet("cbordump", flag.ContinueOnError)
	hexMode = flags.Bool("hex", false, "input is hex-encoded rather than raw binary")
	inFile  = flags.String("in", "-", "input file, or - for stdin")
)

func main() {
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if err := run(); err != nil {
		slog.Warn("cbordump: failed to decode input", "error", err)
		os.Exit(1)
	}
}

func run() error {
	raw, err := readInput(*inFile)
	if err != nil {
		return err
	}

	data := raw
	if *hexMode {
		data, err = hex.DecodeString(string(trimNewline(raw)))
		if err != nil {
			return err
		}
	}

	v, rest, err := cbor.Decode(data)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		slog.Warn("cbordump: trailing bytes after decoded item", "count", len(rest))
	}

	fmt.Println(cdn.Format(v))
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
