// Package dump renders selected bytes for the console: plain hex, a
// hex/ascii side-by-side view, and a chunked raw writer.
package dump

import (
	"fmt"
	"io"
	"strings"
)

const lineLength = 16

// chunkSize keeps single writes below platform console buffer limits.
const chunkSize = 10000

// HexDump renders data as lines of 16 space-separated uppercase hex
// bytes.
func HexDump(data []byte) string {
	var out strings.Builder
	for i, b := range data {
		switch {
		case i == 0:
		case i%lineLength == 0:
			out.WriteByte('\n')
		default:
			out.WriteByte(' ')
		}
		fmt.Fprintf(&out, "%02X", b)
	}
	if len(data) > 0 {
		out.WriteByte('\n')
	}
	return out.String()
}

// HexAsciiDump renders data with an 8-digit hex offset, a hex column and
// an ascii column. Bytes below 0x20 render as a dot.
func HexAsciiDump(data []byte) string {
	var out strings.Builder
	for base := 0; base < len(data); base += lineLength {
		end := base + lineLength
		if end > len(data) {
			end = len(data)
		}
		chunk := data[base:end]

		fmt.Fprintf(&out, "%08X:", base)
		for _, b := range chunk {
			fmt.Fprintf(&out, " %02X", b)
		}
		out.WriteString("  ")
		out.WriteString(strings.Repeat(" ", 3*(lineLength-len(chunk))))
		for _, b := range chunk {
			if b >= 32 {
				out.WriteByte(b)
			} else {
				out.WriteByte('.')
			}
		}
		out.WriteByte('\n')
	}
	return out.String()
}

// WriteChunked writes data to w in bounded chunks.
func WriteChunked(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := chunkSize
		if n > len(data) {
			n = len(data)
		}
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
