// Package report formats the part listing and scan hit lines.
package report

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dhcgn/eml-inspect/model"
)

var (
	markerColor = color.New(color.FgYellow)
	ruleColor   = color.New(color.FgRed)
)

// Listing writes one line per part: index, container marker, payload
// length (blank when the payload is absent), content type.
func Listing(w io.Writer, parts []model.Part) {
	for _, p := range parts {
		fmt.Fprintf(w, "%d: %s %s %s\n", p.Index, marker(p.Container), lengthString(p), p.ContentType)
	}
}

// Hit writes one scan hit line, followed by indented string-match detail
// lines when the hit carries them.
func Hit(w io.Writer, h model.ScanHit) {
	decoderName := ""
	if h.Decoder != "" {
		decoderName = fmt.Sprintf(" (%s)", h.Decoder)
	}
	fmt.Fprintf(w, "%d: %s %7d %-20s %s %s%s\n",
		h.PartIndex, marker(h.Container), h.Length, h.ContentType,
		h.Namespace, ruleColor.Sprint(h.Rule), decoderName)

	for _, s := range h.Strings {
		fmt.Fprintf(w, " %06x %s %s %q\n", s.Offset, s.Identifier, hex.EncodeToString(s.Data), s.Data)
	}
}

func marker(container bool) string {
	if container {
		return markerColor.Sprint("M")
	}
	return " "
}

func lengthString(p model.Part) string {
	if !p.HasPayload() {
		return "       "
	}
	return fmt.Sprintf("%7d", len(p.Payload))
}
