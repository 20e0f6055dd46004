// Package cut implements the byte-range expression used to carve a
// sub-range out of a part's payload. An expression is two terms separated
// by a colon; each term is an absolute position (decimal or 0x-hex), a
// needle to search for (['text'] or [hexdigits]), or empty. The right
// term may carry an l suffix turning the number into a length relative to
// the resolved left bound.
package cut

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalid reports a cut expression that does not follow the term:term
// grammar. Callers must treat it as a configuration error and abort
// before processing any input.
var ErrInvalid = errors.New("invalid cut expression")

type termKind int

const (
	termNothing termKind = iota
	termPosition
	termNeedle
	termLength
)

type term struct {
	kind   termKind
	pos    int
	needle []byte
}

// Expression is a parsed cut expression. The zero value selects the
// whole buffer.
type Expression struct {
	left  term
	right term
}

var (
	reHexPosition = regexp.MustCompile(`^0x([0-9a-fA-F]+)`)
	reDecPosition = regexp.MustCompile(`^([0-9]+)`)
	reHexNeedle   = regexp.MustCompile(`^\[([0-9a-fA-F]+)\]`)
	// Lazy so the left needle of ['a']:['b'] stops at its own closing
	// quote-bracket instead of swallowing the right term.
	reTextNeedle = regexp.MustCompile(`^\['(.+?)'\]`)
)

// errNoTerm means the input matched none of the term forms; the caller
// decides whether a leading colon can still rescue the expression.
var errNoTerm = errors.New("no term")

func parseTerm(s string) (term, string, error) {
	if s == "" {
		return term{kind: termNothing}, "", nil
	}
	if m := reHexPosition.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseInt(m[1], 16, 64)
		if err != nil {
			return term{}, "", ErrInvalid
		}
		return term{kind: termPosition, pos: int(n)}, s[len(m[0]):], nil
	}
	if m := reDecPosition.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return term{}, "", ErrInvalid
		}
		return term{kind: termPosition, pos: int(n)}, s[len(m[0]):], nil
	}
	if m := reHexNeedle.FindStringSubmatch(s); m != nil {
		if len(m[1])%2 == 1 {
			return term{}, "", ErrInvalid
		}
		needle, err := hex.DecodeString(m[1])
		if err != nil {
			return term{}, "", ErrInvalid
		}
		return term{kind: termNeedle, needle: needle}, s[len(m[0]):], nil
	}
	if m := reTextNeedle.FindStringSubmatch(s); m != nil {
		return term{kind: termNeedle, needle: []byte(m[1])}, s[len(m[0]):], nil
	}
	return term{}, s, errNoTerm
}

// Parse parses a textual cut expression. The empty string parses to the
// full-selection expression. Any malformed input returns an error
// wrapping ErrInvalid, never a partial expression.
func Parse(text string) (Expression, error) {
	arg := strings.TrimSpace(text)

	left, rest, err := parseTerm(arg)
	switch {
	case err == nil && left.kind == termNothing:
		return Expression{}, nil
	case errors.Is(err, errNoTerm):
		if !strings.HasPrefix(rest, ":") {
			return Expression{}, fmt.Errorf("%w: %q", ErrInvalid, text)
		}
		left = term{kind: termNothing}
		rest = rest[1:]
	case err != nil:
		return Expression{}, fmt.Errorf("%w: %q", ErrInvalid, text)
	default:
		if !strings.HasPrefix(rest, ":") {
			return Expression{}, fmt.Errorf("%w: %q", ErrInvalid, text)
		}
		rest = rest[1:]
	}

	right, rest, err := parseTerm(rest)
	if err == nil && right.kind == termPosition && rest == "l" {
		right.kind = termLength
		rest = ""
	}
	if err != nil || rest != "" {
		return Expression{}, fmt.Errorf("%w: %q", ErrInvalid, text)
	}

	return Expression{left: left, right: right}, nil
}

// Apply carves the selected range out of data. A needle that does not
// occur in data makes the whole result empty, regardless of the other
// term. Out-of-range positions truncate naturally.
//
// The right-hand needle search runs from the start of the buffer, not
// from the resolved left bound. An occurrence before the left bound can
// therefore place the end before the start and yield an empty result.
// This matches long-standing observed behavior and is kept as is.
func (e Expression) Apply(data []byte) []byte {
	lo := 0
	switch e.left.kind {
	case termPosition:
		lo = e.left.pos
	case termNeedle:
		lo = bytes.Index(data, e.left.needle)
		if lo < 0 {
			return nil
		}
	}

	hi := len(data)
	switch e.right.kind {
	case termPosition:
		hi = e.right.pos + 1
	case termLength:
		hi = lo + e.right.pos
	case termNeedle:
		i := bytes.Index(data, e.right.needle)
		if i < 0 {
			return nil
		}
		hi = i + len(e.right.needle)
	}

	if lo > len(data) {
		lo = len(data)
	}
	if hi > len(data) {
		hi = len(data)
	}
	if hi < lo {
		return nil
	}
	return data[lo:hi]
}
