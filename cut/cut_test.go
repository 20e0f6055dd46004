package cut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhcgn/eml-inspect/cut"
)

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"abc",          // no term form matches
		"10",           // missing colon
		"10:20x",       // leftover after right term
		"10x:20",       // leftover after left term
		"[d0c]:",       // odd number of hex digits
		":[d0c]",       // odd number of hex digits, right term
		"['MZ']",       // missing colon after needle
		":l",           // bare length suffix
		"0x:10",        // 0x without digits
		"['a']x:['b']", // junk between term and colon
	}
	for _, text := range invalid {
		_, err := cut.Parse(text)
		assert.ErrorIs(t, err, cut.ErrInvalid, "input %q", text)
	}
}

func TestParseEmptySelectsEverything(t *testing.T) {
	t.Parallel()

	data := []byte("The quick brown fox jumps over the lazy dog")

	for _, text := range []string{"", ":"} {
		expr, err := cut.Parse(text)
		require.NoError(t, err, "input %q", text)
		assert.Equal(t, data, expr.Apply(data), "input %q", text)
	}
}

func TestApplyPositions(t *testing.T) {
	t.Parallel()

	data := make([]byte, 30)
	for i := range data {
		data[i] = byte(i)
	}

	tests := []struct {
		name string
		expr string
		want []byte
	}{
		{"decimal left only", "10:", data[10:]},
		{"hex left only", "0xa:", data[10:]},
		{"right position is inclusive", "10:20", data[10:21]},
		{"hex right position", "0xa:0x14", data[10:21]},
		{"length suffix", "0:10l", data[0:10]},
		{"hex length suffix", "5:0xal", data[5:15]},
		{"length from left bound", "20:20l", data[20:]},
		{"left past end", "1000:", []byte{}},
		{"right past end truncates", "0:1000", data},
		{"start after end", "5:3", []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := cut.Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, normalize(expr.Apply(data)))
		})
	}
}

func TestApplyNeedles(t *testing.T) {
	t.Parallel()

	data := []byte("xxxxMZhello PE world")

	tests := []struct {
		name string
		expr string
		want []byte
	}{
		{"text needle left", "['MZ']:", data[4:]},
		{"hex needle left", "[4d5a]:", data[4:]},
		{"needle left with length", "['MZ']:4l", data[4:8]},
		{"needle right includes match", ":['PE']", data[:14]},
		{"both needles", "['MZ']:['PE']", data[4:14]},
		{"absent left needle empty", "['ZZ']:", []byte{}},
		{"absent right needle empty", ":['ZZ']", []byte{}},
		{"absent left needle beats right term", "['ZZ']:0x100l", []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := cut.Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, normalize(expr.Apply(data)))
		})
	}
}

// The right-hand needle search is not anchored after the left bound. When
// the needle also occurs before the left bound, the end lands before the
// start and the result is empty.
func TestApplyRightNeedleUnanchored(t *testing.T) {
	t.Parallel()

	data := []byte("PE....MZ....PE....")

	expr, err := cut.Parse("['MZ']:['PE']")
	require.NoError(t, err)
	assert.Empty(t, expr.Apply(data))
}

func TestApplyCaseSensitiveNeedle(t *testing.T) {
	t.Parallel()

	data := []byte("....mz....")

	expr, err := cut.Parse("['MZ']:")
	require.NoError(t, err)
	assert.Empty(t, expr.Apply(data))
}

// normalize maps a nil result to the empty slice so table entries can
// state []byte{} uniformly.
func normalize(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
