package main

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressKnownOutput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"{0,5000.000000,3000.000000,1.000000,0.000000,0.000000,0,}", "{0,5`3`.3`3`.1`.0`.0`.0,}"},
		{"1000000", "1`6"},
		{"0000000", "`60"},
		{"00", "00"},
		{";>>;>", "`>;>"},
		{"`", "``"},
		{"`3000", "``3`3"},
		{".0000000,", ".`60,"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Compress(tt.in))
		})
	}
}

// chainCompress folds zeros the way older files were written: one global
// replace per escape. For text without backticks it agrees with Compress.
func chainCompress(s string) string {
	s = strings.ReplaceAll(s, "000", "`3")
	s = strings.ReplaceAll(s, "`3`3", "`6")
	s = strings.ReplaceAll(s, ".`6,", "`.")
	return strings.ReplaceAll(s, ";>>", "`>")
}

func TestCompressMatchesChainedReplace(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	const alphabet = "000000.,;>>1{}:"
	for range 2000 {
		n := r.IntN(30)
		var b strings.Builder
		for range n {
			b.WriteByte(alphabet[r.IntN(len(alphabet))])
		}
		s := b.String()
		assert.Equal(t, chainCompress(s), Compress(s), "input %q", s)
	}
}

func TestCompressRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	const alphabet = "0000.,;>``36x"
	for range 2000 {
		n := r.IntN(40)
		var b strings.Builder
		for range n {
			b.WriteByte(alphabet[r.IntN(len(alphabet))])
		}
		s := b.String()
		out, err := Decompress(Compress(s))
		require.NoError(t, err, "input %q", s)
		assert.Equal(t, s, out)
	}
}

func TestDecompressErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		offset int
	}{
		{"dangling escape", "abc`", 3},
		{"unknown escape", "ab`x", 2},
		{"digit that is not an escape", "`4", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.offset, perr.Offset)
		})
	}
}
