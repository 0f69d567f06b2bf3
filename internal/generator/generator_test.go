package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuikit/internal/model"
)

// seqSource replays a fixed index sequence, wrapping modulo n.
type seqSource struct {
	seq []int
	pos int
}

func (s *seqSource) Intn(n int) int {
	v := s.seq[s.pos%len(s.seq)]
	s.pos++
	return v % n
}

func TestCharsetOrder(t *testing.T) {
	got := Charset(model.Classes{Uppercase: true, Lowercase: true, Numbers: true, Symbols: true})
	require.Equal(t, Uppercase+Lowercase+Numbers+Symbols, got)

	got = Charset(model.Classes{Symbols: true, Numbers: true})
	require.Equal(t, Numbers+Symbols, got)
}

func TestCharsetFallsBackToLowercase(t *testing.T) {
	require.Equal(t, Lowercase, Charset(model.Classes{}))
}

func TestGenerateLength(t *testing.T) {
	gen := New()
	for _, length := range []int{0, 1, 4, 12, 50, 200} {
		out := gen.Generate(model.DefaultClasses(), length)
		require.Len(t, out, length)
	}
}

func TestGenerateNegativeLengthIsEmpty(t *testing.T) {
	require.Empty(t, New().Generate(model.DefaultClasses(), -3))
}

func TestGenerateNumbersOnly(t *testing.T) {
	gen := New()
	out := gen.Generate(model.Classes{Numbers: true}, 6)
	require.Len(t, out, 6)
	for _, r := range out {
		require.Contains(t, Numbers, string(r), "unexpected char in %q", out)
	}
}

func TestGenerateAllDisabledUsesLowercase(t *testing.T) {
	gen := New()
	out := gen.Generate(model.Classes{}, 4)
	require.Len(t, out, 4)
	for _, r := range out {
		require.Contains(t, Lowercase, string(r), "unexpected char in %q", out)
	}
}

func TestGenerateStaysInsideEnabledClasses(t *testing.T) {
	gen := New()
	cases := []model.Classes{
		{Uppercase: true},
		{Lowercase: true, Symbols: true},
		{Uppercase: true, Numbers: true},
		{Symbols: true},
		model.DefaultClasses(),
	}
	for _, classes := range cases {
		charset := Charset(classes)
		for i := 0; i < 20; i++ {
			out := gen.Generate(classes, 32)
			for _, r := range out {
				require.True(t, strings.ContainsRune(charset, r), "char %q outside %q", r, charset)
			}
		}
	}
}

func TestGenerateDrawsInOrderFromSource(t *testing.T) {
	src := &seqSource{seq: []int{0, 25, 26, 61, 9}}
	gen := NewWithSource(src)
	out := gen.Generate(model.DefaultClasses(), 5)
	require.Equal(t, "AZa9J", out)
}

func TestGenerateIndexesWrapToCharset(t *testing.T) {
	src := &seqSource{seq: []int{3, 13, 12}}
	gen := NewWithSource(src)
	out := gen.Generate(model.Classes{Numbers: true}, 3)
	require.Equal(t, "332", out)
}
