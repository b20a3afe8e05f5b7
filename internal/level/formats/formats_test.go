package formats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/forcegrid/internal/level/formats"
	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want puzzle.Kind
		err  bool
	}{
		{in: "player", want: puzzle.KindPlayer},
		{in: " Bounce ", want: puzzle.KindBounce},
		{in: "2", want: puzzle.KindStandard},
		{in: "17", want: puzzle.Kind(17)},
		{in: "portal", err: true},
	}

	for _, tt := range tests {
		got, err := formats.ParseKind(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseSurface(t *testing.T) {
	tests := []struct {
		in   string
		want puzzle.Surface
		err  bool
	}{
		{in: "blank", want: puzzle.SurfaceBlank},
		{in: "slide", want: puzzle.SurfaceSlide},
		{in: "down", want: puzzle.SurfaceDown},
		{in: "goal:player", want: puzzle.Surface(0)},
		{in: "goal:9", want: puzzle.Surface(9)},
		{in: "-7", want: puzzle.Surface(-7)},
		{in: "goal:-1", err: true},
		{in: "lava", err: true},
	}

	for _, tt := range tests {
		got, err := formats.ParseSurface(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNamesAreInverse(t *testing.T) {
	for _, k := range []puzzle.Kind{puzzle.KindPlayer, puzzle.KindSlide, puzzle.Kind(12)} {
		got, err := formats.ParseKind(formats.KindName(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	for _, s := range []puzzle.Surface{puzzle.SurfaceBlank, puzzle.SurfaceUp, puzzle.Surface(3), puzzle.Surface(-9)} {
		got, err := formats.ParseSurface(formats.SurfaceName(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestParseYAMLValidates(t *testing.T) {
	_, err := formats.ParseYAML([]byte("id: x\nsize: {w: 2, h: 2}\nblocks:\n  - {x: 2, y: 0, kind: player}\n"))
	assert.ErrorIs(t, err, puzzle.ErrOutOfBounds)

	_, err = formats.ParseYAML([]byte("id: x\nsize: {w: 0, h: 2}\nblocks: []\n"))
	assert.Error(t, err)

	_, err = formats.ParseYAML([]byte("id: x\nsize: {w: 2, h: 2}\nblocks:\n  - {x: 0, y: 0, kind: ghost}\n"))
	assert.Error(t, err)
}

func TestYAMLCarriesTextDefinition(t *testing.T) {
	text := "4 2 -2\n0 0 0\n3 1 1\n\n-1 2 0\n2 3 1\n\n@Slide into place\n:0,r"
	lvl, err := formats.Parse([]byte(text), ".lvl", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", lvl.ID)
	assert.Equal(t, "Slide into place", lvl.Name)

	data, err := formats.MarshalYAML(lvl)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: slide")
	assert.Contains(t, string(data), "goal:standard")

	back, err := formats.Parse(data, ".yaml", "other")
	require.NoError(t, err)
	assert.Equal(t, "fallback", back.ID)
	assert.Equal(t, text, back.Definition.String())
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := formats.Parse([]byte("3 3"), ".json", "x")
	assert.Error(t, err)
}
