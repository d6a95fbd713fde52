package fontloader

import (
	"testing"

	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"pgregory.net/rapid"
)

// damaged draws a copy of goregular.TTF with some bytes overwritten and
// possibly truncated.
func damaged(rt *rapid.T) []byte {
	data := make([]byte, len(goregular.TTF))
	copy(data, goregular.TTF)
	n := rapid.IntRange(0, 16).Draw(rt, "mutations")
	for i := 0; i < n; i++ {
		pos := rapid.IntRange(0, len(data)-1).Draw(rt, "pos")
		data[pos] = rapid.Byte().Draw(rt, "byte")
	}
	if rapid.Bool().Draw(rt, "truncate") {
		data = data[:rapid.IntRange(0, len(data)).Draw(rt, "length")]
	}
	return data
}

func TestCreateFontDamagedData(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	rapid.Check(t, func(rt *rapid.T) {
		data := damaged(rt)
		size := rapid.Float64Range(0.5, 500).Draw(rt, "size")
		d := &diagnostics{}
		loader := newTestLoader(&scriptedHost{accepted: true}, d, WithSize(size))
		in := stream(data)
		tc, err := loader.CreateFont(in, "damaged.ttf")

		require.NoError(rt, err)
		require.Equal(rt, 1, in.closed, "stream must be closed exactly once")
		if tc == nil {
			require.Equal(rt, 0, loader.Provenance().Len(), "absent font must not be recorded")
			require.Equal(rt, 1, d.count(core.EINVALID), "absent font must be reported")
			return
		}
		require.Equal(rt, 1, loader.Provenance().Len())
		origin, ok := loader.Provenance().LookupOrigin(tc)
		require.True(rt, ok)
		require.Equal(rt, "damaged.ttf", origin)
	})
}

func TestCreateFontAnySize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.Float64Range(0.1, 1000).Draw(rt, "size")
		origin := rapid.StringMatching(`fonts/[a-z]{2,8}[0-9]{0,2}\.ttf`).Draw(rt, "origin")
		d := &diagnostics{}
		loader := newTestLoader(&scriptedHost{accepted: true}, d, WithSize(size))
		in := stream(goregular.TTF)
		tc, err := loader.CreateFont(in, origin)

		require.NoError(rt, err)
		require.NotNil(rt, tc)
		require.Equal(rt, 1, in.closed)
		require.InDelta(rt, size, tc.PtSize(), 1e-9)
		name, ok := loader.Provenance().LookupOrigin(tc)
		require.True(rt, ok)
		require.Equal(rt, origin, name)
		require.Empty(rt, d.errs)
	})
}
