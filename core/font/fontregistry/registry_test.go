package fontregistry

import (
	"testing"

	"github.com/npillmayer/mathfont/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type sw struct {
	s xfont.Style
	w xfont.Weight
}

func TestGuess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	for k, v := range map[string]sw{
		"fonts/Clarendon-bold.ttf":               {xfont.StyleNormal, xfont.WeightBold},
		"Microsoft/Gill Sans MT Bold Italic.ttf": {xfont.StyleItalic, xfont.WeightBold},
		"Cambria Math.ttf":                       {xfont.StyleNormal, xfont.WeightNormal},
	} {
		style, weight := GuessStyleAndWeight(k)
		t.Logf("style = %d, weight = %d", style, weight)
		if style != v.s || weight != v.w {
			t.Errorf("expected different style or weight for %s", k)
		}
	}
}

func TestNormalizeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	n := NormalizeFontname("Clarendon", xfont.StyleItalic, xfont.WeightBold)
	if n != "clarendon-italic-bold" {
		t.Errorf("expected different normalized name for clarendon, have %s", n)
	}
	n = NormalizeFontname("Go Bold", xfont.StyleNormal, xfont.WeightBold)
	if n != "go_bold" {
		t.Errorf("expected weight not to be appended twice, have %s", n)
	}
}

func TestRegisterTypeCase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	reg := NewRegistry()
	sf, err := font.Decode(font.TrueType, goregular.TTF)
	require.NoError(t, err)
	tc, err := sf.PrepareCase(12, 72)
	require.NoError(t, err)
	assert.True(t, reg.Register(tc), "first registration should succeed")
	assert.True(t, reg.Register(tc), "registering the same font again is no conflict")
	assert.True(t, reg.Contains("go_regular"))
	//
	found, err := reg.TypeCase("go_regular", 12)
	require.NoError(t, err)
	assert.Same(t, tc, found)
	//
	other, err := font.Decode(font.TrueType, goregular.TTF)
	require.NoError(t, err)
	tc2, err := other.PrepareCase(12, 72)
	require.NoError(t, err)
	assert.False(t, reg.Register(tc2), "different font with same name should be refused")
}

func TestTypeCaseFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	reg := NewRegistry()
	tc, err := reg.TypeCase("cmr10", 10)
	if err == nil {
		t.Errorf("expected error for missing font")
	}
	if tc == nil || tc.ScalableFontParent() != font.FallbackFont() {
		t.Fatalf("expected fallback typecase to be returned")
	}
	again, _ := reg.TypeCase("cmr10", 10)
	if again != tc {
		t.Errorf("expected fallback typecase to be cached")
	}
}

func TestFontsWithPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	reg := NewRegistry()
	regular, err := font.Decode(font.TrueType, goregular.TTF)
	require.NoError(t, err)
	bold, err := font.Decode(font.TrueType, gobold.TTF)
	require.NoError(t, err)
	reg.StoreFont("go_regular", regular)
	reg.StoreFont("go_bold", bold)
	reg.StoreFont("cmr10", regular)
	assert.Equal(t, []string{"go_bold", "go_regular"}, reg.FontsWithPrefix("go"))
	assert.Empty(t, reg.FontsWithPrefix("xyz"))
	reg.LogFontList()
}
