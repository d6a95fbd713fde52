package fontloader

import (
	"testing"

	"github.com/npillmayer/mathfont/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestProvenanceOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	pt := NewProvenanceTable()
	sf := font.FallbackFont()
	var cases []*font.TypeCase
	for _, size := range []float64{10, 12, 14} {
		tc, err := sf.PrepareCase(size, 72)
		if err != nil {
			t.Fatal(err)
		}
		cases = append(cases, tc)
	}
	pt.RecordOrigin(cases[1], "cmr12")
	pt.RecordOrigin(cases[0], "cmr10")
	pt.RecordOrigin(cases[2], "cmr14")
	pt.RecordOrigin(cases[0], "overwritten")
	pt.RecordOrigin(nil, "null")
	if pt.Len() != 3 {
		t.Fatalf("expected 3 entries, have %d", pt.Len())
	}
	if name, _ := pt.LookupOrigin(cases[0]); name != "cmr10" {
		t.Errorf("expected first origin to be kept, is %q", name)
	}
	origins := pt.Origins()
	for i, expected := range []string{"cmr12", "cmr10", "cmr14"} {
		if origins[i].Name != expected {
			t.Errorf("expected entry #%d to be %s, is %s", i, expected, origins[i].Name)
		}
	}
	if _, ok := pt.LookupOrigin(&font.TypeCase{}); ok {
		t.Errorf("expected unknown typecase to have no origin")
	}
	pt.LogOrigins()
}
