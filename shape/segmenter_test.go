// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package shape

import (
	"testing"

	"github.com/patrickbr/gtfs2bin/geo"
)

func projectAll(latLon ...float64) []geo.Point {
	out := make([]geo.Point, 0, len(latLon)/2)
	for i := 0; i < len(latLon); i += 2 {
		out = append(out, geo.Project(latLon[i], latLon[i+1]))
	}
	return out
}

func reversed(points []geo.Point) []geo.Point {
	out := make([]geo.Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

func assertRefs(t *testing.T, label string, got []SegmentRef, want []SegmentRef) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: ref count mismatch: got %v, want %v", label, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%s: ref %d mismatch: got %v, want %v", label, i, got[i], want[i])
		}
	}
}

func assertGluesTo(t *testing.T, label string, pool Pool, id ShapeID, want []geo.Point) {
	t.Helper()
	got := pool.Shapes[id].Glue(pool.Segments)
	if len(got) != len(want) {
		t.Fatalf("%s: glued length mismatch: got %d, want %d", label, len(got), len(want))
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			t.Fatalf("%s: glued point %d mismatch: got %v, want %v", label, i, got[i], want[i])
		}
	}
}

var nollendorfplatzInnsbruckerPlatz = projectAll(
	52.500, 13.354, 52.496, 13.343, 52.489, 13.340, 52.483, 13.342, 52.478, 13.343,
)

func TestSegmentSingleShape(t *testing.T) {
	g := NewSegmenter()
	g.Segment("u4::nollendorfplatz_innsbrucker_platz", nollendorfplatzInnsbruckerPlatz)
	pool := g.Finish()

	if pool.SegmentCount() != 1 {
		t.Fatalf("expected 1 segment, got %d", pool.SegmentCount())
	}
	assertRefs(t, "shape", pool.Shapes["u4::nollendorfplatz_innsbrucker_platz"].Refs,
		[]SegmentRef{{Index: 0, Order: Forward}})
	assertGluesTo(t, "shape", pool, "u4::nollendorfplatz_innsbrucker_platz", nollendorfplatzInnsbruckerPlatz)
}

func TestSegmentReversedShape(t *testing.T) {
	g := NewSegmenter()
	g.Segment("u4::nollendorfplatz_innsbrucker_platz", nollendorfplatzInnsbruckerPlatz)
	g.Segment("u4::innsbrucker_platz_nollendorfplatz", reversed(nollendorfplatzInnsbruckerPlatz))
	pool := g.Finish()

	if pool.SegmentCount() != 1 {
		t.Fatalf("expected 1 segment (shared, reversed), got %d", pool.SegmentCount())
	}
	assertRefs(t, "forward", pool.Shapes["u4::nollendorfplatz_innsbrucker_platz"].Refs,
		[]SegmentRef{{Index: 0, Order: Forward}})
	assertRefs(t, "backward", pool.Shapes["u4::innsbrucker_platz_nollendorfplatz"].Refs,
		[]SegmentRef{{Index: 0, Order: Backward}})
	assertGluesTo(t, "backward", pool, "u4::innsbrucker_platz_nollendorfplatz", reversed(nollendorfplatzInnsbruckerPlatz))
}

var claraJaschkeStrHauptbahnhof = projectAll(52.525, 13.366, 52.526, 13.367)
var hauptbahnhofLandsbergerAlleePetersburgerStr = projectAll(
	52.526, 13.370, 52.529, 13.377, 52.530, 13.382, 52.532, 13.388, 52.536, 13.390, 52.538, 13.396,
	52.540, 13.401, 52.541, 13.406, 52.541, 13.412, 52.540, 13.420, 52.539, 13.424, 52.538, 13.428,
	52.536, 13.434, 52.534, 13.437, 52.532, 13.441, 52.528, 13.445, 52.527, 13.447,
)
var landsbergerAlleePetersburgerStrWarschauerStr = projectAll(
	52.522, 13.450, 52.519, 13.453, 52.516, 13.454, 52.512, 13.452, 52.508, 13.450, 52.505, 13.448,
)

func concat(pls ...[]geo.Point) []geo.Point {
	var out []geo.Point
	for _, pl := range pls {
		out = append(out, pl...)
	}
	return out
}

func TestSegmentSplitShape(t *testing.T) {
	claraJaschkeStrWarschauerStr := concat(
		claraJaschkeStrHauptbahnhof,
		hauptbahnhofLandsbergerAlleePetersburgerStr,
		landsbergerAlleePetersburgerStrWarschauerStr,
	)
	claraJaschkeStrLandsbergerAlleePetersburgerStr := concat(
		claraJaschkeStrHauptbahnhof,
		hauptbahnhofLandsbergerAlleePetersburgerStr,
	)

	g := NewSegmenter()
	g.Segment("tram_m10::clara_jaschke_str_warschauer_str", claraJaschkeStrWarschauerStr)
	g.Segment("tram_m10::clara_jaschke_str_landsberger_allee_petersburger_str", claraJaschkeStrLandsbergerAlleePetersburgerStr)
	pool := g.Finish()

	if pool.SegmentCount() != 2 {
		t.Fatalf("expected 2 segments, got %d", pool.SegmentCount())
	}
	assertRefs(t, "full", pool.Shapes["tram_m10::clara_jaschke_str_warschauer_str"].Refs,
		[]SegmentRef{{Index: 0, Order: Forward}, {Index: 1, Order: Forward}})
	assertRefs(t, "partial", pool.Shapes["tram_m10::clara_jaschke_str_landsberger_allee_petersburger_str"].Refs,
		[]SegmentRef{{Index: 0, Order: Forward}})
	assertGluesTo(t, "full", pool, "tram_m10::clara_jaschke_str_warschauer_str", claraJaschkeStrWarschauerStr)
	assertGluesTo(t, "partial", pool, "tram_m10::clara_jaschke_str_landsberger_allee_petersburger_str", claraJaschkeStrLandsbergerAlleePetersburgerStr)
}

var hauptbahnhofLueneburgerStr = projectAll(52.524, 13.363, 52.523, 13.362)

func TestSegmentReversedShapeWithDifferentEndpoint(t *testing.T) {
	claraJaschkeStrLandsbergerAlleePetersburgerStr := concat(
		claraJaschkeStrHauptbahnhof,
		hauptbahnhofLandsbergerAlleePetersburgerStr,
	)
	landsbergerAlleePetersburgerStrLueneburgerStr := concat(
		reversed(hauptbahnhofLandsbergerAlleePetersburgerStr),
		hauptbahnhofLueneburgerStr,
	)

	g := NewSegmenter()
	g.Segment("tram_m10::clara_jaschke_str_landsberger_allee_petersburger_str", claraJaschkeStrLandsbergerAlleePetersburgerStr)
	g.Segment("tram_m10::landsberger_allee_petersburger_str_lueneburger_str", landsbergerAlleePetersburgerStrLueneburgerStr)
	pool := g.Finish()

	if pool.SegmentCount() != 3 {
		t.Fatalf("expected 3 segments, got %d", pool.SegmentCount())
	}
	assertRefs(t, "first", pool.Shapes["tram_m10::clara_jaschke_str_landsberger_allee_petersburger_str"].Refs,
		[]SegmentRef{{Index: 0, Order: Forward}, {Index: 1, Order: Forward}})
	assertRefs(t, "second", pool.Shapes["tram_m10::landsberger_allee_petersburger_str_lueneburger_str"].Refs,
		[]SegmentRef{{Index: 1, Order: Backward}, {Index: 2, Order: Forward}})
	assertGluesTo(t, "first", pool, "tram_m10::clara_jaschke_str_landsberger_allee_petersburger_str", claraJaschkeStrLandsbergerAlleePetersburgerStr)
	assertGluesTo(t, "second", pool, "tram_m10::landsberger_allee_petersburger_str_lueneburger_str", landsbergerAlleePetersburgerStrLueneburgerStr)
}

var westkreuzOutbound = projectAll(
	52.502, 13.287, 52.502, 13.286, 52.501, 13.286, 52.501, 13.285, 52.501, 13.284,
	52.501, 13.283, 52.500, 13.282, 52.500, 13.281, 52.500, 13.280, 52.499, 13.279,
)
var westkreuzAnticlockwise = projectAll(
	52.499, 13.287, 52.499, 13.286, 52.500, 13.285, 52.500, 13.284, 52.501, 13.284,
	52.502, 13.283, 52.503, 13.283, 52.503, 13.282, 52.504, 13.282, 52.505, 13.282,
)
var westkreuzClockwise = projectAll(
	52.505, 13.282, 52.504, 13.282, 52.503, 13.282, 52.503, 13.283, 52.502, 13.283,
	52.501, 13.284, 52.500, 13.284, 52.500, 13.285, 52.499, 13.286, 52.499, 13.287,
)

func TestSegmentCrossing(t *testing.T) {
	g := NewSegmenter()
	g.Segment("s3::westkreuz_outbound", westkreuzOutbound)
	g.Segment("s41::westkreuz_anticlockwise", westkreuzAnticlockwise)
	pool := g.Finish()

	if pool.SegmentCount() != 2 {
		t.Fatalf("expected 2 segments, got %d", pool.SegmentCount())
	}
	assertRefs(t, "stadtbahn", pool.Shapes["s3::westkreuz_outbound"].Refs,
		[]SegmentRef{{Index: 0, Order: Forward}})
	assertRefs(t, "ringbahn", pool.Shapes["s41::westkreuz_anticlockwise"].Refs,
		[]SegmentRef{{Index: 1, Order: Forward}})
}

func TestSegmentCrossingWithReversed(t *testing.T) {
	westkreuzInbound := reversed(westkreuzOutbound)

	g := NewSegmenter()
	g.Segment("s3::westkreuz_outbound", westkreuzOutbound)
	g.Segment("s41::westkreuz_anticlockwise", westkreuzAnticlockwise)
	g.Segment("s3::westkreuz_inbound", westkreuzInbound)
	g.Segment("s42::westkreuz_clockwise", westkreuzClockwise)
	pool := g.Finish()

	if pool.SegmentCount() != 2 {
		t.Fatalf("expected 2 segments, got %d", pool.SegmentCount())
	}
	assertRefs(t, "outbound", pool.Shapes["s3::westkreuz_outbound"].Refs,
		[]SegmentRef{{Index: 0, Order: Forward}})
	assertRefs(t, "anticlockwise", pool.Shapes["s41::westkreuz_anticlockwise"].Refs,
		[]SegmentRef{{Index: 1, Order: Forward}})
	assertRefs(t, "inbound", pool.Shapes["s3::westkreuz_inbound"].Refs,
		[]SegmentRef{{Index: 0, Order: Backward}})
	assertRefs(t, "clockwise", pool.Shapes["s42::westkreuz_clockwise"].Refs,
		[]SegmentRef{{Index: 1, Order: Backward}})
}

func TestApplySegmentSplitForward(t *testing.T) {
	s := SegmentedShape{Refs: []SegmentRef{{Index: 0, Order: Forward}}}
	s.ApplySegmentSplit(0, []int{1, 2})
	assertRefs(t, "forward split", s.Refs, []SegmentRef{
		{Index: 0, Order: Forward}, {Index: 1, Order: Forward}, {Index: 2, Order: Forward},
	})
}

func TestApplySegmentSplitBackward(t *testing.T) {
	s := SegmentedShape{Refs: []SegmentRef{{Index: 0, Order: Backward}}}
	s.ApplySegmentSplit(0, []int{1, 2})
	assertRefs(t, "backward split", s.Refs, []SegmentRef{
		{Index: 2, Order: Backward}, {Index: 1, Order: Backward}, {Index: 0, Order: Backward},
	})
}

func TestApplySegmentSplitMultiple(t *testing.T) {
	s := SegmentedShape{Refs: []SegmentRef{{Index: 0, Order: Forward}, {Index: 0, Order: Forward}}}
	s.ApplySegmentSplit(0, []int{1})
	assertRefs(t, "multiple split", s.Refs, []SegmentRef{
		{Index: 0, Order: Forward}, {Index: 1, Order: Forward},
		{Index: 0, Order: Forward}, {Index: 1, Order: Forward},
	})
}
