// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package placer

import (
	"testing"

	"github.com/patrickbr/gtfs2bin/geo"
	"github.com/patrickbr/gtfs2bin/location"
	"github.com/patrickbr/gtfs2bin/shape"
)

func line(n int, startLat, startLon, dLat, dLon float64) []geo.Point {
	out := make([]geo.Point, n)
	for i := 0; i < n; i++ {
		out[i] = geo.Project(startLat+float64(i)*dLat, startLon+float64(i)*dLon)
	}
	return out
}

func loc(id string, lat, lon float64) *location.Location {
	return &location.Location{ID: location.ID(id), Name: id, Position: geo.Project(lat, lon)}
}

func forwardShape(index int) shape.SegmentedShape {
	return shape.SegmentedShape{Refs: []shape.SegmentRef{{Index: index, Order: shape.Forward}}}
}

func backwardShape(index int) shape.SegmentedShape {
	return shape.SegmentedShape{Refs: []shape.SegmentRef{{Index: index, Order: shape.Backward}}}
}

// TestPlaceStopsInOrder places stops that sit squarely on the shape's own
// vertices, in walk order, and expects an exact positional match.
func TestPlaceStopsInOrder(t *testing.T) {
	points := line(5, 52.50, 13.30, 0.01, 0.01)
	segs := []shape.Segment{shape.NewSegment(points)}
	p := NewStopPlacer(segs)

	locations := []*location.Location{
		loc("a", 52.50, 13.30),
		loc("b", 52.52, 13.32),
		loc("c", 52.54, 13.34),
	}

	path, err := p.PlaceStops(forwardShape(0), locations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 1 {
		t.Fatalf("expected 1 path segment ref, got %d", len(path))
	}

	pool := p.Finish()
	nodes := path.Glue(pool.Segments)

	var stops []*location.Location
	for _, n := range nodes {
		if n.IsStop() {
			stops = append(stops, n.Location)
		}
	}
	if len(stops) != 3 || stops[0] != locations[0] || stops[1] != locations[1] || stops[2] != locations[2] {
		t.Fatalf("unexpected stop assignment: %v", stops)
	}
	if nodes[0].Location != locations[0] {
		t.Fatal("expected first stop to land on the shape's first vertex")
	}
}

// TestPlaceStopsReversedDirection places the same stops against the shape
// walked Backward, mirroring the opposite-direction variant of a line.
func TestPlaceStopsReversedDirection(t *testing.T) {
	points := line(5, 52.50, 13.30, 0.01, 0.01)
	segs := []shape.Segment{shape.NewSegment(points)}
	p := NewStopPlacer(segs)

	locations := []*location.Location{
		loc("c", 52.54, 13.34),
		loc("b", 52.52, 13.32),
		loc("a", 52.50, 13.30),
	}

	path, err := p.PlaceStops(backwardShape(0), locations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pool := p.Finish()
	nodes := path.Glue(pool.Segments)
	if nodes[0].Location != locations[0] {
		t.Fatal("expected the first walked node to be the first location in walk order")
	}
	if nodes[len(nodes)-1].Location != locations[len(locations)-1] {
		t.Fatal("expected the last walked node to be the last location in walk order")
	}
}

// TestPlaceStopsDuplicateVariantsReuseSegment checks that two placements
// with identical modifications against the same shape segment dedup onto
// the same path segment index.
func TestPlaceStopsDuplicateVariantsReuseSegment(t *testing.T) {
	points := line(4, 52.50, 13.30, 0.01, 0.01)
	segs := []shape.Segment{shape.NewSegment(points)}
	p := NewStopPlacer(segs)

	a, b := loc("a", 52.50, 13.30), loc("b", 52.53, 13.33)

	path1, err := p.PlaceStops(forwardShape(0), []*location.Location{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path2, err := p.PlaceStops(forwardShape(0), []*location.Location{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if path1[0].Index != path2[0].Index {
		t.Fatalf("expected identical placements to dedup onto the same path segment, got %d and %d",
			path1[0].Index, path2[0].Index)
	}
	if len(p.Finish().Segments) != 1 {
		t.Fatalf("expected a single deduped path segment, got %d", len(p.Finish().Segments))
	}
}

// TestPlaceStopsDistinctModificationsCreateVariants checks that two
// different stop assignments against the same shape segment do NOT dedup.
func TestPlaceStopsDistinctModificationsCreateVariants(t *testing.T) {
	points := line(4, 52.50, 13.30, 0.01, 0.01)
	segs := []shape.Segment{shape.NewSegment(points)}
	p := NewStopPlacer(segs)

	a, b, c := loc("a", 52.50, 13.30), loc("b", 52.53, 13.33), loc("c", 52.505, 13.305)

	path1, err := p.PlaceStops(forwardShape(0), []*location.Location{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path2, err := p.PlaceStops(forwardShape(0), []*location.Location{a, c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if path1[0].Index == path2[0].Index {
		t.Fatal("expected distinct stop assignments to produce distinct path segments")
	}
}

// TestPlaceStopsTooFewPoints exercises the duplicate-last-point padding
// path, when a shape has fewer vertices than a route has stops.
func TestPlaceStopsTooFewPoints(t *testing.T) {
	points := line(2, 52.50, 13.30, 0.01, 0.01)
	segs := []shape.Segment{shape.NewSegment(points)}
	p := NewStopPlacer(segs)

	locations := []*location.Location{
		loc("a", 52.50, 13.30),
		loc("b", 52.505, 13.305),
		loc("c", 52.51, 13.31),
	}

	path, err := p.PlaceStops(forwardShape(0), locations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pool := p.Finish()
	nodes := path.Glue(pool.Segments)
	if len(nodes) != 3 {
		t.Fatalf("expected the shape's 2 points plus 1 duplicate padding, got %d nodes", len(nodes))
	}

	var stops []*location.Location
	for _, n := range nodes {
		if n.IsStop() {
			stops = append(stops, n.Location)
		}
	}
	if len(stops) != 3 {
		t.Fatalf("expected every location to be placed, got %d", len(stops))
	}
}

// TestPlaceStopsLasso places a stop sequence along a path that loops at
// one end and returns along its outbound corridor, so a late stop lies as
// near the outbound leg as the inbound one, and expects every stop placed
// in path order.
func TestPlaceStopsLasso(t *testing.T) {
	// An out-and-back-with-loop path: straight out, small loop, straight
	// back along the same corridor; stops sit along the outbound leg, around
	// the loop, then along the inbound leg.
	var points []geo.Point
	points = append(points, line(4, 52.40, 13.20, 0.01, 0.00)...)     // outbound
	points = append(points, line(4, 52.43, 13.20, 0.00, 0.01)...)     // loop side A
	points = append(points, line(4, 52.43, 13.23, -0.01, 0.00)...)    // loop side B (back toward start lat)
	points = append(points, line(3, 52.41, 13.20, -0.005, -0.0001)...) // inbound, past the loop's start

	segs := []shape.Segment{shape.NewSegment(points)}
	p := NewStopPlacer(segs)

	locations := []*location.Location{
		loc("start", 52.40, 13.20),
		loc("mid-out", 52.415, 13.20),
		loc("loop", 52.43, 13.215),
		loc("mid-back", 52.415, 13.1999),
	}

	path, err := p.PlaceStops(forwardShape(0), locations)
	if err != nil {
		t.Fatalf("unexpected error placing lasso stops: %v", err)
	}

	pool := p.Finish()
	nodes := path.Glue(pool.Segments)

	var positions []int
	for i, n := range nodes {
		if n.IsStop() {
			positions = append(positions, i)
		}
	}
	if len(positions) != len(locations) {
		t.Fatalf("expected %d placed stops, got %d", len(locations), len(positions))
	}
	for i := 1; i < len(positions); i++ {
		if positions[i-1] >= positions[i] {
			t.Fatalf("expected strictly increasing placement order, got %v", positions)
		}
	}
}

// TestPlaceStopsUnplaceableIsRecoverable checks that stops assigned against
// an empty shape (no geometry at all to pad or place against) yield the
// recoverable UnplaceableStopsError rather than a panic.
func TestPlaceStopsUnplaceableIsRecoverable(t *testing.T) {
	p := NewStopPlacer(nil)

	locations := []*location.Location{loc("a", 52.50, 13.30)}

	_, err := p.PlaceStops(shape.SegmentedShape{}, locations)
	if err == nil {
		t.Fatal("expected an error placing a stop against an empty shape")
	}
	if _, ok := err.(*UnplaceableStopsError); !ok {
		t.Fatalf("expected *UnplaceableStopsError, got %T", err)
	}
}
