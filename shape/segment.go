// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package shape factors smoothed polylines into a pool of shared Segments so
// that lines whose paths overlap reuse geometry instead of duplicating it.
package shape

import "github.com/patrickbr/gtfs2bin/geo"

// Order records the direction a SegmentRef walks its Segment in.
type Order int

const (
	// Forward walks the segment's points in storage order.
	Forward Order = iota
	// Backward walks the segment's points in reverse.
	Backward
)

// Segment is a run of points shared by one or more shapes. Its identity is
// its index in a Pool's segment slice; it carries no id of its own.
type Segment struct {
	points []geo.Point
}

// NewSegment wraps points as a Segment, taking ownership of the slice.
func NewSegment(points []geo.Point) Segment {
	return Segment{points: points}
}

// Size returns the number of points in the segment.
func (s Segment) Size() int {
	return len(s.points)
}

// Points returns the segment's points in storage order.
func (s Segment) Points() []geo.Point {
	return s.points
}

// Split truncates s to its prefix [0,at) and returns the suffix [at,len) as
// a new Segment. Existing references to indices >= at inside s become
// invalid and must be renumbered by the caller.
func (s *Segment) Split(at int) Segment {
	tail := append([]geo.Point(nil), s.points[at:]...)
	s.points = s.points[:at:at]
	return Segment{points: tail}
}
