// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package shape

import "github.com/patrickbr/gtfs2bin/geo"

// reuseOpportunity records that point at position pos of segment segmentIndex
// is a candidate continuation point for an overlapping run.
type reuseOpportunity struct {
	segmentIndex int
	pos          int
}

// reuseRange is an in-progress match against an existing segment: the half
// open position interval [start,end) walked in order.
type reuseRange struct {
	segmentIndex int
	order        Order
	start, end   int
}

// canStartReuse reports whether a and b are adjacent positions in the same
// segment, and if so the reuse range a new run into that segment would open.
func (a reuseOpportunity) canStartReuse(b reuseOpportunity) (reuseRange, bool) {
	if a.segmentIndex != b.segmentIndex {
		return reuseRange{}, false
	}
	if a.pos+1 == b.pos {
		return reuseRange{segmentIndex: a.segmentIndex, order: Forward, start: a.pos, end: b.pos + 1}, true
	}
	if a.pos == b.pos+1 {
		return reuseRange{segmentIndex: a.segmentIndex, order: Backward, start: b.pos, end: a.pos + 1}, true
	}
	return reuseRange{}, false
}

// extendReuse grows r by one position if o is the next point in r's order.
func (o reuseOpportunity) extendReuse(r *reuseRange) bool {
	if o.segmentIndex != r.segmentIndex {
		return false
	}
	switch r.order {
	case Forward:
		if o.pos == r.end {
			r.end++
			return true
		}
	case Backward:
		if o.pos+1 == r.start {
			r.start--
			return true
		}
	}
	return false
}

// accumulate is the "collecting fresh geometry" half of the segmenter's state
// machine: a point buffer plus the previous point's opportunities.
type accumulate struct {
	points        []geo.Point
	opportunities []reuseOpportunity
}

// segState is the segmenter's per-shape state: either accumulating new
// points or walking a reuse range against an existing segment.
type segState struct {
	reusing bool
	acc     accumulate
	reuse   reuseRange
}

func newSegState() *segState {
	return &segState{}
}

// process folds one point into the state machine. It returns the state to
// finalize (apply to the pool) when a transition occurred, or nil if the
// point extended the current state in place.
func (s *segState) process(point geo.Point, opportunities []reuseOpportunity) *segState {
	if !s.reusing {
		for _, start := range s.acc.opportunities {
			for _, o := range opportunities {
				if reuse, ok := start.canStartReuse(o); ok {
					finished := &segState{acc: accumulate{points: s.acc.points[:len(s.acc.points)-1]}}
					s.reusing = true
					s.reuse = reuse
					s.acc = accumulate{}
					return finished
				}
			}
		}
		s.acc.points = append(s.acc.points, point)
		s.acc.opportunities = opportunities
		return nil
	}

	for _, o := range opportunities {
		if o.extendReuse(&s.reuse) {
			return nil
		}
	}
	finished := &segState{reusing: true, reuse: s.reuse}
	s.reusing = false
	s.reuse = reuseRange{}
	s.acc = accumulate{points: []geo.Point{point}, opportunities: opportunities}
	return finished
}

// refresh updates an Accumulate state's tracked opportunities after the
// segmenter's pool has been mutated by applying a finished state; it is a
// no-op for a Reuse state.
func (s *segState) refresh(opportunities []reuseOpportunity) {
	if !s.reusing {
		s.acc.opportunities = opportunities
	}
}

// apply realizes a finished state against the segmenter: either cutting a
// brand new segment from the accumulated points, or finalizing (and possibly
// splitting) a reused range. Returns the SegmentRef to append to the shape
// being built, or (zero, false) for an empty accumulate at end-of-shape.
func (s *segState) apply(g *Segmenter, currentShape *SegmentedShape) (SegmentRef, bool) {
	if !s.reusing {
		if len(s.acc.points) == 0 {
			return SegmentRef{}, false
		}
		return g.createSegment(s.acc.points), true
	}
	return g.reuseSegment(s.reuse, currentShape), true
}

func (s *segState) applyTo(g *Segmenter, currentShape *SegmentedShape) {
	if ref, ok := s.apply(g, currentShape); ok {
		currentShape.Add(ref)
	}
}

// Segmenter factors a stream of (shape id, polyline) pairs into a shared
// Segment pool. Shapes must be fed in a fixed order for reproducible output.
type Segmenter struct {
	shapes        map[ShapeID]*SegmentedShape
	shapeOrder    []ShapeID
	segments      []Segment
	opportunities map[geo.Point][]reuseOpportunity
}

// NewSegmenter returns an empty Segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{
		shapes:        make(map[ShapeID]*SegmentedShape),
		opportunities: make(map[geo.Point][]reuseOpportunity),
	}
}

func (g *Segmenter) createSegment(points []geo.Point) SegmentRef {
	index := len(g.segments)
	pts := append([]geo.Point(nil), points...)
	for pos, p := range pts {
		g.opportunities[p] = append(g.opportunities[p], reuseOpportunity{segmentIndex: index, pos: pos})
	}
	g.segments = append(g.segments, NewSegment(pts))
	return SegmentRef{Index: index, Order: Forward}
}

func (g *Segmenter) updateReuseOpportunities(oldIndex, splitIndex int, splitPoints []geo.Point, difference int) {
	for pos, p := range splitPoints {
		opps := g.opportunities[p]
		for i := range opps {
			if opps[i].segmentIndex == oldIndex && opps[i].pos == pos+difference {
				opps[i] = reuseOpportunity{segmentIndex: splitIndex, pos: pos}
				break
			}
		}
	}
}

func (g *Segmenter) splitSegment(oldIndex, at int) int {
	splitIndex := len(g.segments)
	tail := g.segments[oldIndex].Split(at)
	g.updateReuseOpportunities(oldIndex, splitIndex, tail.Points(), at)
	g.segments = append(g.segments, tail)
	return splitIndex
}

func (g *Segmenter) reuseSegment(reuse reuseRange, currentShape *SegmentedShape) SegmentRef {
	var splits []int
	reusedIndex := reuse.segmentIndex

	if reuse.start > 0 {
		reusedIndex = g.splitSegment(reusedIndex, reuse.start)
		splits = append(splits, reusedIndex)
	}

	size := reuse.end - reuse.start
	if size < g.segments[reusedIndex].Size() {
		cutoff := g.splitSegment(reusedIndex, size)
		splits = append(splits, cutoff)
	}

	if len(splits) > 0 {
		for _, id := range g.shapeOrder {
			g.shapes[id].ApplySegmentSplit(reuse.segmentIndex, splits)
		}
		currentShape.ApplySegmentSplit(reuse.segmentIndex, splits)
	}

	return SegmentRef{Index: reusedIndex, Order: reuse.order}
}

func (g *Segmenter) opportunitiesAt(point geo.Point) []reuseOpportunity {
	return g.opportunities[point]
}

// Segment consumes a smoothed polyline under id, factoring it against every
// segment produced so far.
func (g *Segmenter) Segment(id ShapeID, points []geo.Point) {
	currentShape := &SegmentedShape{}
	state := newSegState()

	for _, point := range points {
		if task := state.process(point, g.opportunitiesAt(point)); task != nil {
			task.applyTo(g, currentShape)
			state.refresh(g.opportunitiesAt(point))
		}
	}
	state.applyTo(g, currentShape)

	g.shapes[id] = currentShape
	g.shapeOrder = append(g.shapeOrder, id)
}

// Finish closes out the segmenter and returns the completed Pool.
func (g *Segmenter) Finish() Pool {
	shapes := make(map[ShapeID]SegmentedShape, len(g.shapes))
	for id, s := range g.shapes {
		shapes[id] = *s
	}
	return Pool{Shapes: shapes, Segments: g.segments}
}
