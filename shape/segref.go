// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package shape

import "github.com/patrickbr/gtfs2bin/geo"

// SegmentRef points at a Segment in a Pool, walked in the given Order.
type SegmentRef struct {
	Index int
	Order Order
}

// NewSegmentRef builds a SegmentRef.
func NewSegmentRef(index int, order Order) SegmentRef {
	return SegmentRef{Index: index, Order: order}
}

// SegmentedShape is a shape expressed as an ordered sequence of Segment
// references; gluing them back together (against the owning Pool's segment
// slice) reconstructs the original polyline.
type SegmentedShape struct {
	Refs []SegmentRef
}

// Add appends a reference to the end of the shape.
func (s *SegmentedShape) Add(ref SegmentRef) {
	s.Refs = append(s.Refs, ref)
}

// Equal reports structural equality: same reference sequence, same order.
// Used by RouteVariant matching to dedup identical paths.
func (s SegmentedShape) Equal(o SegmentedShape) bool {
	if len(s.Refs) != len(o.Refs) {
		return false
	}
	for i := range s.Refs {
		if s.Refs[i] != o.Refs[i] {
			return false
		}
	}
	return true
}

// ApplySegmentSplit rewrites every reference to segmentIndex, replacing it
// with the reference itself followed (or preceded, for Backward refs) by the
// newly split-off pieces in splits, in the order produced by the segmenter.
func (s *SegmentedShape) ApplySegmentSplit(segmentIndex int, splits []int) {
	var positions []int
	for i, ref := range s.Refs {
		if ref.Index == segmentIndex {
			positions = append(positions, i)
		}
	}

	inserted := 0
	for _, position := range positions {
		pos := position + inserted
		switch s.Refs[pos].Order {
		case Forward:
			insert := make([]SegmentRef, len(splits))
			for i, idx := range splits {
				insert[i] = SegmentRef{Index: idx, Order: Forward}
			}
			s.Refs = spliceSegmentRefs(s.Refs, pos+1, pos+1, insert)
		case Backward:
			insert := make([]SegmentRef, len(splits))
			for i, idx := range splits {
				insert[len(splits)-1-i] = SegmentRef{Index: idx, Order: Backward}
			}
			s.Refs = spliceSegmentRefs(s.Refs, pos, pos, insert)
		}
		inserted += len(splits)
	}
}

func spliceSegmentRefs(refs []SegmentRef, from, to int, insert []SegmentRef) []SegmentRef {
	out := make([]SegmentRef, 0, len(refs)-(to-from)+len(insert))
	out = append(out, refs[:from]...)
	out = append(out, insert...)
	out = append(out, refs[to:]...)
	return out
}

// Glue reconstructs the full polyline by walking each reference against the
// owning pool's segments.
func (s SegmentedShape) Glue(segments []Segment) geo.Polyline {
	var out geo.Polyline
	for _, ref := range s.Refs {
		pts := segments[ref.Index].Points()
		if ref.Order == Forward {
			out = append(out, pts...)
		} else {
			for i := len(pts) - 1; i >= 0; i-- {
				out = append(out, pts[i])
			}
		}
	}
	return out
}
