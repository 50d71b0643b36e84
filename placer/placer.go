// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package placer

import (
	"github.com/patrickbr/gtfs2bin/geo"
	"github.com/patrickbr/gtfs2bin/location"
	"github.com/patrickbr/gtfs2bin/shape"
)

// segmentSpecification is the per-geometry-segment accumulator for one
// placement run: which locations land on which of the segment's own
// (canonical, storage-order) positions, plus how many duplicate points were
// appended past its natural end.
type segmentSpecification struct {
	ref             shape.SegmentRef
	modifications   map[int]*location.Location
	additionalCount int
}

func newSpecification(ref shape.SegmentRef) *segmentSpecification {
	return &segmentSpecification{ref: ref, modifications: make(map[int]*location.Location)}
}

// equalModifications reports whether two specifications would dedup to the
// same path segment: same stop assignment and same duplicate-point count.
func equalModifications(a, b *segmentSpecification) bool {
	if a.additionalCount != b.additionalCount || len(a.modifications) != len(b.modifications) {
		return false
	}
	for pos, loc := range a.modifications {
		if b.modifications[pos] != loc {
			return false
		}
	}
	return true
}

// pointRef traces one vertex of the flattened, walk-order point list back
// to the specification and canonical segment position it came from.
type pointRef struct {
	specIndex  int
	segmentPos int
}

type retrievalEntry struct {
	spec  *segmentSpecification
	index int
}

// StopPlacer assigns stop locations onto a line's segmented shape and
// dedups the resulting node-level path segments across every call, so that
// two routes sharing a stretch of geometry with identical stop assignments
// reuse the same path segment in the output.
type StopPlacer struct {
	shapeSegments []shape.Segment
	pathSegments  [][]Node
	retrieval     map[int][]retrievalEntry
}

// NewStopPlacer returns a placer operating against the given geometry
// segment pool.
func NewStopPlacer(shapeSegments []shape.Segment) *StopPlacer {
	return &StopPlacer{
		shapeSegments: shapeSegments,
		retrieval:     make(map[int][]retrievalEntry),
	}
}

// PlaceStops assigns locations onto s's vertices and returns the resulting
// Path. It is a recoverable error for the caller to drop the offending trip
// if the stops cannot be placed in strictly increasing vertex order.
func (p *StopPlacer) PlaceStops(s shape.SegmentedShape, locations []*location.Location) (Path, error) {
	specs := make([]*segmentSpecification, len(s.Refs))
	for i, ref := range s.Refs {
		specs[i] = newSpecification(ref)
	}

	if len(specs) == 0 {
		if len(locations) == 0 {
			return Path{}, nil
		}
		return nil, &UnplaceableStopsError{StopCount: len(locations), PointCount: 0}
	}

	points, refs := p.pointsWithAtLeast(specs, len(locations))

	candidates := distributeAcross(points, locations)
	for i := 1; i < len(candidates); i++ {
		if candidates[i-1].pos >= candidates[i].pos {
			return nil, &UnplaceableStopsError{StopCount: len(locations), PointCount: len(points)}
		}
	}

	for _, c := range candidates {
		ref := refs[c.pos]
		specs[ref.specIndex].modifications[ref.segmentPos] = c.location
	}

	path := make(Path, 0, len(specs))
	for _, spec := range specs {
		index := p.findMatchingVariant(spec)
		if index < 0 {
			index = p.createVariant(spec)
		}
		path = append(path, SegmentRef{Index: index, Order: spec.ref.Order})
	}
	return path, nil
}

// flattenPoints walks every specification's geometry segment in the order
// the route uses it, returning the points in route-walk order alongside a
// parallel slice tracing each back to its owning specification and
// canonical (storage) position.
func (p *StopPlacer) flattenPoints(specs []*segmentSpecification) ([]geo.Point, []pointRef) {
	var points []geo.Point
	var refs []pointRef
	for specIndex, spec := range specs {
		pts := p.shapeSegments[spec.ref.Index].Points()
		n := len(pts)
		for walkPos := 0; walkPos < n; walkPos++ {
			storagePos := walkPos
			if spec.ref.Order == shape.Backward {
				storagePos = n - 1 - walkPos
			}
			points = append(points, pts[storagePos])
			refs = append(refs, pointRef{specIndex: specIndex, segmentPos: storagePos})
		}
	}
	return points, refs
}

// pointsWithAtLeast pads the flattened point list with copies of its last
// (walk-order) point until it has at least count entries, recording the
// pad count as additionalCount on the final specification. The padding
// always extends that segment's canonical tail, matching how its path
// segment's nodes are later built.
func (p *StopPlacer) pointsWithAtLeast(specs []*segmentSpecification, count int) ([]geo.Point, []pointRef) {
	points, refs := p.flattenPoints(specs)
	if count <= len(points) {
		return points, refs
	}

	additional := count - len(points)
	last := points[len(points)-1]
	lastSpecIndex := len(specs) - 1
	baseSegPos := p.shapeSegments[specs[lastSpecIndex].ref.Index].Size()

	for offset := 0; offset < additional; offset++ {
		points = append(points, last)
		refs = append(refs, pointRef{specIndex: lastSpecIndex, segmentPos: baseSegPos + offset})
	}
	specs[lastSpecIndex].additionalCount = additional
	return points, refs
}

func (p *StopPlacer) createPathSegment(spec *segmentSpecification) []Node {
	pts := p.shapeSegments[spec.ref.Index].Points()
	last := pts[len(pts)-1]

	nodes := make([]Node, 0, len(pts)+spec.additionalCount)
	for pos, pt := range pts {
		nodes = append(nodes, Node{Position: pt, Location: spec.modifications[pos]})
	}
	for offset := 0; offset < spec.additionalCount; offset++ {
		pos := len(pts) + offset
		nodes = append(nodes, Node{Position: last, Location: spec.modifications[pos]})
	}
	return nodes
}

func (p *StopPlacer) findMatchingVariant(spec *segmentSpecification) int {
	for _, entry := range p.retrieval[spec.ref.Index] {
		if equalModifications(entry.spec, spec) {
			return entry.index
		}
	}
	return -1
}

func (p *StopPlacer) createVariant(spec *segmentSpecification) int {
	index := len(p.pathSegments)
	p.pathSegments = append(p.pathSegments, p.createPathSegment(spec))
	p.retrieval[spec.ref.Index] = append(p.retrieval[spec.ref.Index], retrievalEntry{spec: spec, index: index})
	return index
}

// Finish closes out the placer and returns the completed path-segment Pool.
func (p *StopPlacer) Finish() Pool {
	return Pool{Segments: p.pathSegments}
}
