// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package placer

import "github.com/patrickbr/gtfs2bin/shape"

// SegmentRef points at a path segment in a Pool, walked in the given order.
// Storage order inside a path segment is always canonical (forward); Order
// only affects how it is walked when glued into a full node sequence, the
// same convention shape.SegmentRef uses for geometry segments.
type SegmentRef struct {
	Index int
	Order shape.Order
}

// Path is a route's placed stop path expressed as an ordered sequence of
// path-segment references into a Pool.
type Path []SegmentRef

// Glue reconstructs the full node sequence by walking each reference
// against the owning pool's segments.
func (p Path) Glue(segments [][]Node) []Node {
	var out []Node
	for _, ref := range p {
		nodes := segments[ref.Index]
		if ref.Order == shape.Forward {
			out = append(out, nodes...)
		} else {
			for i := len(nodes) - 1; i >= 0; i-- {
				out = append(out, nodes[i])
			}
		}
	}
	return out
}

// Pool is the shared table of path segments StopPlacer dedups into; it is
// the dataset's exported node-sequence table.
type Pool struct {
	Segments [][]Node
}
