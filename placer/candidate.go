// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package placer

import (
	"github.com/patrickbr/gtfs2bin/geo"
	"github.com/patrickbr/gtfs2bin/location"
)

// candidate is a tentative placement of one location onto a path vertex.
type candidate struct {
	pos      int
	location *location.Location
	distance float64
}

func findNearest(points []geo.Point, lower, upper int, loc *location.Location) candidate {
	best := candidate{pos: lower, location: loc, distance: points[lower].Distance(loc.Position)}
	for i := lower + 1; i < upper; i++ {
		d := points[i].Distance(loc.Position)
		if d < best.distance {
			best = candidate{pos: i, location: loc, distance: d}
		}
	}
	return best
}

func totalDifference(c candidate, rest []candidate) float64 {
	sum := c.distance
	for _, r := range rest {
		sum += r.distance
	}
	return sum
}

// distributeAcross assigns each of locations to a strictly increasing
// position within points, recursively bringing earlier candidates forward
// (or pushing the current one back) when the greedy nearest-point choice
// would violate monotonicity.
func distributeAcross(points []geo.Point, locations []*location.Location) []candidate {
	candidates := make([]candidate, 0, len(locations))

	for i, loc := range locations {
		upper := len(points) + i - len(locations) + 1
		nearest := findNearest(points, i, upper, loc)

		if len(candidates) == 0 || candidates[len(candidates)-1].pos < nearest.pos {
			candidates = append(candidates, nearest)
			continue
		}

		at, lower := 0, 0
		for cut := len(candidates); cut >= 1; cut-- {
			candAt := cut - 1
			lo := candidates[candAt].pos + 1
			following := len(candidates) - cut
			if lo+following < nearest.pos {
				at, lower = cut, lo
				break
			}
		}

		broughtForwardLocations := make([]*location.Location, len(candidates)-at)
		for j, c := range candidates[at:] {
			broughtForwardLocations[j] = c.location
		}
		broughtForward := distributeAcross(points[lower:nearest.pos], broughtForwardLocations)
		for j := range broughtForward {
			broughtForward[j].pos += lower
		}

		behind := findNearest(points, candidates[len(candidates)-1].pos+1, upper, loc)

		if totalDifference(nearest, broughtForward) <= totalDifference(behind, candidates[at:]) {
			candidates = append(candidates[:at], broughtForward...)
			candidates = append(candidates, nearest)
		} else {
			candidates = append(candidates, behind)
		}
	}

	return candidates
}
