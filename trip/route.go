// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package trip

import (
	"time"

	"github.com/patrickbr/gtfs2bin/placer"
)

// Route is a finalized, placed path for a line: a reference into the
// line's shared path-segment pool plus every trip that runs along it. The
// pool itself is owned by the Linker, which is what can turn Path back into
// a location sequence.
type Route struct {
	Path  placer.Path
	Trips []Trip
}

// NumTripsAt returns how many of the route's trips run on date.
func (r Route) NumTripsAt(date time.Time) int {
	n := 0
	for _, t := range r.Trips {
		if t.AvailableAt(date) {
			n++
		}
	}
	return n
}

// TripsAt returns the route's trips running on date, in encounter order.
func (r Route) TripsAt(date time.Time) []Trip {
	var out []Trip
	for _, t := range r.Trips {
		if t.AvailableAt(date) {
			out = append(out, t)
		}
	}
	return out
}
