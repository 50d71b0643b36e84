// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package placer assigns a line's scheduled stops onto the vertices of its
// segmented shape, producing a path of Waypoint/Stop nodes and deduplicating
// the resulting node-level path segments across every route that shares a
// stretch of geometry and the same stop placement.
package placer

import (
	"github.com/patrickbr/gtfs2bin/geo"
	"github.com/patrickbr/gtfs2bin/location"
)

// Node is one vertex of a placed path: either a Waypoint (geometry only) or
// a Stop bound to a Location. Location is nil for a Waypoint.
type Node struct {
	Position geo.Point
	Location *location.Location
}

// IsStop reports whether n is bound to a location.
func (n Node) IsStop() bool {
	return n.Location != nil
}
