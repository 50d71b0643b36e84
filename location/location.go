// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package location resolves feed stop records into a flat table of Location
// handles, unifying stops with their parent stations.
package location

import "github.com/patrickbr/gtfs2bin/geo"

// ID identifies a Location; it mirrors the feed's own stop_id.
type ID string

// Location is a single board-able point: a platform, a station, or any
// other place a trip can stop at or pass through. Stops that share a parent
// station are unified onto that parent's Location.
type Location struct {
	ID       ID
	Name     string
	Position geo.Point
}
