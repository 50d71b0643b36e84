// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package trip

import (
	"github.com/patrickbr/gtfs2bin/location"
	"github.com/patrickbr/gtfs2bin/placer"
	"github.com/patrickbr/gtfs2bin/shape"
)

// Placer turns a SegmentedShape plus an ordered stop list into a placed
// path. Implemented by the placer package; accepted here as an interface so
// trip does not depend on stop-placement internals.
type Placer interface {
	PlaceStops(shape shape.SegmentedShape, locations []*location.Location) (placer.Path, error)
}

// RouteVariant is one distinct (stop sequence, path) pairing observed for a
// line in one direction. Every trip sharing that pairing attaches here.
type RouteVariant struct {
	locations []*location.Location
	shape     shape.SegmentedShape
	trips     []Trip
}

// NewRouteVariant starts a variant for the given stop sequence and path.
func NewRouteVariant(locations []*location.Location, s shape.SegmentedShape) *RouteVariant {
	return &RouteVariant{locations: locations, shape: s}
}

// Matches reports whether locations and shape are the same sequence,
// respectively the same structural path, as this variant's.
func (v *RouteVariant) Matches(locations []*location.Location, s shape.SegmentedShape) bool {
	if len(v.locations) != len(locations) {
		return false
	}
	for i := range v.locations {
		if v.locations[i] != locations[i] {
			return false
		}
	}
	return v.shape.Equal(s)
}

// AddTrip attaches a trip to this variant.
func (v *RouteVariant) AddTrip(t Trip) {
	v.trips = append(v.trips, t)
}

// Finalize places stops against the variant's shape, producing a Route.
func (v *RouteVariant) Finalize(p Placer) (Route, error) {
	path, err := p.PlaceStops(v.shape, v.locations)
	if err != nil {
		return Route{}, err
	}
	return Route{Path: path, Trips: v.trips}, nil
}
