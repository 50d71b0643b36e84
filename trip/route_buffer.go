// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package trip

import (
	"errors"

	"github.com/patrickbr/gtfs2bin/location"
	"github.com/patrickbr/gtfs2bin/placer"
	"github.com/patrickbr/gtfs2bin/shape"
)

// RouteBuffer accumulates the distinct route variants a line's trips
// resolve into, separately for each direction.
type RouteBuffer struct {
	Upstream, Downstream []*RouteVariant
}

// NewRouteBuffer returns an empty buffer.
func NewRouteBuffer() *RouteBuffer {
	return &RouteBuffer{}
}

// RetrieveOrCreateVariant returns the variant matching (locations, shape) in
// direction, creating one if none matches. Lookup is O(n) in the number of
// variants already seen for that direction and line.
func (b *RouteBuffer) RetrieveOrCreateVariant(locations []*location.Location, s shape.SegmentedShape, direction Direction) *RouteVariant {
	variants := &b.Upstream
	if direction == Downstream {
		variants = &b.Downstream
	}

	for _, v := range *variants {
		if v.Matches(locations, s) {
			return v
		}
	}

	v := NewRouteVariant(locations, s)
	*variants = append(*variants, v)
	return v
}

// IntoRoutes finalizes every variant (upstream first, then downstream) into
// a flat Route list. A variant whose stops cannot be placed is left out,
// with its trips; the routes of the other variants are then returned along
// with the joined *placer.UnplaceableStopsError values. Any other error is
// returned alone.
func (b *RouteBuffer) IntoRoutes(p Placer) ([]Route, error) {
	routes := make([]Route, 0, len(b.Upstream)+len(b.Downstream))
	var dropped []error
	for _, v := range append(append([]*RouteVariant{}, b.Upstream...), b.Downstream...) {
		route, err := v.Finalize(p)
		var unplaceable *placer.UnplaceableStopsError
		if errors.As(err, &unplaceable) {
			dropped = append(dropped, err)
			continue
		}
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, errors.Join(dropped...)
}
