// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package line

import (
	"time"

	"github.com/patrickbr/gtfs2bin/trip"
)

// Line is one named, colored, kinded service with every distinct route
// (stop sequence and path) its trips run.
type Line struct {
	Name   string
	Color  Color
	Kind   Kind
	Routes []trip.Route
}

// New builds a Line with the kind's default color.
func New(name string, kind Kind, routes []trip.Route) Line {
	return Line{Name: name, Color: kind.DefaultColor(), Kind: kind, Routes: routes}
}

// WithColor returns a copy of l using color instead of its kind's default.
func (l Line) WithColor(color Color) Line {
	l.Color = color
	return l
}

// BestRoute returns the route with the most trips running on date,
// breaking ties by encounter order. It panics if l has no routes.
func (l Line) BestRoute(date time.Time) trip.Route {
	best := l.Routes[0]
	bestCount := best.NumTripsAt(date)
	for _, r := range l.Routes[1:] {
		if c := r.NumTripsAt(date); c > bestCount {
			best, bestCount = r, c
		}
	}
	return best
}
