// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package trip

import "time"

// Direction records which way along a line's two canonical route variants
// (upstream/downstream) a trip runs.
type Direction int

const (
	Upstream Direction = iota
	Downstream
)

// Trip is one scheduled run of a Route: a direction, the service calendar it
// runs under, and the alternating dwell/travel durations the stop times
// compiled to.
type Trip struct {
	Direction Direction
	Service   *Service
	Durations []time.Duration
}

// AvailableAt reports whether the trip's service runs on date.
func (t Trip) AvailableAt(date time.Time) bool {
	return t.Service.AvailableAt(date)
}

// Builder accumulates one trip's stop times before they are converted to the
// alternating duration list Schedule synthesis consumes.
type Builder struct {
	direction  Direction
	service    *Service
	arrivals   []time.Duration
	departures []time.Duration
}

// NewBuilder starts accumulating a trip for direction under service.
func NewBuilder(direction Direction, service *Service) *Builder {
	return &Builder{direction: direction, service: service}
}

// AddStop records one stop's arrival and departure offset from midnight.
func (b *Builder) AddStop(arrival, departure time.Duration) {
	b.arrivals = append(b.arrivals, arrival)
	b.departures = append(b.departures, departure)
}

// Build finalizes the accumulated stop times into a Trip. Durations
// alternate travel, dwell, travel, dwell, ..., starting with the time from
// midnight to the first arrival and ending with the last stop's dwell.
func (b *Builder) Build() Trip {
	durations := make([]time.Duration, 0, 2*len(b.arrivals))
	for i, arrival := range b.arrivals {
		if i == 0 {
			durations = append(durations, arrival)
		} else {
			durations = append(durations, arrival-b.departures[i-1])
		}
		durations = append(durations, b.departures[i]-arrival)
	}
	return Trip{Direction: b.direction, Service: b.service, Durations: durations}
}
