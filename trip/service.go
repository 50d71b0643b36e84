// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package trip holds the line-level data model between shape segmentation
// and schedule synthesis: services, route variants, routes and trips.
package trip

import "time"

// Service is a GTFS calendar entry: a regular weekday pattern bounded by a
// date range, with individual dates added or removed as exceptions.
type Service struct {
	Start, End time.Time
	Weekdays   [7]bool // Monday = 0
	Added      map[time.Time]bool
	Removed    map[time.Time]bool
}

// NewService returns a Service with empty exception sets.
func NewService(start, end time.Time, weekdays [7]bool) *Service {
	return &Service{
		Start:    start,
		End:      end,
		Weekdays: weekdays,
		Added:    make(map[time.Time]bool),
		Removed:  make(map[time.Time]bool),
	}
}

// AvailableAt reports whether the service runs on date, accounting for
// calendar_dates exceptions.
func (s *Service) AvailableAt(date time.Time) bool {
	if s.Added[date] {
		return true
	}
	return !s.Removed[date] && s.regularlyAvailableAt(date)
}

func (s *Service) regularlyAvailableAt(date time.Time) bool {
	day := (int(date.Weekday()) + 6) % 7 // Go's Weekday is Sunday=0; rotate to Monday=0
	return !date.Before(s.Start) && !date.After(s.End) && s.Weekdays[day]
}
