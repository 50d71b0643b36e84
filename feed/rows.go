// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package feed

import (
	"fmt"
	"iter"
	"time"

	"github.com/patrickbr/gtfs2bin/line"
	"github.com/patrickbr/gtfs2bin/location"
	"github.com/patrickbr/gtfs2bin/trip"
)

// Source is a feed opened by Open. Each method drains one logical table as
// a lazily-decoded row sequence; range it to completion (or break early)
// and then call Err to check whether decoding succeeded.
type Source struct {
	backend backend
	err     error
}

// Err returns the first decoding or I/O error encountered by any table
// this Source has produced, or nil. Call it after fully ranging a table's
// sequence (or after breaking out early, if the caller means to abandon
// the Source).
func (s *Source) Err() error {
	return s.err
}

// Close releases the underlying file handle or archive.
func (s *Source) Close() error {
	return s.backend.close()
}

// AgencyRow is one row of agency.txt.
type AgencyRow struct {
	ID   string
	Name string
}

// Agencies iterates agency.txt.
func (s *Source) Agencies() iter.Seq[AgencyRow] {
	return rows[AgencyRow](s, "agency.txt", func(get getter, fail func(string, error) error) (AgencyRow, error) {
		id, err := required(get, fail, "agency_id")
		if err != nil {
			return AgencyRow{}, err
		}
		name, err := required(get, fail, "agency_name")
		if err != nil {
			return AgencyRow{}, err
		}
		return AgencyRow{ID: id, Name: name}, nil
	})
}

// CalendarRow is one row of calendar.txt.
type CalendarRow struct {
	ServiceID string
	Start, End time.Time
	Weekdays  [7]bool // Monday = 0, matching trip.Service
}

// Calendar iterates calendar.txt.
func (s *Source) Calendar() iter.Seq[CalendarRow] {
	weekdayColumns := [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	return rows[CalendarRow](s, "calendar.txt", func(get getter, fail func(string, error) error) (CalendarRow, error) {
		serviceID, err := required(get, fail, "service_id")
		if err != nil {
			return CalendarRow{}, err
		}
		start, err := parseDate(get, fail, "start_date")
		if err != nil {
			return CalendarRow{}, err
		}
		end, err := parseDate(get, fail, "end_date")
		if err != nil {
			return CalendarRow{}, err
		}
		var weekdays [7]bool
		for i, column := range weekdayColumns {
			v, err := parseNumericBool(get, fail, column)
			if err != nil {
				return CalendarRow{}, err
			}
			weekdays[i] = v
		}
		return CalendarRow{ServiceID: serviceID, Start: start, End: end, Weekdays: weekdays}, nil
	})
}

// Exception is a calendar_dates.txt exception_type.
type Exception int

const (
	Added Exception = iota
	Removed
)

// CalendarDateRow is one row of calendar_dates.txt.
type CalendarDateRow struct {
	ServiceID string
	Date      time.Time
	Exception Exception
}

// CalendarDates iterates calendar_dates.txt.
func (s *Source) CalendarDates() iter.Seq[CalendarDateRow] {
	return rows[CalendarDateRow](s, "calendar_dates.txt", func(get getter, fail func(string, error) error) (CalendarDateRow, error) {
		serviceID, err := required(get, fail, "service_id")
		if err != nil {
			return CalendarDateRow{}, err
		}
		date, err := parseDate(get, fail, "date")
		if err != nil {
			return CalendarDateRow{}, err
		}
		v, err := parseInt(get, fail, "exception_type")
		if err != nil {
			return CalendarDateRow{}, err
		}
		var exception Exception
		switch v {
		case 1:
			exception = Added
		case 2:
			exception = Removed
		default:
			return CalendarDateRow{}, fail("exception_type", fmt.Errorf("expected 1 or 2, got %d", v))
		}
		return CalendarDateRow{ServiceID: serviceID, Date: date, Exception: exception}, nil
	})
}

// RouteRow is one row of routes.txt. Color and HasColor are only populated
// from routes.txt's own route_color column; a feed that splits color into
// a separate colors.txt leaves HasColor false here and is picked up by
// Colors instead.
type RouteRow struct {
	ID        line.RouteID
	AgencyID  line.AgencyID
	ShortName string
	Kind      line.Kind
	Color     line.Color
	HasColor  bool
}

// Routes iterates routes.txt.
func (s *Source) Routes() iter.Seq[RouteRow] {
	return rows[RouteRow](s, "routes.txt", func(get getter, fail func(string, error) error) (RouteRow, error) {
		id, err := required(get, fail, "route_id")
		if err != nil {
			return RouteRow{}, err
		}
		agencyID, _ := get("agency_id")
		shortName, err := required(get, fail, "route_short_name")
		if err != nil {
			return RouteRow{}, err
		}
		kind, err := parseKind(get, fail, "route_type")
		if err != nil {
			return RouteRow{}, err
		}
		color, hasColor, err := parseColor(get, fail, "route_color")
		if err != nil {
			return RouteRow{}, err
		}
		return RouteRow{
			ID: line.RouteID(id), AgencyID: line.AgencyID(agencyID), ShortName: shortName,
			Kind: kind, Color: color, HasColor: hasColor,
		}, nil
	})
}

// ColorRow is one row of the optional colors.txt.
type ColorRow struct {
	ShortName string
	Color     line.Color
}

// Colors iterates colors.txt when present. When the feed has no separate
// colors.txt, it yields route_color values embedded directly in
// routes.txt instead, so callers can always drive line.Importer.AddColor
// off this one sequence regardless of which layout the feed uses.
func (s *Source) Colors() iter.Seq[ColorRow] {
	if s.backend.exists("colors.txt") {
		return rows[ColorRow](s, "colors.txt", func(get getter, fail func(string, error) error) (ColorRow, error) {
			shortName, err := required(get, fail, "route_short_name")
			if err != nil {
				return ColorRow{}, err
			}
			color, hasColor, err := parseColor(get, fail, "route_color")
			if err != nil {
				return ColorRow{}, err
			}
			if !hasColor {
				return ColorRow{}, fail("route_color", fmt.Errorf("missing required field"))
			}
			return ColorRow{ShortName: shortName, Color: color}, nil
		})
	}

	return func(yield func(ColorRow) bool) {
		for route := range s.Routes() {
			if !route.HasColor {
				continue
			}
			if !yield(ColorRow{ShortName: route.ShortName, Color: route.Color}) {
				return
			}
		}
	}
}

// StopRow is one row of stops.txt. It is exactly the shape location.Import
// consumes, so a feed importer can pass Stops rows to it directly.
type StopRow = location.Record

// Stops iterates stops.txt.
func (s *Source) Stops() iter.Seq[StopRow] {
	return rows[StopRow](s, "stops.txt", func(get getter, fail func(string, error) error) (StopRow, error) {
		id, err := required(get, fail, "stop_id")
		if err != nil {
			return StopRow{}, err
		}
		name, err := required(get, fail, "stop_name")
		if err != nil {
			return StopRow{}, err
		}
		position, err := parsePosition(get, fail, "stop_lat", "stop_lon")
		if err != nil {
			return StopRow{}, err
		}
		kind, err := parseLocationKind(get, fail, "location_type")
		if err != nil {
			return StopRow{}, err
		}
		parent, _ := get("parent_station")
		return StopRow{
			ID: location.ID(id), Kind: kind, ParentStation: location.ID(parent),
			Name: name, Position: position,
		}, nil
	})
}

// TripRow is one row of trips.txt.
type TripRow struct {
	ID        string
	RouteID   line.RouteID
	ServiceID string
	ShapeID   string
	Direction trip.Direction
}

// Trips iterates trips.txt.
func (s *Source) Trips() iter.Seq[TripRow] {
	return rows[TripRow](s, "trips.txt", func(get getter, fail func(string, error) error) (TripRow, error) {
		id, err := required(get, fail, "trip_id")
		if err != nil {
			return TripRow{}, err
		}
		routeID, err := required(get, fail, "route_id")
		if err != nil {
			return TripRow{}, err
		}
		serviceID, err := required(get, fail, "service_id")
		if err != nil {
			return TripRow{}, err
		}
		shapeID, err := required(get, fail, "shape_id")
		if err != nil {
			return TripRow{}, err
		}
		direction, err := parseDirection(get, fail, "direction_id")
		if err != nil {
			return TripRow{}, err
		}
		return TripRow{
			ID: id, RouteID: line.RouteID(routeID), ServiceID: serviceID,
			ShapeID: shapeID, Direction: direction,
		}, nil
	})
}

// StopTimeRow is one row of stop_times.txt.
type StopTimeRow struct {
	TripID    string
	StopID    location.ID
	Sequence  int
	Arrival   time.Duration
	Departure time.Duration
}

// StopTimes iterates stop_times.txt.
func (s *Source) StopTimes() iter.Seq[StopTimeRow] {
	return rows[StopTimeRow](s, "stop_times.txt", func(get getter, fail func(string, error) error) (StopTimeRow, error) {
		tripID, err := required(get, fail, "trip_id")
		if err != nil {
			return StopTimeRow{}, err
		}
		stopID, err := required(get, fail, "stop_id")
		if err != nil {
			return StopTimeRow{}, err
		}
		sequence, err := parseInt(get, fail, "stop_sequence")
		if err != nil {
			return StopTimeRow{}, err
		}
		arrival, err := parseDuration(get, fail, "arrival_time")
		if err != nil {
			return StopTimeRow{}, err
		}
		departure, err := parseDuration(get, fail, "departure_time")
		if err != nil {
			return StopTimeRow{}, err
		}
		return StopTimeRow{
			TripID: tripID, StopID: location.ID(stopID), Sequence: sequence,
			Arrival: arrival, Departure: departure,
		}, nil
	})
}
