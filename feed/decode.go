// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/patrickbr/gtfs2bin/geo"
	"github.com/patrickbr/gtfs2bin/line"
	"github.com/patrickbr/gtfs2bin/location"
	"github.com/patrickbr/gtfs2bin/trip"
)

// required fetches a column that must be present and non-empty.
func required(get getter, fail func(string, error) error, name string) (string, error) {
	v, ok := get(name)
	if !ok || v == "" {
		return "", fail(name, fmt.Errorf("missing required field"))
	}
	return v, nil
}

func parseFloat(get getter, fail func(string, error) error, name string) (float64, error) {
	s, err := required(get, fail, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fail(name, fmt.Errorf("not a number: %q", s))
	}
	return v, nil
}

func parseInt(get getter, fail func(string, error) error, name string) (int, error) {
	s, err := required(get, fail, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fail(name, fmt.Errorf("not an integer: %q", s))
	}
	return v, nil
}

// parseDate reads a GTFS-style YYYYMMDD date.
func parseDate(get getter, fail func(string, error) error, name string) (time.Time, error) {
	s, err := required(get, fail, name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}, fail(name, fmt.Errorf("not a date in YYYYMMDD form: %q", s))
	}
	return t, nil
}

// parseNumericBool reads a "0"/"1" boolean column.
func parseNumericBool(get getter, fail func(string, error) error, name string) (bool, error) {
	s, err := required(get, fail, name)
	if err != nil {
		return false, err
	}
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fail(name, fmt.Errorf("expected 0 or 1, got %q", s))
	}
}

// parseDuration reads an "H:MM:SS" or "HH:MM:SS" time-of-day column. Unlike
// time.ParseDuration, hours may run past 24 (a trip continuing after
// midnight uses the service day it started on), matching GTFS convention.
func parseDuration(get getter, fail func(string, error) error, name string) (time.Duration, error) {
	s, err := required(get, fail, name)
	if err != nil {
		return 0, err
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fail(name, fmt.Errorf("invalid time string: %q, expected H:MM:SS", s))
	}
	var seconds int64
	for _, part := range parts {
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, fail(name, fmt.Errorf("invalid time string: %q, invalid digit in %q", s, part))
		}
		seconds = seconds*60 + v
	}
	return time.Duration(seconds) * time.Second, nil
}

// parseColor reads a hex color, accepting both the "#rrggbb" form (this
// feed's own colors.txt) and the bare "rrggbb" form (GTFS's routes.txt
// route_color column), normalizing the latter before delegating to
// line.ParseColor.
func parseColor(get getter, fail func(string, error) error, name string) (line.Color, bool, error) {
	s, ok := get(name)
	if !ok || s == "" {
		return line.Color{}, false, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := line.ParseColor(s)
	if err != nil {
		return line.Color{}, false, fail(name, err)
	}
	return c, true, nil
}

func parseKind(get getter, fail func(string, error) error, name string) (line.Kind, error) {
	v, err := parseInt(get, fail, name)
	if err != nil {
		return 0, err
	}
	k, err := line.ParseKind(v)
	if err != nil {
		return 0, fail(name, err)
	}
	return k, nil
}

func parseLocationKind(get getter, fail func(string, error) error, name string) (location.Kind, error) {
	s, ok := get(name)
	if !ok || s == "" {
		return location.Stop, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fail(name, fmt.Errorf("not an integer: %q", s))
	}
	switch v {
	case 0:
		return location.Stop, nil
	case 1:
		return location.Station, nil
	case 2:
		return location.Entrance, nil
	case 3:
		return location.GenericNode, nil
	case 4:
		return location.BoardingArea, nil
	default:
		return 0, fail(name, fmt.Errorf("unknown location type of value: %d", v))
	}
}

func parseDirection(get getter, fail func(string, error) error, name string) (trip.Direction, error) {
	v, err := parseInt(get, fail, name)
	if err != nil {
		return 0, err
	}
	switch v {
	case 0:
		return trip.Upstream, nil
	case 1:
		return trip.Downstream, nil
	default:
		return 0, fail(name, fmt.Errorf("expected 0 or 1, got %d", v))
	}
}

func parsePosition(get getter, fail func(string, error) error, latName, lonName string) (geo.Point, error) {
	lat, err := parseFloat(get, fail, latName)
	if err != nil {
		return geo.Point{}, err
	}
	lon, err := parseFloat(get, fail, lonName)
	if err != nil {
		return geo.Point{}, err
	}
	return geo.Project(lat, lon), nil
}
