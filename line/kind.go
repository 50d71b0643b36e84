// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package line groups trip routes into lines, derives each line's and
// station's display kind, and links a line's best-matching route against
// a reference date into the compact per-line record the output dataset
// stores.
package line

import "fmt"

// Kind is the mode of transport a line runs. Its values are this package's
// own enumeration, not route_type codes; ParseKind maps both base GTFS and
// extended route_type codes onto it.
type Kind int

const (
	Railway Kind = iota
	SuburbanRailway
	UrbanRailway
	Bus
	Tram
	WaterTransport
)

// ParseKind maps a route_type code onto a Kind. Both the base GTFS enum
// (0-4) and the extended codes used by German transit feeds (100, 109,
// 400, 700, 900, 1000) are accepted, since a feed may carry either.
func ParseKind(routeType int) (Kind, error) {
	switch routeType {
	case 2, 100:
		return Railway, nil
	case 109:
		return SuburbanRailway, nil
	case 1, 400:
		return UrbanRailway, nil
	case 3, 700:
		return Bus, nil
	case 0, 900:
		return Tram, nil
	case 4, 1000:
		return WaterTransport, nil
	default:
		return 0, fmt.Errorf("line: unknown route kind of value: %d", routeType)
	}
}

// DefaultColor returns the kind's fallback display color, used whenever a
// line has no explicit color override.
func (k Kind) DefaultColor() Color {
	switch k {
	case Railway:
		return Color{R: 227, G: 0, B: 27}
	case SuburbanRailway:
		return Color{R: 0, G: 114, B: 56}
	case UrbanRailway:
		return Color{R: 0, G: 100, B: 173}
	case Bus:
		return Color{R: 125, G: 23, B: 107}
	case Tram:
		return Color{R: 204, G: 10, B: 34}
	case WaterTransport:
		return Color{R: 0, G: 128, B: 186}
	default:
		panic(fmt.Sprintf("line: unknown kind %d", k))
	}
}

// hasColorOverride reports whether a line of this kind ever takes an
// operator-supplied color instead of its kind's default. Only the rail
// modes carry branded line colors in the source feed; bus/tram/ferry lines
// always use their kind's default.
func (k Kind) hasColorOverride() bool {
	switch k {
	case Railway, SuburbanRailway, UrbanRailway:
		return true
	default:
		return false
	}
}
