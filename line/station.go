// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package line

import (
	"github.com/patrickbr/gtfs2bin/geo"
)

// StationKind is a station's display kind, derived from every line that
// serves it.
type StationKind int

const (
	BusStop StationKind = iota
	TramStop
	FerryPier
	Interchange
)

// StationKindFromLineKinds derives a station's display kind from the set
// of line kinds serving it. Any rail mode (heavy, suburban, or urban)
// outranks everything else and marks the station an Interchange; absent
// that, tram outranks bus, which outranks ferry. kinds must not be empty.
func StationKindFromLineKinds(kinds []Kind) StationKind {
	has := func(want Kind) bool {
		for _, k := range kinds {
			if k == want {
				return true
			}
		}
		return false
	}

	switch {
	case has(Railway) || has(SuburbanRailway) || has(UrbanRailway):
		return Interchange
	case has(Tram):
		return TramStop
	case has(Bus):
		return BusStop
	case has(WaterTransport):
		return FerryPier
	default:
		panic("line: no line kind to derive a station kind from")
	}
}

// Station is one placed, named, kinded stopping point in the output
// dataset.
type Station struct {
	Position geo.Point
	Name     string
	Kind     StationKind
}
