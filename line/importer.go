// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package line

import "github.com/patrickbr/gtfs2bin/trip"

// AgencyID identifies the operator a line is grouped under in the output
// dataset.
type AgencyID string

// RouteID identifies one feed route record; several records (e.g. a line's
// two directions, or split multi-shape services) can dedup onto the same
// line.
type RouteID string

type incompleteLine struct {
	agencyID AgencyID
	name     string
	kind     Kind
	color    Color
	hasColor bool
}

// Importer deduplicates feed route records into distinct lines, keyed on
// (agency, name, kind) — the same line short name can legitimately recur
// across agencies or modes (a bus replacement service sharing a rail
// line's number, say) without merging.
type Importer struct {
	idMapping map[RouteID]int
	lines     []incompleteLine
}

// NewImporter starts an empty line importer.
func NewImporter() *Importer {
	return &Importer{idMapping: make(map[RouteID]int)}
}

// Add registers one feed route record, deduplicating it against lines
// already seen.
func (imp *Importer) Add(routeID RouteID, agencyID AgencyID, name string, kind Kind) {
	for i, l := range imp.lines {
		if l.agencyID == agencyID && l.name == name && l.kind == kind {
			imp.idMapping[routeID] = i
			return
		}
	}
	imp.idMapping[routeID] = len(imp.lines)
	imp.lines = append(imp.lines, incompleteLine{agencyID: agencyID, name: name, kind: kind})
}

// AddColor applies an operator-supplied color override to every
// already-seen line named name whose kind takes color overrides.
func (imp *Importer) AddColor(name string, color Color) {
	for i := range imp.lines {
		if imp.lines[i].name == name && imp.lines[i].kind.hasColorOverride() {
			imp.lines[i].color = color
			imp.lines[i].hasColor = true
		}
	}
}

// IDMapping returns the feed route id to line index mapping accumulated so
// far; the caller uses it to group each route record's trips by line
// before calling Finish.
func (imp *Importer) IDMapping() map[RouteID]int {
	return imp.idMapping
}

// NumLines returns how many distinct lines have been seen.
func (imp *Importer) NumLines() int {
	return len(imp.lines)
}

// Finish closes out the importer, pairing each deduplicated line with its
// routes (routes[i] must be the route list for the line at index i, as
// returned by IDMapping) and grouping the result by agency.
func (imp *Importer) Finish(routes [][]trip.Route) map[AgencyID][]Line {
	byAgency := make(map[AgencyID][]Line)
	for i, l := range imp.lines {
		color := l.kind.DefaultColor()
		if l.hasColor {
			color = l.color
		}
		byAgency[l.agencyID] = append(byAgency[l.agencyID], Line{
			Name: l.name, Color: color, Kind: l.kind, Routes: routes[i],
		})
	}
	return byAgency
}
