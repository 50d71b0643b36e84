// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package profile selects the subset of a compiled network an output
// dataset should carry, by agency name and line kind. A profile is named
// (e.g. "berlin-s+u") and loaded from a JSON catalog document rather than
// hard-coded, so an operator can add a profile for a new region without a
// code change.
package profile

import (
	"cmp"

	"golang.org/x/exp/slices"

	"github.com/patrickbr/gtfs2bin/line"
)

// Profile is one named agency/kind filter. An empty Agencies list matches
// every agency (used by region-wide profiles that have nothing to narrow
// by operator).
type Profile struct {
	Name     string
	Agencies []string
	Kind     KindFilter
}

func (p Profile) matchesAgency(agencyName string) bool {
	if len(p.Agencies) == 0 {
		return true
	}
	for _, a := range p.Agencies {
		if a == agencyName {
			return true
		}
	}
	return false
}

// Select returns every line admitted by p, grouped by agency in lines and
// named by agencyNames. Agencies are visited in a fixed (sorted-by-id)
// order so the result is reproducible across runs regardless of map
// iteration order, and lines within an agency keep the order they arrived
// in from line.Importer.Finish.
func (p Profile) Select(lines map[line.AgencyID][]line.Line, agencyNames map[line.AgencyID]string) []line.Line {
	ids := make([]line.AgencyID, 0, len(lines))
	for id := range lines {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b line.AgencyID) int { return cmp.Compare(a, b) })

	var out []line.Line
	for _, id := range ids {
		if !p.matchesAgency(agencyNames[id]) {
			continue
		}
		for _, l := range lines[id] {
			if p.Kind.matches(l) {
				out = append(out, l)
			}
		}
	}
	return out
}
