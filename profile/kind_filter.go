// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package profile

import (
	"fmt"
	"strings"

	"github.com/patrickbr/gtfs2bin/line"
)

// KindFilter names one way a profile narrows the set of lines an agency
// match admits.
type KindFilter string

const (
	SuburbanRailwayOnly KindFilter = "suburban-railway"
	UrbanRailwayOnly    KindFilter = "urban-railway"
	RapidTransit        KindFilter = "rapid-transit"
	Metro               KindFilter = "metro"
	NoRailway           KindFilter = "no-railway"
	AllKinds            KindFilter = "all"
)

func parseKindFilter(s string) (KindFilter, error) {
	switch KindFilter(s) {
	case SuburbanRailwayOnly, UrbanRailwayOnly, RapidTransit, Metro, NoRailway, AllKinds:
		return KindFilter(s), nil
	default:
		return "", fmt.Errorf("profile: unknown kind filter %q", s)
	}
}

// matches reports whether l passes this filter. Metro additionally admits
// any line named with a leading "M", matching Berlin's metro bus numbering
// (M1, M41, ...) on top of its rapid-transit rail lines.
func (k KindFilter) matches(l line.Line) bool {
	isRapid := l.Kind == line.SuburbanRailway || l.Kind == line.UrbanRailway
	switch k {
	case SuburbanRailwayOnly:
		return l.Kind == line.SuburbanRailway
	case UrbanRailwayOnly:
		return l.Kind == line.UrbanRailway
	case RapidTransit:
		return isRapid
	case Metro:
		return isRapid || strings.HasPrefix(l.Name, "M")
	case NoRailway:
		return l.Kind != line.Railway
	case AllKinds:
		return true
	default:
		return false
	}
}
