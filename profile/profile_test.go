// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package profile

import (
	"testing"

	"github.com/patrickbr/gtfs2bin/line"
)

func TestDefaultCatalogParses(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: unexpected error: %v", err)
	}
	want := []string{
		"berlin-s", "berlin-u", "berlin-s+u", "berlin-s+u+metro",
		"berlin-no-r", "berlin", "berlin-brandenburg-no-r", "berlin-brandenburg",
	}
	got := c.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	def, ok := c.Default()
	if !ok || def.Name != "berlin-no-r" {
		t.Fatalf("Default() = %v, %v, want berlin-no-r", def, ok)
	}
}

func TestGetUnknownProfileIsError(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: unexpected error: %v", err)
	}
	if _, err := c.Get("does-not-exist"); err == nil {
		t.Fatal("expected an error for an unknown profile name")
	}
}

// TestBerlinBrandenburgDoesNotAliasBerlin guards against the typo this
// package's berlin-brandenburg and berlin-brandenburg-no-r profiles are
// known to have carried upstream: both must keep their own
// agency-unfiltered scope instead of silently aliasing the Berlin-only
// profiles of the same kind.
func TestBerlinBrandenburgDoesNotAliasBerlin(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: unexpected error: %v", err)
	}

	bb, err := c.Get("berlin-brandenburg")
	if err != nil {
		t.Fatalf("Get(berlin-brandenburg): unexpected error: %v", err)
	}
	if len(bb.Agencies) != 0 {
		t.Fatalf("berlin-brandenburg has agency filter %v, want none", bb.Agencies)
	}

	bbNoR, err := c.Get("berlin-brandenburg-no-r")
	if err != nil {
		t.Fatalf("Get(berlin-brandenburg-no-r): unexpected error: %v", err)
	}
	if len(bbNoR.Agencies) != 0 {
		t.Fatalf("berlin-brandenburg-no-r has agency filter %v, want none", bbNoR.Agencies)
	}
	if bbNoR.Kind != NoRailway {
		t.Fatalf("berlin-brandenburg-no-r kind = %v, want %v", bbNoR.Kind, NoRailway)
	}

	berlin, err := c.Get("berlin")
	if err != nil {
		t.Fatalf("Get(berlin): unexpected error: %v", err)
	}
	if len(berlin.Agencies) == 0 {
		t.Fatal("berlin must keep its agency allowlist, unlike berlin-brandenburg")
	}
}

func TestSelectFiltersByAgencyAndKind(t *testing.T) {
	bvg := line.AgencyID("bvg")
	other := line.AgencyID("other")
	lines := map[line.AgencyID][]line.Line{
		bvg: {
			line.New("S1", line.SuburbanRailway, nil),
			line.New("U1", line.UrbanRailway, nil),
			line.New("M41", line.Bus, nil),
			line.New("100", line.Bus, nil),
		},
		other: {
			line.New("RE1", line.Railway, nil),
		},
	}
	names := map[line.AgencyID]string{
		bvg:   "Berliner Verkehrsbetriebe",
		other: "DB Regio",
	}

	p := Profile{Agencies: []string{"Berliner Verkehrsbetriebe"}, Kind: Metro}
	got := p.Select(lines, names)

	want := []string{"S1", "U1", "M41"}
	if len(got) != len(want) {
		t.Fatalf("Select() = %v, want lines named %v", got, want)
	}
	for i, l := range got {
		if l.Name != want[i] {
			t.Fatalf("Select()[%d].Name = %q, want %q", i, l.Name, want[i])
		}
	}
}

func TestSelectWithNoAgenciesMatchesEveryAgency(t *testing.T) {
	bvg := line.AgencyID("bvg")
	other := line.AgencyID("other")
	lines := map[line.AgencyID][]line.Line{
		bvg:   {line.New("S1", line.SuburbanRailway, nil)},
		other: {line.New("RE1", line.Railway, nil)},
	}
	names := map[line.AgencyID]string{bvg: "Berliner Verkehrsbetriebe", other: "DB Regio"}

	p := Profile{Kind: AllKinds}
	got := p.Select(lines, names)
	if len(got) != 2 {
		t.Fatalf("Select() returned %d lines, want 2", len(got))
	}
}
