// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package location

import (
	"testing"

	"github.com/patrickbr/gtfs2bin/geo"
)

func mainStationRecord() Record {
	return Record{ID: "1", Kind: Station, Name: "Main Station", Position: geo.Project(52.526, 13.369)}
}

func mainStationPlatformRecord() Record {
	return Record{ID: "2", Kind: Stop, ParentStation: "1", Name: "Main Station Platform 1", Position: geo.Project(52.526, 13.369)}
}

func TestImportStandaloneLocation(t *testing.T) {
	locations, err := Import([]Record{mainStationRecord()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locations) != 1 {
		t.Fatalf("expected 1 location, got %d", len(locations))
	}
	if locations["1"].Name != "Main Station" {
		t.Fatalf("unexpected name: %s", locations["1"].Name)
	}
}

func TestImportChildWithParent(t *testing.T) {
	locations, err := Import([]Record{mainStationRecord(), mainStationPlatformRecord()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locations))
	}
	if locations["2"] != locations["1"] {
		t.Fatalf("platform should be unified onto its parent station")
	}
}

func TestImportChildBeforeParent(t *testing.T) {
	locations, err := Import([]Record{mainStationPlatformRecord(), mainStationRecord()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(locations))
	}
	if locations["2"] != locations["1"] {
		t.Fatalf("platform should be unified onto its parent station after deferred retry")
	}
}

func TestImportBoardingAreaDeferredTwice(t *testing.T) {
	platform := mainStationPlatformRecord()
	boardingArea := Record{ID: "3", Kind: BoardingArea, ParentStation: "2", Name: "Platform 1 Boarding Area", Position: geo.Project(52.526, 13.369)}

	locations, err := Import([]Record{boardingArea, platform, mainStationRecord()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locations["3"] != locations["1"] {
		t.Fatalf("boarding area should resolve transitively through its platform to the station")
	}
}

func TestImportStationWithParentIsFatal(t *testing.T) {
	_, err := Import([]Record{{ID: "1", Kind: Station, ParentStation: "10", Name: "Main Station", Position: geo.Project(52.526, 13.369)}})
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*StationParentageError); !ok {
		t.Fatalf("expected StationParentageError, got %T: %v", err, err)
	}
}

func TestImportDanglingParentIsFatal(t *testing.T) {
	_, err := Import([]Record{mainStationPlatformRecord()})
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*DanglingReferenceError); !ok {
		t.Fatalf("expected DanglingReferenceError, got %T: %v", err, err)
	}
}
