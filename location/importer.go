// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package location

import (
	"fmt"

	"github.com/patrickbr/gtfs2bin/geo"
)

// Kind mirrors the feed's location_type column.
type Kind int

const (
	Stop Kind = iota
	Station
	Entrance
	GenericNode
	BoardingArea
)

// Record is a single row of the feed's stops table, as handed to Import.
type Record struct {
	ID            ID
	Kind          Kind
	ParentStation ID // empty if none
	Name          string
	Position      geo.Point
}

// StationParentageError is fatal: a Station row names a parent_station,
// which the format forbids.
type StationParentageError struct {
	Record Record
}

func (e *StationParentageError) Error() string {
	return fmt.Sprintf("forbidden parent %s for station %s", e.Record.ParentStation, e.Record.ID)
}

// DanglingReferenceError is fatal: a record's parent_station was never
// resolved, even after the deferred-retry passes.
type DanglingReferenceError struct {
	Record Record
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("parent %s for location %s not found", e.Record.ParentStation, e.Record.ID)
}

// Import resolves records into a table of Locations keyed by their own id,
// with children unified onto their parent's Location. Stops, entrances and
// generic nodes are retried once (to allow out-of-order parents); boarding
// areas are retried again afterwards, since they may reference a platform
// that was itself a deferred child.
func Import(records []Record) (map[ID]*Location, error) {
	locations := make(map[ID]*Location)
	var stopQueue, boardingAreaQueue []Record

	for _, record := range records {
		if ok, err := processRecord(record, locations); err != nil {
			return nil, err
		} else if !ok {
			switch record.Kind {
			case Station:
				return nil, &StationParentageError{Record: record}
			case BoardingArea:
				boardingAreaQueue = append(boardingAreaQueue, record)
			default:
				stopQueue = append(stopQueue, record)
			}
		}
	}

	for _, record := range append(stopQueue, boardingAreaQueue...) {
		if ok, err := processRecord(record, locations); err != nil {
			return nil, err
		} else if !ok {
			return nil, &DanglingReferenceError{Record: record}
		}
	}

	return locations, nil
}

// processRecord resolves a single record against locations already known.
// It returns ok=false (no error) when the record's parent isn't resolved
// yet, so the caller can defer it.
func processRecord(record Record, locations map[ID]*Location) (ok bool, err error) {
	if record.Kind == Station && record.ParentStation != "" {
		return false, &StationParentageError{Record: record}
	}
	if record.ParentStation == "" {
		locations[record.ID] = &Location{
			ID:       record.ID,
			Name:     record.Name,
			Position: record.Position,
		}
		return true, nil
	}

	parent, found := locations[record.ParentStation]
	if !found {
		return false, nil
	}
	locations[record.ID] = parent
	return true, nil
}
