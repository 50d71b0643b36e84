// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package storage serializes a compiled network into the flat, indexed
// tables a client-side playback consumer reads: stations, path segments,
// interned schedules, and lines. It is a pure output-side concern — the
// core pipeline never imports it — so the wire format can change without
// touching the compiler.
package storage

import (
	"github.com/patrickbr/gtfs2bin/line"
	"github.com/patrickbr/gtfs2bin/schedule"
	"github.com/patrickbr/gtfs2bin/shape"
	"github.com/patrickbr/gtfs2bin/trip"
)

// Node is one vertex of an output path segment: the linearized station it
// is bound to, or -1 if it is a waypoint with no stop.
type Node struct {
	StationIndex int32
}

// Segment is a deduplicated path segment, shared by reference from every
// Line whose Path walks it.
type Segment struct {
	Nodes []Node
}

// PathRef walks Segments[Index] forward, or end-to-start if Backward.
type PathRef struct {
	Index    int32
	Backward bool
}

// Departure is one scheduled train: the direction it runs, its start time
// (seconds since midnight on the compiled reference date), and the
// Schedules index of its interned timing pattern.
type Departure struct {
	Direction     trip.Direction
	StartTime     uint32
	ScheduleIndex int32
}

// Line is one output line: its display identity, the path it runs, and
// every train departing along it on the reference date.
type Line struct {
	Name       string
	Color      line.Color
	Kind       line.Kind
	Path       []PathRef
	Departures []Departure
}

// Dataset is the complete compiled output: lines[].path indices reference
// segments, segments[].nodes reference stations, and every Departure
// references schedules.
type Dataset struct {
	Stations  []line.Station
	Segments  []Segment
	Schedules []schedule.Schedule
	Lines     []Line
}

// Build reduces a Linker's accumulated LinkedLines into a Dataset. It
// keeps only the path segments actually referenced by some line, renumbered
// into first-use order, so an output never carries geometry no line walks.
func Build(lk *line.Linker, linked []line.LinkedLine) *Dataset {
	stations, schedules := lk.Finish()
	pool := lk.Segments()

	order := make([]int, 0, len(pool))
	renumber := make(map[int]int, len(pool))
	for _, l := range linked {
		for _, ref := range l.Path {
			if _, seen := renumber[ref.Index]; !seen {
				renumber[ref.Index] = len(order)
				order = append(order, ref.Index)
			}
		}
	}

	segments := make([]Segment, len(order))
	for newIndex, oldIndex := range order {
		nodes := pool[oldIndex]
		out := make([]Node, len(nodes))
		for i, n := range nodes {
			out[i] = Node{StationIndex: -1}
			if n.IsStop() {
				if idx, ok := lk.StationIndex(n.Location.ID); ok {
					out[i].StationIndex = int32(idx)
				}
			}
		}
		segments[newIndex] = Segment{Nodes: out}
	}

	lines := make([]Line, len(linked))
	for i, l := range linked {
		path := make([]PathRef, len(l.Path))
		for j, ref := range l.Path {
			path[j] = PathRef{Index: int32(renumber[ref.Index]), Backward: ref.Order == shape.Backward}
		}
		departures := make([]Departure, len(l.Departures))
		for j, d := range l.Departures {
			departures[j] = Departure{Direction: d.Direction, StartTime: d.StartTime, ScheduleIndex: int32(d.ScheduleIndex)}
		}
		lines[i] = Line{Name: l.Name, Color: l.Color, Kind: l.Kind, Path: path, Departures: departures}
	}

	return &Dataset{Stations: stations, Segments: segments, Schedules: schedules, Lines: lines}
}
