// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package line

import (
	"fmt"
	"time"

	"github.com/patrickbr/gtfs2bin/location"
	"github.com/patrickbr/gtfs2bin/placer"
	"github.com/patrickbr/gtfs2bin/schedule"
	"github.com/patrickbr/gtfs2bin/trip"
)

// Departure is one trip reduced to a direction, a start time, and the
// interned Schedule it runs to.
type Departure struct {
	Direction     trip.Direction
	StartTime     uint32
	ScheduleIndex int
}

// LinkedLine is a line reduced to its reference-date route: the path it
// runs (as a sequence of path-segment references into the Linker's shared
// segment pool), the stations it calls at along that path (as indices into
// the Linker's shared station table), and every trip departure running it
// on the reference date.
type LinkedLine struct {
	Name       string
	Color      Color
	Kind       Kind
	Path       placer.Path
	Stops      []int
	Departures []Departure
}

// Linker glues a compiled set of lines into the dataset's flat output
// tables: it glues each line's best route against the shared path-segment
// pool, linearizes the stations it touches into a single first-use-ordered
// table shared across every line, and interns the rebalanced timing
// pattern of every trip that runs.
type Linker struct {
	pool      placer.Pool
	stations  *stationLinearizer
	scheduler *schedule.Scheduler
}

// NewLinker starts a linker against the shared stop-placement pool every
// line's routes were placed into, rebalancing schedules with the default
// thresholds.
func NewLinker(pool placer.Pool) *Linker {
	return NewLinkerWithConfig(pool, schedule.DefaultConfig())
}

// NewLinkerWithConfig is NewLinker with caller-supplied schedule
// rebalancing thresholds.
func NewLinkerWithConfig(pool placer.Pool, cfg schedule.Config) *Linker {
	return &Linker{pool: pool, stations: newStationLinearizer(), scheduler: schedule.NewSchedulerWithConfig(cfg)}
}

// LinkLine picks l's best-trafficked route for date and reduces it to a
// LinkedLine. It is a recoverable error for the caller to drop the line if
// its best route has no stops to place trips against.
func (lk *Linker) LinkLine(l Line, date time.Time) (LinkedLine, error) {
	if len(l.Routes) == 0 {
		return LinkedLine{}, fmt.Errorf("line %q has no routes", l.Name)
	}
	route := l.BestRoute(date)
	nodes := route.Path.Glue(lk.pool.Segments)

	var stopNodes []placer.Node
	for _, n := range nodes {
		if n.IsStop() {
			stopNodes = append(stopNodes, n)
		}
	}
	if len(stopNodes) == 0 {
		return LinkedLine{}, fmt.Errorf("line %q: best route has no stops", l.Name)
	}
	var stops []int
	for _, n := range stopNodes {
		stops = append(stops, lk.stations.retrieve(n.Location, l.Kind))
	}

	weights := schedule.SegmentWeights(nodes)

	var departures []Departure
	for _, t := range route.TripsAt(date) {
		seconds := make([]uint32, len(t.Durations))
		for i, d := range t.Durations {
			seconds[i] = uint32(d / time.Second)
		}
		startTime, scheduleIndex := lk.scheduler.Process(weights, seconds)
		departures = append(departures, Departure{Direction: t.Direction, StartTime: startTime, ScheduleIndex: scheduleIndex})
	}

	return LinkedLine{
		Name: l.Name, Color: l.Color, Kind: l.Kind,
		Path: route.Path, Stops: stops, Departures: departures,
	}, nil
}

// Finish closes out the linker, returning the linearized station table (in
// first-use order, matching every Stops index produced above) and the
// interned schedule table (in first-seen order, matching every
// Departure.ScheduleIndex produced above).
func (lk *Linker) Finish() ([]Station, []schedule.Schedule) {
	return lk.stations.finish(), lk.scheduler.Schedules()
}

// Segments returns the shared path-segment pool every LinkedLine's Path
// indexes into.
func (lk *Linker) Segments() [][]placer.Node {
	return lk.pool.Segments
}

// StationIndex returns the linearized station index for id, if any
// LinkLine call has already registered a stop at that location. Every
// stop node inside a segment referenced by some LinkedLine's Path is
// guaranteed to have been registered, since LinkLine walks exactly those
// nodes while computing its Stops.
func (lk *Linker) StationIndex(id location.ID) (int, bool) {
	idx, ok := lk.stations.ids[id]
	return idx, ok
}

// stationLinearizer interns locations into a single first-use-ordered
// table, accumulating every line kind that touches each one so its
// station kind can be derived once, over the full set, at Finish.
type stationLinearizer struct {
	ids     map[location.ID]int
	entries []*stationEntry
}

type stationEntry struct {
	location *location.Location
	kinds    map[Kind]bool
}

func newStationLinearizer() *stationLinearizer {
	return &stationLinearizer{ids: make(map[location.ID]int)}
}

func (s *stationLinearizer) retrieve(loc *location.Location, kind Kind) int {
	if idx, ok := s.ids[loc.ID]; ok {
		s.entries[idx].kinds[kind] = true
		return idx
	}
	idx := len(s.entries)
	s.ids[loc.ID] = idx
	s.entries = append(s.entries, &stationEntry{location: loc, kinds: map[Kind]bool{kind: true}})
	return idx
}

func (s *stationLinearizer) finish() []Station {
	out := make([]Station, len(s.entries))
	for i, e := range s.entries {
		kinds := make([]Kind, 0, len(e.kinds))
		for k := range e.kinds {
			kinds = append(kinds, k)
		}
		out[i] = Station{Position: e.location.Position, Name: e.location.Name, Kind: StationKindFromLineKinds(kinds)}
	}
	return out
}
