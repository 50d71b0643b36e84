// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package schedule

import "github.com/patrickbr/gtfs2bin/placer"

// Scheduler interns the schedules produced across every trip of a line,
// so trips sharing a rebalanced timing pattern share one output entry.
type Scheduler struct {
	cfg       Config
	index     map[string]int
	schedules []Schedule
}

// NewScheduler returns an empty interning table using the default
// rebalancing thresholds.
func NewScheduler() *Scheduler {
	return NewSchedulerWithConfig(DefaultConfig())
}

// NewSchedulerWithConfig returns an empty interning table using cfg's
// rebalancing thresholds instead of the defaults.
func NewSchedulerWithConfig(cfg Config) *Scheduler {
	return &Scheduler{cfg: cfg, index: make(map[string]int)}
}

// Process reduces one trip's alternating travel/dwell duration list (in
// whole seconds, as produced by trip.Builder.Build and truncated to
// seconds) against weights into a start time and an interned schedule id.
// durations[0] is the time from midnight to the trip's first stop; the
// rest alternate dwell, travel, dwell, travel, ..., dwell, ending on the
// terminus dwell.
func (s *Scheduler) Process(weights []float64, durations []uint32) (uint32, int) {
	startTime := durations[0]
	sched := newSchedule(durations[1:])
	startTimeOffset := sched.adjustStopDurations(weights, s.cfg)

	key := sched.key()
	id, ok := s.index[key]
	if !ok {
		id = len(s.schedules)
		s.index[key] = id
		s.schedules = append(s.schedules, sched)
	}
	return uint32(int32(startTime) + startTimeOffset), id
}

// Schedules returns the interned schedules, in assigned-id order.
func (s *Scheduler) Schedules() []Schedule {
	return s.schedules
}

// SegmentWeights returns the geometric distance between each pair of
// consecutive stop nodes in nodes, in encounter order. Its length is one
// less than the number of stops, matching Process's expected weights.
func SegmentWeights(nodes []placer.Node) []float64 {
	var stops []placer.Node
	for _, n := range nodes {
		if n.IsStop() {
			stops = append(stops, n)
		}
	}
	if len(stops) < 2 {
		return nil
	}
	weights := make([]float64, 0, len(stops)-1)
	for i := 1; i < len(stops); i++ {
		weights = append(weights, stops[i-1].Position.Distance(stops[i].Position))
	}
	return weights
}
