// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package schedule turns a trip's raw stop-time durations into a timing
// pattern shared across every trip whose rebalanced durations match,
// clamping dwell times to a minimum and redistributing the difference into
// neighboring travel time.
package schedule

import (
	"fmt"
	"strings"
)

const minimumStopDuration uint32 = 20
const maximumOffsetValue int32 = 25

// Config holds the two tunable thresholds schedule rebalancing uses:
// the minimum dwell time a stop is clamped up to, and the maximum amount
// a single driving segment's travel time may be shifted by one clamp.
// Changing either changes the compiled output, so a caller that cares
// about reproducibility across runs must hold a Config fixed.
type Config struct {
	MinimumStopDuration uint32
	MaximumOffset       int32
}

// DefaultConfig returns the 20s/25s thresholds distilled spec mandates.
func DefaultConfig() Config {
	return Config{MinimumStopDuration: minimumStopDuration, MaximumOffset: maximumOffsetValue}
}

// DrivingDuration is one stop's dwell time paired with the travel time to
// the following stop.
type DrivingDuration struct {
	Stopping uint32
	Driving  uint32
}

// Schedule is one distinct (dwell, travel) timing pattern. Two trips that
// reduce to an equal Schedule intern onto the same entry.
type Schedule struct {
	DrivingDurations       []DrivingDuration
	StopDurationAtTerminus uint32
}

// newSchedule groups seconds into (stopping, driving) pairs; any unpaired
// trailing value is the terminus stop's dwell time.
func newSchedule(seconds []uint32) Schedule {
	var driving []DrivingDuration
	i := 0
	for i+1 < len(seconds) {
		driving = append(driving, DrivingDuration{Stopping: seconds[i], Driving: seconds[i+1]})
		i += 2
	}
	var terminus uint32
	if i < len(seconds) {
		terminus = seconds[i]
	}
	return Schedule{DrivingDurations: driving, StopDurationAtTerminus: terminus}
}

// key is a canonical string encoding used to dedup schedules in a map,
// since Schedule itself is not comparable (it holds a slice).
func (s Schedule) key() string {
	var b strings.Builder
	for _, d := range s.DrivingDurations {
		fmt.Fprintf(&b, "%d,%d;", d.Stopping, d.Driving)
	}
	fmt.Fprintf(&b, "|%d", s.StopDurationAtTerminus)
	return b.String()
}

// adjustStopDurations clamps every dwell time (including the terminus) to
// minimumStopDuration, redistributing what each clamp adds into the
// surrounding travel times so the trip's total duration is preserved. It
// returns the resulting shift to the trip's start time.
//
// weights must have one entry per DrivingDurations entry: the geometric
// distance between the stop the segment starts at and the one it ends at,
// used to split an added dwell between its two neighboring travel segments
// in proportion to how much ground each one covers.
func (s *Schedule) adjustStopDurations(weights []float64, cfg Config) int32 {
	added := make([]uint32, len(s.DrivingDurations))
	for i := range s.DrivingDurations {
		var missing uint32
		if s.DrivingDurations[i].Stopping < cfg.MinimumStopDuration {
			missing = cfg.MinimumStopDuration - s.DrivingDurations[i].Stopping
		}
		s.DrivingDurations[i].Stopping += missing
		added[i] = missing
	}

	if s.StopDurationAtTerminus < cfg.MinimumStopDuration {
		s.StopDurationAtTerminus = cfg.MinimumStopDuration
	}

	before, after := -1, -1
	var offset, startTimeOffset int32

	for i, addedStopDuration := range added {
		before, after = after, i
		if addedStopDuration > 0 {
			offset, startTimeOffset = subtractStopDuration(
				s.DrivingDurations, weights, before, after, addedStopDuration, offset, startTimeOffset, cfg.MaximumOffset)
		}
	}
	return startTimeOffset
}

// subtractStopDuration folds one added dwell time back out of the trip's
// total duration, pushing it into the driving segment(s) adjacent to the
// stop it was added at.
func subtractStopDuration(
	durations []DrivingDuration, weights []float64,
	before, after int, addedStopDuration uint32,
	offset, startTimeOffset, maximumOffset int32,
) (int32, int32) {
	switch {
	case before < 0 && after < 0:
		panic("schedule: subtractStopDuration called with no driving segment on either side")
	case before < 0:
		startTimeOffset = -int32(addedStopDuration)
	case after < 0:
		// No driving segment follows; the terminus dwell absorbs its own
		// shortfall without shifting anything else.
	default:
		deltaMin := -maximumOffset - offset - int32(addedStopDuration)/2
		deltaMax := deltaMin + 2*maximumOffset

		factorBefore := (float64(durations[after].Driving) - float64(addedStopDuration)) * weights[before]
		factorAfter := float64(durations[before].Driving) * weights[after]
		totalWeight := weights[before] + weights[after]

		delta := int32((factorBefore - factorAfter) / totalWeight)
		if delta < deltaMin {
			delta = deltaMin
		}
		if delta > deltaMax {
			delta = deltaMax
		}

		durations[before].Driving = addDuration(durations[before].Driving, delta)
		durations[after].Driving = addDuration(durations[after].Driving, -delta-int32(addedStopDuration))
		offset += delta + int32(addedStopDuration)/2
	}
	return offset, startTimeOffset
}

func addDuration(duration uint32, delta int32) uint32 {
	v := int32(duration) + delta
	if v < 1 {
		v = 1
	}
	return uint32(v)
}
