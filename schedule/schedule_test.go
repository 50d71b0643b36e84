// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package schedule

import "testing"

func durationsOf(s Schedule) []uint32 {
	out := make([]uint32, 0, 2*len(s.DrivingDurations)+1)
	for _, d := range s.DrivingDurations {
		out = append(out, d.Stopping, d.Driving)
	}
	out = append(out, s.StopDurationAtTerminus)
	return out
}

func TestAdjustStopDurationsLeavesSufficientDwellsUnchanged(t *testing.T) {
	s := newSchedule([]uint32{30, 90, 48, 114, 36, 126, 30})
	weights := []float64{1, 1, 1}

	offset := s.adjustStopDurations(weights, DefaultConfig())

	if offset != 0 {
		t.Fatalf("expected no start time shift, got %d", offset)
	}
	want := []uint32{30, 90, 48, 114, 36, 126, 30}
	got := durationsOf(s)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected durations to be untouched: got %v, want %v", got, want)
		}
	}
}

func TestAdjustStopDurationsPadsShortDwellAtStart(t *testing.T) {
	// A single driving segment with no intermediate dwell preceding it:
	// the shortfall can only shift the trip's start time.
	s := newSchedule([]uint32{0, 120, 20})

	offset := s.adjustStopDurations([]float64{1}, DefaultConfig())

	if offset != -20 {
		t.Fatalf("expected the full missing dwell to shift start time, got %d", offset)
	}
	if s.DrivingDurations[0].Stopping != minimumStopDuration {
		t.Fatalf("expected the dwell to be clamped up to the minimum, got %d", s.DrivingDurations[0].Stopping)
	}
}

func TestAdjustStopDurationsClampsTerminusDwell(t *testing.T) {
	s := newSchedule([]uint32{30, 60, 5})

	s.adjustStopDurations([]float64{1}, DefaultConfig())

	if s.StopDurationAtTerminus != minimumStopDuration {
		t.Fatalf("expected terminus dwell clamped to %d, got %d", minimumStopDuration, s.StopDurationAtTerminus)
	}
}

func TestAdjustStopDurationsSplitsEvenlyWithEqualWeights(t *testing.T) {
	// An intermediate dwell with no stop time at all, flanked by two equal,
	// equally-weighted driving segments: the rebalance should split the
	// shortfall evenly between them rather than favoring either side.
	s := newSchedule([]uint32{0, 100, 0, 100, 20})

	s.adjustStopDurations([]float64{1, 1}, DefaultConfig())

	before := s.DrivingDurations[0].Driving
	after := s.DrivingDurations[1].Driving
	if before != after {
		t.Fatalf("expected an even split between equally-weighted neighbors, got %d and %d", before, after)
	}
	if before+after != 200-minimumStopDuration {
		t.Fatalf("expected total driving time reduced by exactly the added dwell, got %d", before+after)
	}
}

func TestAdjustStopDurationsNeverDropsDrivingBelowOne(t *testing.T) {
	// A rebalance whose unclamped delta would push both neighboring driving
	// segments negative must floor each at 1 second instead.
	s := newSchedule([]uint32{0, 3, 0, 5, 20})

	s.adjustStopDurations([]float64{1, 1}, DefaultConfig())

	if s.DrivingDurations[0].Driving != 1 {
		t.Fatalf("expected the first driving segment floored at 1, got %d", s.DrivingDurations[0].Driving)
	}
	if s.DrivingDurations[1].Driving != 1 {
		t.Fatalf("expected the second driving segment floored at 1, got %d", s.DrivingDurations[1].Driving)
	}
}

func TestSchedulerInternsIdenticalSchedules(t *testing.T) {
	s := NewScheduler()
	weights := []float64{1, 1}

	_, idA := s.Process(weights, []uint32{27000, 30, 90, 48, 114, 36})
	_, idB := s.Process(weights, []uint32{27600, 30, 90, 48, 114, 36})

	if idA != idB {
		t.Fatalf("expected identical rebalanced schedules to share one id, got %d and %d", idA, idB)
	}
	if len(s.Schedules()) != 1 {
		t.Fatalf("expected a single interned schedule, got %d", len(s.Schedules()))
	}
}

func TestSchedulerStartTimeShiftsWithOffset(t *testing.T) {
	s := NewScheduler()
	weights := []float64{1, 1}

	startA, idA := s.Process(weights, []uint32{27000, 30, 90, 48, 114, 36})
	startB, idB := s.Process(weights, []uint32{27600, 30, 90, 48, 114, 36})

	if idA != idB {
		t.Fatal("expected the same interned schedule for both trips")
	}
	if startB-startA != 600 {
		t.Fatalf("expected the 600s start time offset to carry through unchanged, got %d", startB-startA)
	}
}

func TestSchedulerDistinctDurationsCreateNewEntry(t *testing.T) {
	s := NewScheduler()
	weights := []float64{1, 1}

	_, idA := s.Process(weights, []uint32{27000, 30, 90, 48, 114, 36})
	_, idB := s.Process(weights, []uint32{27000, 30, 90, 48, 200, 36})

	if idA == idB {
		t.Fatal("expected distinct rebalanced schedules to intern separately")
	}
	if len(s.Schedules()) != 2 {
		t.Fatalf("expected 2 interned schedules, got %d", len(s.Schedules()))
	}
}

func TestSchedulesReturnedInAssignedOrder(t *testing.T) {
	s := NewScheduler()
	weights := []float64{1}

	_, firstID := s.Process(weights, []uint32{0, 30, 90, 30})
	_, secondID := s.Process(weights, []uint32{0, 30, 120, 30})

	schedules := s.Schedules()
	if firstID != 0 || secondID != 1 {
		t.Fatalf("expected ids assigned in first-seen order, got %d and %d", firstID, secondID)
	}
	if len(schedules) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(schedules))
	}
}
