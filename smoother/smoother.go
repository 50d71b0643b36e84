// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package smoother cleans a raw projected polyline before it reaches the
// segmenter: it deduplicates consecutive-equal points, removes GPS spikes,
// and smooths the zigzags that come from feeds round-tripping through
// intermediate tools.
package smoother

import "github.com/patrickbr/gtfs2bin/geo"

// Mode selects how aggressively Smooth cleans a polyline.
type Mode int

const (
	// Off leaves the polyline untouched.
	Off Mode = iota
	// Deduplicate removes consecutive equal points only.
	Deduplicate
	// Full runs dedup, spike removal and zigzag smoothing.
	Full
)

const (
	spikeAngleDegrees   = 120.0
	zigzagAngleDegrees  = 20.0
	degreesToRadiansFac = 3.141592653589793 / 180.0
)

// Thresholds holds the two tunable angles the Full mode uses. Zero-value
// Thresholds resolves to the spec defaults via DefaultThresholds.
type Thresholds struct {
	SpikeAngleDegrees  float64
	ZigzagAngleDegrees float64
}

// DefaultThresholds returns the 120°/20° thresholds distilled spec §4.1
// mandates for reproducible segmentation.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SpikeAngleDegrees:  spikeAngleDegrees,
		ZigzagAngleDegrees: zigzagAngleDegrees,
	}
}

// Smooth cleans points according to mode, preserving the first and last
// vertex. It streams points one at a time through a small append-only
// buffer, exactly mirroring the distilled spec's state machine.
func Smooth(points []geo.Point, mode Mode, thresholds Thresholds) geo.Polyline {
	if thresholds.SpikeAngleDegrees == 0 {
		thresholds.SpikeAngleDegrees = spikeAngleDegrees
	}
	if thresholds.ZigzagAngleDegrees == 0 {
		thresholds.ZigzagAngleDegrees = zigzagAngleDegrees
	}
	s := &state{mode: mode, thresholds: thresholds}
	for _, p := range points {
		s.add(p)
	}
	return s.points
}

type state struct {
	mode       Mode
	thresholds Thresholds
	points     geo.Polyline
}

func (s *state) add(p geo.Point) {
	s.points = append(s.points, p)

	switch s.mode {
	case Off:
		return
	case Deduplicate:
		s.dedup()
	case Full:
		if s.dedup() {
			return
		}
		if s.removeSpike() {
			s.dedup()
		}
		for s.smoothZigzag() {
		}
	}
}

// dedup drops the just-added point if it repeats the previous one.
func (s *state) dedup() bool {
	n := len(s.points)
	if n >= 2 && s.points[n-2].Equal(s.points[n-1]) {
		s.points = s.points[:n-1]
		return true
	}
	return false
}

// removeSpike drops the middle point of the last three if the direction
// reverses sharply (a GPS glitch).
func (s *state) removeSpike() bool {
	n := len(s.points)
	if n < 3 {
		return false
	}
	spikeAngle := s.thresholds.SpikeAngleDegrees * degreesToRadiansFac
	before := s.points[n-2].Sub(s.points[n-3])
	after := s.points[n-1].Sub(s.points[n-2])
	if before.Angle(after) > spikeAngle {
		s.points = append(s.points[:n-2], s.points[n-1])
		return true
	}
	return false
}

// smoothZigzag merges the third-from-last point into the midpoint of the
// offending "b" vector when the path doubles back on itself.
func (s *state) smoothZigzag() bool {
	n := len(s.points)
	if n < 4 {
		return false
	}
	zigzagAngle := s.thresholds.ZigzagAngleDegrees * degreesToRadiansFac
	a := s.points[n-3].Sub(s.points[n-4])
	b := s.points[n-2].Sub(s.points[n-3])
	c := s.points[n-1].Sub(s.points[n-2])

	alpha := a.Angle(b)
	beta := b.Angle(c)
	gamma := a.Angle(c)

	if abs(alpha+beta-gamma) > zigzagAngle {
		s.points[n-3] = s.points[n-3].Add(b.Scale(0.5))
		s.points = append(s.points[:n-2], s.points[n-1])
		return true
	}
	return false
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
