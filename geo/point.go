// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package geo holds the projected-plane point type the core operates on,
// plus the fixed web-Mercator projection used at the feed boundary.
package geo

import "math"

// Point is a 2-D coordinate in the projected plane. The core never looks at
// latitude/longitude directly; Project/Unproject are the only place the
// projection choice is visible.
type Point struct {
	X float64
	Y float64
}

// Sub returns the vector from o to p.
func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y}
}

// Add returns p translated by the vector v.
func (p Point) Add(v Point) Point {
	return Point{p.X + v.X, p.Y + v.Y}
}

// Scale returns v scaled by f.
func (p Point) Scale(f float64) Point {
	return Point{p.X * f, p.Y * f}
}

// Norm returns the Euclidean length of p treated as a vector.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Dot returns the dot product of p and o.
func (p Point) Dot(o Point) float64 {
	return p.X*o.X + p.Y*o.Y
}

// Perp returns the 2-D perpendicular (z-component of the 3-D cross product)
// of p and o.
func (p Point) Perp(o Point) float64 {
	return p.X*o.Y - p.Y*o.X
}

// Angle returns the unsigned angle in radians between the vectors p and o.
func (p Point) Angle(o Point) float64 {
	dot := p.Dot(o)
	perp := p.Perp(o)
	return math.Atan2(math.Abs(perp), dot)
}

// Distance returns the Euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	return p.Sub(o).Norm()
}

// Equal reports whether p and o are exactly equal (used by the smoother's
// dedup rule, which operates on already-projected, already-quantized
// points).
func (p Point) Equal(o Point) bool {
	return p.X == o.X && p.Y == o.Y
}

// Polyline is a finite ordered sequence of points.
type Polyline []Point
