// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package feed

import (
	"fmt"
	"iter"
	"sort"

	polyline "github.com/twpayne/go-polyline"

	"github.com/patrickbr/gtfs2bin/geo"
)

// ShapePointRow is one point of a shape, in final walk order.
type ShapePointRow struct {
	ShapeID  string
	Position geo.Point
	Sequence int
}

// Shapes iterates every shape's points, each shape's points sorted into
// sequence order. A shape may be supplied either as one row per point in
// shapes.txt (the standard GTFS layout) or as a single encoded Google
// polyline per shape in shape_polylines.txt (for feeds that ship compact
// shapes instead); when a shape id appears in both, the explicit points
// take precedence, since they carry whatever precision the feed actually
// measured rather than the polyline encoding's rounding.
func (s *Source) Shapes() iter.Seq[ShapePointRow] {
	return func(yield func(ShapePointRow) bool) {
		if s.err != nil {
			return
		}

		groups := make(map[string][]ShapePointRow)
		var order []string
		addGroup := func(id string) {
			if _, ok := groups[id]; !ok {
				order = append(order, id)
			}
		}

		if s.backend.exists("shapes.txt") {
			for row := range rows[ShapePointRow](s, "shapes.txt", decodeShapePoint) {
				addGroup(row.ShapeID)
				groups[row.ShapeID] = append(groups[row.ShapeID], row)
			}
			if s.err != nil {
				return
			}
		}

		if s.backend.exists("shape_polylines.txt") {
			for row := range rows[[]ShapePointRow](s, "shape_polylines.txt", decodeShapePolyline) {
				if len(row) == 0 {
					continue
				}
				if _, fromPoints := groups[row[0].ShapeID]; fromPoints {
					continue
				}
				addGroup(row[0].ShapeID)
				groups[row[0].ShapeID] = row
			}
			if s.err != nil {
				return
			}
		}

		for _, id := range order {
			points := groups[id]
			sort.SliceStable(points, func(i, j int) bool { return points[i].Sequence < points[j].Sequence })
			for _, p := range points {
				if !yield(p) {
					return
				}
			}
		}
	}
}

func decodeShapePoint(get getter, fail func(string, error) error) (ShapePointRow, error) {
	id, err := required(get, fail, "shape_id")
	if err != nil {
		return ShapePointRow{}, err
	}
	position, err := parsePosition(get, fail, "shape_pt_lat", "shape_pt_lon")
	if err != nil {
		return ShapePointRow{}, err
	}
	sequence, err := parseInt(get, fail, "shape_pt_sequence")
	if err != nil {
		return ShapePointRow{}, err
	}
	return ShapePointRow{ShapeID: id, Position: position, Sequence: sequence}, nil
}

// decodeShapePolyline decodes a whole shape's worth of points from one
// encoded-polyline row, returned together so the caller can group them
// under their shared shape id in one step.
func decodeShapePolyline(get getter, fail func(string, error) error) ([]ShapePointRow, error) {
	id, err := required(get, fail, "shape_id")
	if err != nil {
		return nil, err
	}
	encoded, err := required(get, fail, "shape_polyline")
	if err != nil {
		return nil, err
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fail("shape_polyline", fmt.Errorf("invalid polyline: %w", err))
	}

	points := make([]ShapePointRow, len(coords))
	for i, coord := range coords {
		points[i] = ShapePointRow{
			ShapeID:  id,
			Position: geo.Project(coord[0], coord[1]),
			Sequence: i,
		}
	}
	return points, nil
}
