// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package diagnostics renders ancillary views of a compiled network for
// human inspection: a GeoJSON dump of the segment pool for loading into a
// map viewer, and a connectivity check over the same pool to catch a
// segmenter bug before it reaches the output container.
package diagnostics

import (
	"encoding/json"
	"io"

	"github.com/paulmach/go.geojson"

	"github.com/patrickbr/gtfs2bin/geo"
	"github.com/patrickbr/gtfs2bin/shape"
)

// DumpGeoJSON writes every segment in pool as a LineString feature, one per
// segment, with its pool index attached so a segment can be cross-referenced
// against a line's path during manual inspection.
func DumpGeoJSON(w io.Writer, pool *shape.Pool) error {
	fc := geojson.NewFeatureCollection()
	for i, seg := range pool.Segments {
		points := seg.Points()
		coords := make([][]float64, len(points))
		for j, p := range points {
			lat, lon := geo.Unproject(p)
			coords[j] = []float64{lon, lat}
		}
		feature := geojson.NewLineStringFeature(coords)
		feature.SetProperty("segment_index", i)
		feature.SetProperty("size", seg.Size())
		fc.AddFeature(feature)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	var raw json.RawMessage = data
	return enc.Encode(raw)
}
