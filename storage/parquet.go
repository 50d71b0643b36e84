// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package storage

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/patrickbr/gtfs2bin/geo"
	"github.com/patrickbr/gtfs2bin/line"
)

// parquetStation is the column schema WriteStationsParquet writes; an
// analyst-facing export, unprojected back to lat/lon since that is what a
// GIS tool or notebook expects, unlike the wire format's internal
// projected geo.Point.
type parquetStation struct {
	Name string  `parquet:"name"`
	Lat  float64 `parquet:"lat"`
	Lon  float64 `parquet:"lon"`
	Kind int32   `parquet:"kind"`
}

// WriteStationsParquet dumps dataset's station table as a column file, for
// ad-hoc analysis outside the client playback path. It is never part of
// the default compile pipeline.
func WriteStationsParquet(w io.Writer, stations []line.Station) error {
	rows := make([]parquetStation, len(stations))
	for i, s := range stations {
		lat, lon := geo.Unproject(s.Position)
		rows[i] = parquetStation{Name: s.Name, Lat: lat, Lon: lon, Kind: int32(s.Kind)}
	}

	writer := parquet.NewGenericWriter[parquetStation](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("storage: write station parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("storage: close station parquet writer: %w", err)
	}
	return nil
}
