// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/slices"

	flag "github.com/spf13/pflag"

	"github.com/patrickbr/gtfs2bin/diagnostics"
	"github.com/patrickbr/gtfs2bin/feed"
	"github.com/patrickbr/gtfs2bin/geo"
	"github.com/patrickbr/gtfs2bin/line"
	"github.com/patrickbr/gtfs2bin/location"
	"github.com/patrickbr/gtfs2bin/placer"
	"github.com/patrickbr/gtfs2bin/profile"
	"github.com/patrickbr/gtfs2bin/schedule"
	"github.com/patrickbr/gtfs2bin/shape"
	"github.com/patrickbr/gtfs2bin/smoother"
	"github.com/patrickbr/gtfs2bin/storage"
	"github.com/patrickbr/gtfs2bin/store/postgres"
	"github.com/patrickbr/gtfs2bin/trip"
)

func runCompile(args []string) error {
	flags := flag.NewFlagSet("compile", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n\n  gtfs2bin compile [<options>] <input feed>\n\nAllowed options:\n\n")
		flags.PrintDefaults()
	}

	output := flags.StringP("output", "o", "dataset.bin", "compiled dataset output path")
	referenceDateStr := flags.StringP("reference-date", "d", time.Now().Format("2006-01-02"), "reference date services are evaluated against (YYYY-MM-DD)")
	profileName := flags.StringP("profile", "P", "", "name of the agency/kind profile to select (default: the catalog's own default)")
	smoothingMode := flags.StringP("smoothing-mode", "S", "full", "shape smoothing mode: off, dedup, full")
	spikeAngle := flags.Float64("spike-angle", 0, "override the spike-removal angle threshold in degrees (0 keeps the default)")
	zigzagAngle := flags.Float64("zigzag-angle", 0, "override the zigzag-smoothing angle threshold in degrees (0 keeps the default)")
	minDwell := flags.Uint("min-dwell", 0, "override the minimum stop dwell time in seconds (0 keeps the default)")
	offsetCap := flags.Int("offset-cap", 0, "override the per-step schedule offset cap in seconds (0 keeps the default)")
	dumpGeoJSON := flags.String("dump-geojson", "", "write a GeoJSON dump of the segment pool to this path")
	checkConnectivity := flags.Bool("check-connectivity", false, "report the number of connected components in the segment pool")
	parquetDir := flags.String("parquet-dir", "", "write a station table Parquet dump into this directory")
	postgresDSN := flags.String("postgres-dsn", "", "mirror the compiled dataset into this Postgres database")
	flags.Parse(args)

	if flags.NArg() == 0 {
		flags.Usage()
		os.Exit(1)
	}
	input := flags.Arg(0)

	referenceDate, err := time.Parse("2006-01-02", *referenceDateStr)
	if err != nil {
		return fmt.Errorf("invalid --reference-date: %w", err)
	}

	var smoothMode smoother.Mode
	switch *smoothingMode {
	case "off":
		smoothMode = smoother.Off
	case "dedup":
		smoothMode = smoother.Deduplicate
	case "full":
		smoothMode = smoother.Full
	default:
		return fmt.Errorf("invalid --smoothing-mode %q, expected off, dedup or full", *smoothingMode)
	}
	thresholds := smoother.DefaultThresholds()
	if *spikeAngle > 0 {
		thresholds.SpikeAngleDegrees = *spikeAngle
	}
	if *zigzagAngle > 0 {
		thresholds.ZigzagAngleDegrees = *zigzagAngle
	}

	schedCfg := schedule.DefaultConfig()
	if *minDwell > 0 {
		schedCfg.MinimumStopDuration = uint32(*minDwell)
	}
	if *offsetCap > 0 {
		schedCfg.MaximumOffset = int32(*offsetCap)
	}

	fmt.Fprintf(os.Stderr, "Opening feed at '%s' ...", input)
	src, err := feed.Open(input)
	if err != nil {
		return err
	}
	defer src.Close()
	fmt.Fprintf(os.Stderr, " done.\n")

	dataset, shapePool, err := compile(src, referenceDate, smoothMode, thresholds, schedCfg, *profileName)
	if err != nil {
		return err
	}

	if *dumpGeoJSON != "" {
		fmt.Fprintf(os.Stderr, "Writing GeoJSON dump to '%s' ...", *dumpGeoJSON)
		f, err := os.Create(*dumpGeoJSON)
		if err != nil {
			return err
		}
		err = diagnostics.DumpGeoJSON(f, shapePool)
		f.Close()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, " done.\n")
	}

	if *checkConnectivity {
		components, err := diagnostics.ConnectedComponents(shapePool.Segments)
		if err != nil {
			return fmt.Errorf("connectivity check: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Segment pool has %d connected component(s).\n", components)
	}

	if *parquetDir != "" {
		if err := os.MkdirAll(*parquetDir, os.ModePerm); err != nil {
			return err
		}
		path := *parquetDir + "/stations.parquet"
		fmt.Fprintf(os.Stderr, "Writing station Parquet dump to '%s' ...", path)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = storage.WriteStationsParquet(f, dataset.Stations)
		f.Close()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, " done.\n")
	}

	if *postgresDSN != "" {
		fmt.Fprintf(os.Stderr, "Mirroring dataset into Postgres ...")
		if err := postgres.Mirror(context.Background(), *postgresDSN, dataset); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, " done.\n")
	}

	fmt.Fprintf(os.Stderr, "Writing compiled dataset to '%s' ...", *output)
	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	err = storage.Write(f, dataset)
	f.Close()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, " done.\n")

	fmt.Fprintf(os.Stderr, "%d stations, %d segments, %d schedules, %d lines.\n",
		len(dataset.Stations), len(dataset.Segments), len(dataset.Schedules), len(dataset.Lines))
	return nil
}

// compile runs the full core pipeline against src and reduces it to a
// Dataset, additionally returning the segment pool so the caller can run
// diagnostics against it without recomputing it.
func compile(
	src *feed.Source,
	referenceDate time.Time,
	smoothMode smoother.Mode,
	thresholds smoother.Thresholds,
	schedCfg schedule.Config,
	profileName string,
) (*storage.Dataset, *shape.Pool, error) {
	agencyNames := make(map[line.AgencyID]string)
	for row := range src.Agencies() {
		agencyNames[line.AgencyID(row.ID)] = row.Name
	}
	if err := src.Err(); err != nil {
		return nil, nil, fmt.Errorf("agencies: %w", err)
	}

	services := make(map[string]*trip.Service)
	for row := range src.Calendar() {
		services[row.ServiceID] = trip.NewService(row.Start, row.End, row.Weekdays)
	}
	if err := src.Err(); err != nil {
		return nil, nil, fmt.Errorf("calendar: %w", err)
	}
	for row := range src.CalendarDates() {
		s, ok := services[row.ServiceID]
		if !ok {
			s = trip.NewService(row.Date, row.Date, [7]bool{})
			services[row.ServiceID] = s
		}
		switch row.Exception {
		case feed.Added:
			s.Added[row.Date] = true
		case feed.Removed:
			s.Removed[row.Date] = true
		}
	}
	if err := src.Err(); err != nil {
		return nil, nil, fmt.Errorf("calendar_dates: %w", err)
	}

	var records []location.Record
	for row := range src.Stops() {
		records = append(records, row)
	}
	if err := src.Err(); err != nil {
		return nil, nil, fmt.Errorf("stops: %w", err)
	}
	locations, err := location.Import(records)
	if err != nil {
		return nil, nil, fmt.Errorf("stops: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Imported %d locations.\n", len(locations))

	rawShapes := make(map[string][]feed.ShapePointRow)
	var shapeIDs []string
	for row := range src.Shapes() {
		if _, ok := rawShapes[row.ShapeID]; !ok {
			shapeIDs = append(shapeIDs, row.ShapeID)
		}
		rawShapes[row.ShapeID] = append(rawShapes[row.ShapeID], row)
	}
	if err := src.Err(); err != nil {
		return nil, nil, fmt.Errorf("shapes: %w", err)
	}
	slices.Sort(shapeIDs)

	segmenter := shape.NewSegmenter()
	for _, id := range shapeIDs {
		points := pointsOf(rawShapes[id])
		smoothed := smoother.Smooth(points, smoothMode, thresholds)
		segmenter.Segment(shape.ShapeID(id), smoothed)
	}
	pool := segmenter.Finish()
	fmt.Fprintf(os.Stderr, "Segmented %d shapes into %d segments.\n", len(shapeIDs), pool.SegmentCount())

	stopPlacer := placer.NewStopPlacer(pool.Segments)

	importer := line.NewImporter()
	for row := range src.Routes() {
		importer.Add(row.ID, row.AgencyID, row.ShortName, row.Kind)
	}
	if err := src.Err(); err != nil {
		return nil, nil, fmt.Errorf("routes: %w", err)
	}
	for row := range src.Colors() {
		importer.AddColor(row.ShortName, row.Color)
	}
	if err := src.Err(); err != nil {
		return nil, nil, fmt.Errorf("colors: %w", err)
	}
	idMapping := importer.IDMapping()

	buffers := make([]*trip.RouteBuffer, importer.NumLines())
	for i := range buffers {
		buffers[i] = trip.NewRouteBuffer()
	}

	tripMeta := make(map[string]feed.TripRow)
	for row := range src.Trips() {
		tripMeta[row.ID] = row
	}
	if err := src.Err(); err != nil {
		return nil, nil, fmt.Errorf("trips: %w", err)
	}

	type stopTime struct {
		sequence  int
		stopID    location.ID
		arrival   time.Duration
		departure time.Duration
	}
	stopTimesByTrip := make(map[string][]stopTime)
	for row := range src.StopTimes() {
		stopTimesByTrip[row.TripID] = append(stopTimesByTrip[row.TripID], stopTime{
			sequence: row.Sequence, stopID: row.StopID, arrival: row.Arrival, departure: row.Departure,
		})
	}
	if err := src.Err(); err != nil {
		return nil, nil, fmt.Errorf("stop_times: %w", err)
	}

	var tripIDs []string
	for id := range tripMeta {
		tripIDs = append(tripIDs, id)
	}
	slices.Sort(tripIDs)

	skipped := 0
	for _, tripID := range tripIDs {
		meta := tripMeta[tripID]
		lineIdx, ok := idMapping[meta.RouteID]
		if !ok {
			skipped++
			continue
		}
		segmentedShape, ok := pool.Shapes[shape.ShapeID(meta.ShapeID)]
		if !ok {
			skipped++
			continue
		}
		service, ok := services[meta.ServiceID]
		if !ok {
			skipped++
			continue
		}

		times := stopTimesByTrip[tripID]
		slices.SortFunc(times, func(a, b stopTime) int { return cmp.Compare(a.sequence, b.sequence) })

		stopLocations := make([]*location.Location, 0, len(times))
		builder := trip.NewBuilder(meta.Direction, service)
		for _, st := range times {
			loc, ok := locations[st.stopID]
			if !ok {
				continue
			}
			stopLocations = append(stopLocations, loc)
			builder.AddStop(st.arrival, st.departure)
		}
		if len(stopLocations) == 0 {
			skipped++
			continue
		}

		variant := buffers[lineIdx].RetrieveOrCreateVariant(stopLocations, segmentedShape, meta.Direction)
		variant.AddTrip(builder.Build())
	}
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d trips with an unresolved route, shape, service or stop.\n", skipped)
	}

	routes := make([][]trip.Route, len(buffers))
	for i, buf := range buffers {
		rs, err := buf.IntoRoutes(stopPlacer)
		var unplaceable *placer.UnplaceableStopsError
		if errors.As(err, &unplaceable) {
			fmt.Fprintf(os.Stderr, "Dropping trips of line %d: %v\n", i, err)
		} else if err != nil {
			return nil, nil, fmt.Errorf("placing stops for line %d: %w", i, err)
		}
		routes[i] = rs
	}

	pathPool := stopPlacer.Finish()

	linesByAgency := importer.Finish(routes)

	catalog, err := profile.DefaultCatalog()
	if err != nil {
		return nil, nil, fmt.Errorf("profile catalog: %w", err)
	}
	var selected profile.Profile
	if profileName != "" {
		selected, err = catalog.Get(profileName)
		if err != nil {
			return nil, nil, err
		}
	} else if p, ok := catalog.Default(); ok {
		selected = p
	} else {
		selected = profile.Profile{Kind: profile.AllKinds}
	}
	lines := selected.Select(linesByAgency, agencyNames)
	fmt.Fprintf(os.Stderr, "Profile %q selected %d lines.\n", selected.Name, len(lines))

	linker := line.NewLinkerWithConfig(pathPool, schedCfg)
	linked := make([]line.LinkedLine, 0, len(lines))
	for _, l := range lines {
		ll, err := linker.LinkLine(l, referenceDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping line %q: %v\n", l.Name, err)
			continue
		}
		linked = append(linked, ll)
	}

	dataset := storage.Build(linker, linked)
	return dataset, &pool, nil
}

func pointsOf(rows []feed.ShapePointRow) []geo.Point {
	points := make([]geo.Point, len(rows))
	for i, r := range rows {
		points[i] = r.Position
	}
	return points
}
