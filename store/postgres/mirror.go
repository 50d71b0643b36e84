// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package postgres mirrors a compiled dataset into Postgres tables shaped
// for ad-hoc SQL querying during development. It is never on the default
// compile path; a dataset's binary form, not this mirror, is what a client
// actually plays back.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patrickbr/gtfs2bin/geo"
	"github.com/patrickbr/gtfs2bin/line"
	"github.com/patrickbr/gtfs2bin/schedule"
	"github.com/patrickbr/gtfs2bin/storage"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS stations (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	lat  DOUBLE PRECISION NOT NULL,
	lon  DOUBLE PRECISION NOT NULL,
	kind SMALLINT NOT NULL
);

CREATE TABLE IF NOT EXISTS schedules (
	id                        INTEGER PRIMARY KEY,
	stop_duration_at_terminus INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS lines (
	id    SERIAL PRIMARY KEY,
	name  TEXT NOT NULL,
	color TEXT NOT NULL,
	kind  SMALLINT NOT NULL
);

CREATE TABLE IF NOT EXISTS departures (
	line_id        INTEGER NOT NULL REFERENCES lines(id) ON DELETE CASCADE,
	direction      SMALLINT NOT NULL,
	start_time     INTEGER NOT NULL,
	schedule_id    INTEGER NOT NULL REFERENCES schedules(id)
);
`

// Mirror opens a connection to dsn with pgx, creates the mirror schema if
// absent, and replaces its contents with dataset. The whole write runs in
// one transaction so a reader never sees a half-loaded mirror.
func Mirror(ctx context.Context, dsn string, dataset *storage.Dataset) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("postgres: connect: %w", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("postgres: create schema: %w", err)
	}

	if err := truncateAll(ctx, tx); err != nil {
		return err
	}
	if err := insertStations(ctx, tx, dataset.Stations); err != nil {
		return err
	}
	if err := insertSchedules(ctx, tx, dataset.Schedules); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, dataset.Lines); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func truncateAll(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `TRUNCATE departures, lines, schedules, stations RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("postgres: truncate: %w", err)
	}
	return nil
}

func insertStations(ctx context.Context, tx pgx.Tx, stations []line.Station) error {
	for i, s := range stations {
		lat, lon := geo.Unproject(s.Position)
		_, err := tx.Exec(ctx,
			`INSERT INTO stations (id, name, lat, lon, kind) VALUES ($1, $2, $3, $4, $5)`,
			i, s.Name, lat, lon, int(s.Kind))
		if err != nil {
			return fmt.Errorf("postgres: insert station %d: %w", i, err)
		}
	}
	return nil
}

func insertSchedules(ctx context.Context, tx pgx.Tx, schedules []schedule.Schedule) error {
	for i, s := range schedules {
		_, err := tx.Exec(ctx,
			`INSERT INTO schedules (id, stop_duration_at_terminus) VALUES ($1, $2)`,
			i, s.StopDurationAtTerminus)
		if err != nil {
			return fmt.Errorf("postgres: insert schedule %d: %w", i, err)
		}
	}
	return nil
}

func insertLines(ctx context.Context, tx pgx.Tx, lines []storage.Line) error {
	for _, l := range lines {
		var lineID int
		colorHex := fmt.Sprintf("#%02x%02x%02x", l.Color.R, l.Color.G, l.Color.B)
		err := tx.QueryRow(ctx,
			`INSERT INTO lines (name, color, kind) VALUES ($1, $2, $3) RETURNING id`,
			l.Name, colorHex, int(l.Kind)).Scan(&lineID)
		if err != nil {
			return fmt.Errorf("postgres: insert line %q: %w", l.Name, err)
		}

		for _, d := range l.Departures {
			_, err := tx.Exec(ctx,
				`INSERT INTO departures (line_id, direction, start_time, schedule_id) VALUES ($1, $2, $3, $4)`,
				lineID, int(d.Direction), d.StartTime, d.ScheduleIndex)
			if err != nil {
				return fmt.Errorf("postgres: insert departure for line %q: %w", l.Name, err)
			}
		}
	}
	return nil
}
