// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	flag "github.com/spf13/pflag"

	"github.com/patrickbr/gtfs2bin/storage"
)

// runServe serves a single compiled dataset for local client-side preview:
// the raw file for a player to fetch, a summary endpoint for a sanity
// check, and a one-line directory listing at the root.
func runServe(args []string) error {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := flags.StringP("addr", "a", ":8080", "address to listen on")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "gtfs2bin serve - serve a compiled dataset for local preview\n\nUsage:\n\n  gtfs2bin serve [options] <dataset.bin>\n\nOptions:\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}

	path := flags.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	dataset, err := storage.Read(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	name := filepath.Base(path)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD"},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "gtfs2bin preview server\n\n  GET /%s   the compiled dataset\n  GET /info  summary of its contents\n", name)
	})

	r.Get("/info", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			Stations  int `json:"stations"`
			Segments  int `json:"segments"`
			Schedules int `json:"schedules"`
			Lines     int `json:"lines"`
		}{
			Stations:  len(dataset.Stations),
			Segments:  len(dataset.Segments),
			Schedules: len(dataset.Schedules),
			Lines:     len(dataset.Lines),
		})
	})

	r.Get("/"+name, func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, path)
	})

	fmt.Fprintf(os.Stderr, "Serving %s on %s...\n", path, *addr)
	return http.ListenAndServe(*addr, r)
}
