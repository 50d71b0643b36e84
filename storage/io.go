// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package storage

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Write encodes dataset as a gob stream and writes it to w through a gzip
// writer at the same compression discipline the teacher's own GTFS writer
// uses for its zip output (level 9 / best compression).
func Write(w io.Writer, dataset *Dataset) error {
	gz, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("storage: open gzip writer: %w", err)
	}
	if err := gob.NewEncoder(gz).Encode(dataset); err != nil {
		gz.Close()
		return fmt.Errorf("storage: encode dataset: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("storage: close gzip writer: %w", err)
	}
	return nil
}

// Read decodes a dataset written by Write.
func Read(r io.Reader) (*Dataset, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("storage: open gzip reader: %w", err)
	}
	defer gz.Close()

	var dataset Dataset
	if err := gob.NewDecoder(gz).Decode(&dataset); err != nil {
		return nil, fmt.Errorf("storage: decode dataset: %w", err)
	}
	return &dataset, nil
}
