// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package feed

import (
	"encoding/csv"
	"fmt"
	"io"
)

// getter fetches a row's value for a named column, reporting whether the
// column was present in the table's header at all.
type getter func(name string) (string, bool)

// columns maps a header name onto its position in each record.
type columns map[string]int

func readHeader(r *csv.Reader) (columns, error) {
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	cols := make(columns, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols, nil
}

// rowDecoder turns one CSV record into a T, using get to read named
// columns and fail to report a malformed one (fail fills in the file,
// line and column automatically).
type rowDecoder[T any] func(get getter, fail func(column string, reason error) error) (T, error)

// rows drains file through decode, yielding one T per row. Any error
// decode returns, or any error the CSV reader itself hits (malformed
// quoting, a row with the wrong field count), stops the iteration and is
// recorded on s; the caller retrieves it via s.Err() once ranging ends.
// A missing optional file yields nothing and records no error — callers
// that need to distinguish "absent" from "empty" use s.backend.exists
// directly (see Colors, Shapes).
func rows[T any](s *Source, file string, decode rowDecoder[T]) func(yield func(T) bool) {
	return func(yield func(T) bool) {
		if s.err != nil || !s.backend.exists(file) {
			return
		}

		r, err := s.backend.open(file)
		if err != nil {
			s.err = err
			return
		}
		defer r.Close()

		reader := csv.NewReader(r)
		reader.ReuseRecord = true

		cols, err := readHeader(reader)
		if err == io.EOF {
			return
		}
		if err != nil {
			s.err = fmt.Errorf("feed: %s: %w", file, err)
			return
		}

		line := 1
		for {
			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				s.err = fmt.Errorf("feed: %s: %w", file, err)
				return
			}
			line++

			get := func(name string) (string, bool) {
				i, ok := cols[name]
				if !ok || i >= len(record) {
					return "", false
				}
				return record[i], true
			}
			fail := func(column string, reason error) error {
				return malformed(file, line, column, reason)
			}

			row, err := decode(get, fail)
			if err != nil {
				s.err = err
				return
			}
			if !yield(row) {
				return
			}
		}
	}
}
