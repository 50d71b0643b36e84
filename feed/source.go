// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

// Package feed opens a GTFS-shaped transit feed — a directory, a zip
// archive, or an S3 object — and exposes each of its logical tables as a
// row iterator. The CSV/zip/S3 mechanics here are intentionally thin: this
// package is the swappable I/O boundary the rest of the compiler consumes
// through typed rows, not the schema authority for the dataset itself.
package feed

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// backend is the narrow interface a feed location (directory, zip archive,
// S3 object) must satisfy: open a named table by its feed-relative file
// name, and report whether it exists without needing to open it.
type backend interface {
	open(name string) (io.ReadCloser, error)
	exists(name string) bool
	close() error
}

// Open resolves location to a feed backend: an "s3://bucket/key" URI, a
// path to a directory, or a path to a zip archive.
func Open(location string) (*Source, error) {
	if strings.HasPrefix(location, "s3://") {
		b, err := openS3(location)
		if err != nil {
			return nil, err
		}
		return &Source{backend: b}, nil
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}

	if info.IsDir() {
		return &Source{backend: dirBackend(location)}, nil
	}

	b, err := openZip(location)
	if err != nil {
		return nil, err
	}
	return &Source{backend: b}, nil
}

// dirBackend reads each table as a plain file in a directory.
type dirBackend string

func (d dirBackend) open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(string(d), name))
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	return f, nil
}

func (d dirBackend) exists(name string) bool {
	_, err := os.Stat(filepath.Join(string(d), name))
	return err == nil
}

func (d dirBackend) close() error { return nil }

// zipBackend reads each table as an entry of a zip archive. A GTFS-style
// zip sometimes nests every entry under a single top-level directory;
// entries are matched by base name to tolerate that.
type zipBackend struct {
	file    *os.File
	archive *zip.Reader
}

func openZip(path string) (*zipBackend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("feed: %w", err)
	}
	archive, err := zip.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("feed: %w", err)
	}
	return &zipBackend{file: f, archive: archive}, nil
}

func (z *zipBackend) find(name string) *zip.File {
	for _, f := range z.archive.File {
		if f.Name == name || filepath.Base(f.Name) == name {
			return f
		}
	}
	return nil
}

func (z *zipBackend) open(name string) (io.ReadCloser, error) {
	f := z.find(name)
	if f == nil {
		return nil, fmt.Errorf("feed: %s not found in archive", name)
	}
	return f.Open()
}

func (z *zipBackend) exists(name string) bool {
	return z.find(name) != nil
}

func (z *zipBackend) close() error {
	return z.file.Close()
}
