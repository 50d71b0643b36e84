// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package main

import (
	"archive/zip"
	"compress/flate"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
)

// runCompress packs every regular file directly inside a directory of
// GTFS-style tables into a flat zip archive that feed.Open's zip backend
// can read back.
func runCompress(args []string) error {
	flags := flag.NewFlagSet("compress", flag.ExitOnError)
	level := flags.IntP("level", "l", 9, "deflate compression level, 0-9")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "gtfs2bin compress - pack a directory of tables into a feed zip archive\n\nUsage:\n\n  gtfs2bin compress [options] <dir> <archive.zip>\n\nOptions:\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() != 2 {
		flags.Usage()
		os.Exit(1)
	}

	dir := flags.Arg(0)
	archivePath := flags.Arg(1)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, *level)
	})

	written := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fmt.Fprintf(os.Stderr, "Packing %s...", entry.Name())

		if err := addFile(zw, dir, entry.Name()); err != nil {
			zw.Close()
			return err
		}
		written++

		fmt.Fprintf(os.Stderr, " done.\n")
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %d table(s) to %s.\n", written, archivePath)
	return nil
}

func addFile(zw *zip.Writer, dir, name string) error {
	src, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	defer src.Close()

	header := &zip.FileHeader{Name: name, Method: zip.Deflate}
	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	return nil
}
