// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package diagnostics

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"

	"github.com/patrickbr/gtfs2bin/geo"
	"github.com/patrickbr/gtfs2bin/shape"
)

// endpointKey identifies a point by its projected coordinates, coarse enough
// that two segments touching at the same real-world location collapse onto
// the same graph vertex.
func endpointKey(p geo.Point) string {
	return fmt.Sprintf("%.7f,%.7f", p.X, p.Y)
}

func vertexID(id string) string { return id }

// addVertex registers id if it isn't already present; segments sharing an
// endpoint are the common case, so "already exists" is not an error here.
func addVertex(g graph.Graph[string, string], id string) error {
	if err := g.AddVertex(id); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return err
	}
	return nil
}

// ConnectedComponents builds an undirected graph whose vertices are segment
// endpoints and whose edges are the segments themselves, then returns the
// number of connected components. A segmented shape pool that feeds a
// single, fully-linked line should reduce to one component per physical
// network; an unexpected jump in the count usually means the segmenter
// split a shape it should have kept joined.
func ConnectedComponents(segments []shape.Segment) (int, error) {
	g := graph.New(vertexID, graph.Undirected())

	for i, seg := range segments {
		points := seg.Points()
		if len(points) == 0 {
			continue
		}
		from := endpointKey(points[0])
		to := endpointKey(points[len(points)-1])
		if err := addVertex(g, from); err != nil {
			return 0, fmt.Errorf("diagnostics: add vertex: %w", err)
		}
		if err := addVertex(g, to); err != nil {
			return 0, fmt.Errorf("diagnostics: add vertex: %w", err)
		}
		if from == to {
			continue
		}
		if err := g.AddEdge(from, to); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return 0, fmt.Errorf("diagnostics: segment %d: %w", i, err)
		}
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return 0, fmt.Errorf("diagnostics: adjacency map: %w", err)
	}

	visited := make(map[string]bool, len(adjacency))
	components := 0
	for id := range adjacency {
		if visited[id] {
			continue
		}
		components++
		err := graph.BFS(g, id, func(v string) bool {
			visited[v] = true
			return false
		})
		if err != nil {
			return 0, fmt.Errorf("diagnostics: bfs from %q: %w", id, err)
		}
	}
	return components, nil
}
