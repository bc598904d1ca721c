// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geofloes

import "github.com/golang/geo/r3"

// Face is a read-only view of one Voronoi cell, addressed by the index
// of its site in Board's point order. It is a thin convenience wrapper
// over Board's query methods and carries the same staleness semantics.
type Face struct {
	idx int
	b   *Board
}

// Face returns a view of point i's cell.
func (b *Board) Face(i int) Face {
	return Face{idx: i, b: b}
}

// Index returns the face's index into the board's point order.
func (f Face) Index() int {
	return f.idx
}

// Center returns the face's site (its point).
func (f Face) Center() (r3.Vector, error) {
	return f.b.FaceCenter(f.idx), nil
}

// NumVertices returns the number of Voronoi vertices bounding the face.
func (f Face) NumVertices() (int, error) {
	vs, err := f.b.FaceVertices(f.idx)
	if err != nil {
		return 0, err
	}
	return len(vs), nil
}

// VertexIndices returns the indices of the Voronoi vertices bounding
// the face, sorted counterclockwise as seen from outside the sphere.
func (f Face) VertexIndices() ([]int, error) {
	return f.b.FaceVertices(f.idx)
}

// NumNeighbors returns the number of neighboring faces.
func (f Face) NumNeighbors() (int, error) {
	ns, err := f.b.FaceNeighbors(f.idx)
	if err != nil {
		return 0, err
	}
	return len(ns), nil
}

// NeighborIndices returns the indices of the faces neighboring this
// one in the Delaunay triangulation.
func (f Face) NeighborIndices() ([]int, error) {
	return f.b.FaceNeighbors(f.idx)
}
