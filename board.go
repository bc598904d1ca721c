// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geofloes

import (
	"fmt"
	"math"
	"time"

	"github.com/golang/geo/r3"
	"github.com/kriulin/geofloes/utils"
)

// Board is the stable, read-only public surface over a board's point
// set and derived geometry. It tracks a single staleness flag: mutators
// set it, UpdateGeometryIfNeeded clears it, and every query that reads
// derived geometry fails with ErrStaleGeometry while it is set.
//
// A Board is not safe for concurrent use; the concurrency it exposes is
// internal to UpdateDispersion and UpdateGeometryIfNeeded.
type Board struct {
	d     *data
	stale bool
}

// NewBoard constructs a board with n points placed by the configured
// placement function (utils.Cube by default) and marks it stale.
func NewBoard(n int, opts ...Option) (*Board, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if !cfg.seedSet {
		cfg.seed = time.Now().UnixNano()
	}

	b := &Board{d: newData(n, cfg), stale: true}
	b.d.logger.Debug("NewBoard: constructed", "points", n)
	return b, nil
}

// AddFaces adds delta points if delta > 0, newly placed by the board's
// placement function, or removes |delta| points from the tail if
// delta < 0 (clamped so the board never shrinks below zero points).
// It marks the board stale.
func (b *Board) AddFaces(delta int) {
	if delta == 0 {
		return
	}
	b.d.addPoints(delta)
	b.stale = true
}

// RemoveFace removes one point by index, wrapped modulo the current
// point count (so -1 removes the last point), via swap-erase with the
// tail. It marks the board stale. It returns an error only if the
// board currently has no points.
func (b *Board) RemoveFace(faceID int) error {
	if err := b.d.removePoint(faceID); err != nil {
		return err
	}
	b.stale = true
	return nil
}

// UpdateDispersion runs one step of the repulsive dispersion dynamic
// and marks the board stale.
func (b *Board) UpdateDispersion() error {
	if err := b.d.dispersionStep(); err != nil {
		return err
	}
	b.stale = true
	return nil
}

// UpdateGeometryIfNeeded rebuilds Voronoi vertices, neighbors, face
// vertices, and edges if the board is stale; otherwise it is a no-op.
// On failure the board remains stale.
func (b *Board) UpdateGeometryIfNeeded() error {
	if !b.stale {
		return nil
	}
	if err := b.d.rebuildGeometry(); err != nil {
		return err
	}
	b.stale = false
	return nil
}

// FaceCount returns the number of points, or 0 if there are 3 or fewer
// (a convex hull of at most 3 points on a sphere is not a surface).
// Unlike most queries, FaceCount never fails with ErrStaleGeometry: it
// reads only the raw point count.
func (b *Board) FaceCount() int {
	n := len(b.d.points)
	if n <= 3 {
		return 0
	}
	return n
}

// FaceCenter returns point i. Like FaceCount, it never fails with
// ErrStaleGeometry.
func (b *Board) FaceCenter(i int) r3.Vector {
	return b.d.points[i]
}

// FaceCenters returns every point, in the board's current order. Like
// FaceCount, it never fails with ErrStaleGeometry. The returned slice
// is a view; it is invalidated by the next mutation or rebuild.
func (b *Board) FaceCenters() []r3.Vector {
	return b.d.points
}

// FaceNeighbors returns the indices of the points adjacent to point i
// in the Delaunay triangulation, in half-edge scan order (not angular
// order; see FaceVertices for that).
func (b *Board) FaceNeighbors(i int) ([]int, error) {
	if b.stale {
		return nil, ErrStaleGeometry
	}
	return b.d.neighbors[i], nil
}

// FaceVertices returns the indices of the Voronoi vertices bounding
// point i's cell, sorted counterclockwise as seen from outside the
// sphere at point i.
func (b *Board) FaceVertices(i int) ([]int, error) {
	if b.stale {
		return nil, ErrStaleGeometry
	}
	return b.d.faces[i], nil
}

// VertexCount returns the number of Voronoi vertices (one per hull
// face).
func (b *Board) VertexCount() (int, error) {
	if b.stale {
		return 0, ErrStaleGeometry
	}
	return len(b.d.vertices), nil
}

// VertexPosition returns Voronoi vertex i.
func (b *Board) VertexPosition(i int) (r3.Vector, error) {
	if b.stale {
		return r3.Vector{}, ErrStaleGeometry
	}
	return b.d.vertices[i], nil
}

// VertexPositions returns every Voronoi vertex. The returned slice is a
// view; it is invalidated by the next mutation or rebuild.
func (b *Board) VertexPositions() ([]r3.Vector, error) {
	if b.stale {
		return nil, ErrStaleGeometry
	}
	return b.d.vertices, nil
}

// EdgeCount returns the number of directed Voronoi edges (one per
// half-edge; each undirected edge appears twice).
func (b *Board) EdgeCount() (int, error) {
	if b.stale {
		return 0, ErrStaleGeometry
	}
	return len(b.d.edges), nil
}

// EdgeVertex returns the pair of Voronoi vertex indices bounding edge
// i.
func (b *Board) EdgeVertex(i int) ([2]int, error) {
	if b.stale {
		return [2]int{}, ErrStaleGeometry
	}
	return b.d.edges[i], nil
}

// Edges returns every Voronoi edge. The returned slice is a view; it is
// invalidated by the next mutation or rebuild.
func (b *Board) Edges() ([][2]int, error) {
	if b.stale {
		return nil, ErrStaleGeometry
	}
	return b.d.edges, nil
}

// DispersionEnergy returns the sum of squared step-buffer norms, a
// readout of how much the last dispersion step moved the points. It
// reads the step buffer directly and carries no staleness semantics.
func (b *Board) DispersionEnergy() float64 {
	var sum float64
	for _, s := range b.d.step {
		sum += s.Dot(s)
	}
	return sum
}

// NearestFace returns the index of the point whose direction is
// closest to dir. Like FaceCount, it never fails with
// ErrStaleGeometry: it reads only the raw point buffer.
func (b *Board) NearestFace(dir r3.Vector) int {
	best, bestDot := -1, math.Inf(-1)
	for i, p := range b.d.points {
		if dot := p.Dot(dir); dot > bestDot {
			best, bestDot = i, dot
		}
	}
	return best
}

// ResetPoint re-seeds point i to dir (normalized) and zeroes its step
// slot. It marks the board stale.
func (b *Board) ResetPoint(i int, dir r3.Vector) error {
	if i < 0 || i >= len(b.d.points) {
		return fmt.Errorf("geofloes: ResetPoint: index %d out of range [0, %d)", i, len(b.d.points))
	}
	b.d.points[i] = dir.Normalize()
	b.d.step[i] = r3.Vector{}
	b.stale = true
	return nil
}

// ResetAll re-places every point with placement (utils.Cube or
// utils.Spiral, for example) and zeroes every step slot. It marks the
// board stale.
func (b *Board) ResetAll(placement utils.Func) {
	if placement == nil {
		placement = utils.Cube
	}
	n := len(b.d.points)
	for i := 0; i < n; i++ {
		b.d.points[i] = placement(b.d.rng, i, n)
		b.d.step[i] = r3.Vector{}
	}
	b.stale = true
}
