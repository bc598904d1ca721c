// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geofloes

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/golang/geo/r3"
	"github.com/kriulin/geofloes/hull"
	"github.com/kriulin/geofloes/parallel"
)

// rebuildGeometry recomputes Voronoi vertices, per-point neighbor and
// face-vertex lists, and edges from the current point set. On any
// error the point order and derived arrays may already be partly
// overwritten, so the caller's staleness flag must remain set.
func (d *data) rebuildGeometry() error {
	start := time.Now()
	n := len(d.points)

	if n <= 3 {
		d.vertices = nil
		d.neighbors = make([][]int, n)
		d.faces = make([][]int, n)
		d.edges = nil
		d.logger.Debug("rebuildGeometry: degenerate hull", "points", n)
		return nil
	}

	mesh, err := hull.Compute(d.points, d.eps)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHullFailure, err)
	}
	if len(mesh.Vertices) != n {
		return fmt.Errorf("%w: hull returned %d vertices for %d input points", ErrHullFailure, len(mesh.Vertices), n)
	}
	d.points = mesh.Vertices

	if err := d.computeVoronoiVertices(mesh); err != nil {
		return err
	}
	if err := d.computeEdgesAndNeighbors(mesh); err != nil {
		return err
	}
	if err := d.sortFaceVerticesCCW(); err != nil {
		return err
	}

	d.logger.Debug("rebuildGeometry: rebuilt",
		"points", n,
		"vertices", len(d.vertices),
		"edges", len(d.edges),
		"elapsed", time.Since(start))
	return nil
}

// computeVoronoiVertices is geometry rebuild phase 4: one Voronoi
// vertex per hull face, the normalized cross product of two of its
// triangle edges.
func (d *data) computeVoronoiVertices(mesh *hull.Mesh) error {
	d.vertices = make([]r3.Vector, len(mesh.Faces))
	return parallel.Run(len(mesh.Faces), d.workers, func(lo, hi int) error {
		for f := lo; f < hi; f++ {
			e0 := mesh.Faces[f].HalfEdge
			var v [3]int
			e := e0
			for j := 0; j < 3; j++ {
				v[j] = mesh.HalfEdges[e].EndVertex
				e = mesh.HalfEdges[e].Next
			}
			if e != e0 {
				return fmt.Errorf("%w: face %d is not a triangle", ErrInvariantViolation, f)
			}
			a := d.points[v[1]].Sub(d.points[v[0]])
			b := d.points[v[2]].Sub(d.points[v[1]])
			d.vertices[f] = a.Cross(b).Normalize()
		}
		return nil
	})
}

// computeEdgesAndNeighbors is geometry rebuild phase 5. Each half-edge
// contributes one entry to edges, and appends to the neighbor and
// partial face-vertex lists of the point it ends at. Appends to a
// shared point's lists are serialized by that point's mutex; half-edges
// ending at different points never contend.
func (d *data) computeEdgesAndNeighbors(mesh *hull.Mesh) error {
	n := len(d.points)
	d.neighbors = make([][]int, n)
	d.faces = make([][]int, n)
	d.edges = make([][2]int, len(mesh.HalfEdges))
	locks := make([]sync.Mutex, n)

	return parallel.Run(len(mesh.HalfEdges), d.workers, func(lo, hi int) error {
		for h := lo; h < hi; h++ {
			he := mesh.HalfEdges[h]
			opp := mesh.HalfEdges[he.Opp]
			from, to := he.EndVertex, opp.EndVertex
			fa, fb := he.Face, opp.Face

			d.edges[h] = [2]int{fa, fb}

			locks[from].Lock()
			d.neighbors[from] = append(d.neighbors[from], to)
			d.faces[from] = append(d.faces[from], fa)
			locks[from].Unlock()
		}
		return nil
	})
}

// sortFaceVerticesCCW is geometry rebuild phase 6: sort each point's
// face-vertex list counterclockwise, as seen from outside the sphere,
// using an angular coordinate computed in an orthonormal tangent frame
// at the point.
func (d *data) sortFaceVerticesCCW() error {
	return parallel.Run(len(d.faces), d.workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			fv := d.faces[i]
			if len(fv) < 3 {
				return fmt.Errorf("%w: point %d has %d bounding vertices, want >= 3", ErrInvariantViolation, i, len(fv))
			}

			p := d.points[i]
			f0 := d.vertices[fv[0]]
			r := f0.Cross(p).Normalize()
			u := p.Cross(r).Normalize()

			angled := make([]angledVertex, len(fv))
			for j, v := range fv {
				angled[j] = angledVertex{v, tangentAngle(r, u, d.vertices[v])}
			}
			sortByAngle(angled)
			for j := range angled {
				fv[j] = angled[j].v
			}
		}
		return nil
	})
}

// tangentAngle returns the angle of p in [0, 2π) within the tangent
// frame (r, u), increasing counterclockwise.
func tangentAngle(r, u, p r3.Vector) float64 {
	x, y := r.Dot(p), u.Dot(p)
	rho := math.Hypot(x, y)
	if x >= 0 {
		return math.Acos(y / rho)
	}
	return 2*math.Pi - math.Acos(y/rho)
}

type angledVertex struct {
	v int
	a float64
}

// sortByAngle sorts av ascending by angle in place. Face-vertex lists
// are small, so a plain insertion sort suffices.
func sortByAngle(av []angledVertex) {
	for i := 1; i < len(av); i++ {
		for j := i; j > 0 && av[j].a < av[j-1].a; j-- {
			av[j], av[j-1] = av[j-1], av[j]
		}
	}
}
