// Package hull adapts the quickhull-go convex hull routine into the
// half-edge mesh shape the geometry rebuild is written against: a
// vertex array, a face array referencing one half-edge each, and a
// half-edge array where each entry names its end vertex, its next
// half-edge around the same face, its opposite twin, and its owning
// face. The rest of this module treats the hull algorithm as opaque;
// this package is the one place that knows which library computes it.
package hull

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

// HalfEdge is a directed edge of a triangular face.
type HalfEdge struct {
	EndVertex int
	Next      int
	Opp       int
	Face      int
}

// Face stores one half-edge of its boundary; the other two are reached
// by following Next.
type Face struct {
	HalfEdge int
}

// Mesh is the half-edge mesh returned by Compute.
type Mesh struct {
	Vertices  []r3.Vector
	Faces     []Face
	HalfEdges []HalfEdge
}

// Compute runs the convex hull of points and returns it as a half-edge
// mesh with outward-oriented triangular faces. eps is the hull's
// coplanarity tolerance. points must contain at least 4 elements.
//
// quickhull-go keeps the input order (it reports triangle indices into
// the slice passed in, not a reordered/deduplicated copy), so
// Mesh.Vertices is simply a copy of points; a different hull routine is
// free to permute it, and callers must treat Mesh.Vertices, not points,
// as the authoritative order going forward.
func Compute(points []r3.Vector, eps float64) (*Mesh, error) {
	if len(points) < 4 {
		return nil, fmt.Errorf("hull: at least 4 points are required, got %d", len(points))
	}

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(points, true, true, eps)
	if len(ch.Indices) == 0 || len(ch.Indices)%3 != 0 {
		return nil, fmt.Errorf("hull: quickhull returned %d indices, not a multiple of 3", len(ch.Indices))
	}
	numTriangles := len(ch.Indices) / 3

	vertices := make([]r3.Vector, len(points))
	copy(vertices, points)

	mesh := &Mesh{
		Vertices:  vertices,
		Faces:     make([]Face, numTriangles),
		HalfEdges: make([]HalfEdge, numTriangles*3),
	}

	type directedEdge struct{ from, to int }
	opposites := make(map[directedEdge]int, numTriangles*3)

	for t := 0; t < numTriangles; t++ {
		var v [3]int
		v[0] = ch.Indices[3*t]
		v[1] = ch.Indices[3*t+1]
		v[2] = ch.Indices[3*t+2]
		orientOutward(&v, vertices)

		base := 3 * t
		mesh.Faces[t] = Face{HalfEdge: base}
		for j := 0; j < 3; j++ {
			he := base + j
			end := v[j]
			start := v[(j+2)%3]
			mesh.HalfEdges[he] = HalfEdge{
				EndVertex: end,
				Next:      base + (j+1)%3,
				Face:      t,
			}
			opposites[directedEdge{start, end}] = he
		}
	}

	for t := 0; t < numTriangles; t++ {
		base := 3 * t
		for j := 0; j < 3; j++ {
			he := base + j
			end := mesh.HalfEdges[he].EndVertex
			start := mesh.HalfEdges[base+(j+2)%3].EndVertex
			opp, ok := opposites[directedEdge{end, start}]
			if !ok {
				return nil, errors.New("hull: half-edge has no opposite; hull is not a closed manifold")
			}
			mesh.HalfEdges[he].Opp = opp
		}
	}

	return mesh, nil
}

// orientOutward swaps v[1] and v[2] if the triangle's cross-product
// normal points toward the origin rather than away from it, so every
// face ends up wound counterclockwise as seen from outside the sphere.
func orientOutward(v *[3]int, vertices []r3.Vector) {
	p0, p1, p2 := vertices[v[0]], vertices[v[1]], vertices[v[2]]
	normal := p1.Sub(p0).Cross(p2.Sub(p0))
	if normal.Dot(p0) < 0 {
		v[1], v[2] = v[2], v[1]
	}
}
