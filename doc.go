// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package geofloes maintains a dynamic spherical tessellation: a
// variable-sized set of points on the unit sphere together with the
// spherical Voronoi diagram they induce and its dual Delaunay
// triangulation. Points disperse under a repulsive relaxation dynamic;
// geometry is rebuilt on demand from a 3-D convex hull of the point
// set.
//
// Board is the public, read-only-query facade: mutate with AddFaces,
// RemoveFace, and UpdateDispersion, then call UpdateGeometryIfNeeded
// before any query that reads derived geometry.
package geofloes
