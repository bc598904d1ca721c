// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geofloes

import "errors"

// ErrStaleGeometry is returned by any query that requires derived
// geometry (Voronoi vertices, neighbors, face vertices, edges) while a
// mutation has occurred since the last UpdateGeometryIfNeeded call.
var ErrStaleGeometry = errors.New("geofloes: geometry is stale; call UpdateGeometryIfNeeded first")

// ErrHullFailure is returned when the convex hull routine fails or
// returns a mesh that does not satisfy the half-edge contract (a
// non-triangular face, a half-edge with no opposite). It leaves the
// board's geometry stale.
var ErrHullFailure = errors.New("geofloes: convex hull routine failed")

// ErrInvariantViolation is returned when a geometry rebuild assertion
// fails in a way that points at a contract violation in the hull
// routine rather than an ordinary runtime condition (for example, a
// point with fewer than three bounding Voronoi vertices). It leaves the
// board's geometry stale.
var ErrInvariantViolation = errors.New("geofloes: geometry rebuild invariant violated")
