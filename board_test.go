// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geofloes

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func mustNewBoard(t *testing.T, n int, opts ...Option) *Board {
	t.Helper()
	b, err := NewBoard(n, append([]Option{WithSeed(0)}, opts...)...)
	if err != nil {
		t.Fatalf("NewBoard(%d, ...) error = %v, want nil", n, err)
	}
	return b
}

func mustRebuild(t *testing.T, b *Board) {
	t.Helper()
	if err := b.UpdateGeometryIfNeeded(); err != nil {
		t.Fatalf("UpdateGeometryIfNeeded() error = %v, want nil", err)
	}
}

// S1 / invariant 1, 3, 4.
func TestBoard_Invariants_AfterRebuild(t *testing.T) {
	b := mustNewBoard(t, 100)
	mustRebuild(t, b)

	for i, p := range b.FaceCenters() {
		if math.Abs(p.Norm()-1) > 1e-9 {
			t.Errorf("FaceCenters()[%d] norm = %v, want ~1", i, p.Norm())
		}
	}

	vertices, err := b.VertexPositions()
	if err != nil {
		t.Fatalf("VertexPositions() error = %v, want nil", err)
	}
	for i, v := range vertices {
		if math.Abs(v.Norm()-1) > 1e-9 {
			t.Errorf("VertexPositions()[%d] norm = %v, want ~1", i, v.Norm())
		}
	}

	for i := 0; i < b.FaceCount(); i++ {
		fv, err := b.FaceVertices(i)
		if err != nil {
			t.Fatalf("FaceVertices(%d) error = %v, want nil", i, err)
		}
		if len(fv) < 3 {
			t.Errorf("FaceVertices(%d) has %d entries, want >= 3", i, len(fv))
		}

		p := b.FaceCenter(i)
		f0 := vertices[fv[0]]
		r := f0.Cross(p).Normalize()
		u := p.Cross(r).Normalize()

		prev := -1.0
		for j, v := range fv {
			a := tangentAngle(r, u, vertices[v])
			if a <= prev {
				t.Errorf("face %d vertex %d: angle %v not strictly increasing after %v", i, j, a, prev)
			}
			prev = a
		}
	}
}

// Invariant 2.
func TestBoard_PointsAndStepStaySameLength(t *testing.T) {
	b := mustNewBoard(t, 50)
	if len(b.d.points) != len(b.d.step) {
		t.Fatalf("len(points) = %d, len(step) = %d", len(b.d.points), len(b.d.step))
	}
	b.AddFaces(10)
	if len(b.d.points) != len(b.d.step) {
		t.Fatalf("after AddFaces(10): len(points) = %d, len(step) = %d", len(b.d.points), len(b.d.step))
	}
	if err := b.RemoveFace(-1); err != nil {
		t.Fatalf("RemoveFace(-1) error = %v, want nil", err)
	}
	if len(b.d.points) != len(b.d.step) {
		t.Fatalf("after RemoveFace(-1): len(points) = %d, len(step) = %d", len(b.d.points), len(b.d.step))
	}
}

// S2: dispersion relaxes the arrangement over repeated steps.
func TestBoard_DispersionIncreasesMeanAngularDistance(t *testing.T) {
	b := mustNewBoard(t, 100)

	before := meanPairwiseAngle(b.FaceCenters())
	for i := 0; i < 200; i++ {
		if err := b.UpdateDispersion(); err != nil {
			t.Fatalf("UpdateDispersion() error = %v, want nil", err)
		}
		for j, p := range b.FaceCenters() {
			if math.Abs(p.Norm()-1) > 1e-9 {
				t.Fatalf("step %d: FaceCenters()[%d] norm = %v, want ~1", i, j, p.Norm())
			}
		}
	}
	after := meanPairwiseAngle(b.FaceCenters())

	if after <= before {
		t.Errorf("mean pairwise angle after 200 steps = %v, want > before (%v)", after, before)
	}
}

func meanPairwiseAngle(points []r3.Vector) float64 {
	var sum float64
	var count int
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			sum += math.Acos(clamp(points[i].Dot(points[j]), -1, 1))
			count++
		}
	}
	return sum / float64(count)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// S3: a tetrahedron-sized board.
func TestBoard_Tetrahedron(t *testing.T) {
	b := mustNewBoard(t, 4)
	mustRebuild(t, b)

	if got := b.FaceCount(); got != 4 {
		t.Errorf("FaceCount() = %v, want 4", got)
	}
	vc, err := b.VertexCount()
	if err != nil {
		t.Fatalf("VertexCount() error = %v, want nil", err)
	}
	if vc != 4 {
		t.Errorf("VertexCount() = %v, want 4", vc)
	}
	for i := 0; i < 4; i++ {
		fv, err := b.FaceVertices(i)
		if err != nil {
			t.Fatalf("FaceVertices(%d) error = %v, want nil", i, err)
		}
		if len(fv) != 3 {
			t.Errorf("FaceVertices(%d) has %d entries, want 3", i, len(fv))
		}
	}
	vertices, err := b.VertexPositions()
	if err != nil {
		t.Fatalf("VertexPositions() error = %v, want nil", err)
	}
	for i, v := range vertices {
		if math.Abs(v.Norm()-1) > 1e-9 {
			t.Errorf("VertexPositions()[%d] norm = %v, want ~1", i, v.Norm())
		}
	}
}

// S4: a query requiring derived geometry fails before any rebuild.
func TestBoard_QueryBeforeRebuild_Fails(t *testing.T) {
	b := mustNewBoard(t, 50)
	if _, err := b.FaceNeighbors(0); !errors.Is(err, ErrStaleGeometry) {
		t.Errorf("FaceNeighbors(0) error = %v, want %v", err, ErrStaleGeometry)
	}
}

// S5: a mutation after a rebuild re-stales the board.
func TestBoard_MutationAfterRebuild_Restales(t *testing.T) {
	b := mustNewBoard(t, 50)
	mustRebuild(t, b)
	b.AddFaces(1)
	if _, err := b.FaceNeighbors(0); !errors.Is(err, ErrStaleGeometry) {
		t.Errorf("FaceNeighbors(0) error = %v, want %v", err, ErrStaleGeometry)
	}
}

// S6: every directed edge has a reverse counterpart.
func TestBoard_EdgesHaveReverseCounterparts(t *testing.T) {
	b := mustNewBoard(t, 20)
	mustRebuild(t, b)

	edges, err := b.Edges()
	if err != nil {
		t.Fatalf("Edges() error = %v, want nil", err)
	}
	for _, e := range edges {
		found := false
		for _, other := range edges {
			if other[0] == e[1] && other[1] == e[0] {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("edge %v has no reverse counterpart", e)
		}
	}
}

// Invariant 5.
func TestBoard_AddFaces_GrowsByExactlyK_NewStepIsZero(t *testing.T) {
	b := mustNewBoard(t, 50)
	before := len(b.d.points)
	b.AddFaces(10)
	if got := len(b.d.points); got != before+10 {
		t.Errorf("len(points) = %v, want %v", got, before+10)
	}
	for i := before; i < before+10; i++ {
		if b.d.step[i] != (r3.Vector{}) {
			t.Errorf("step[%d] = %v, want zero", i, b.d.step[i])
		}
	}
}

// Invariant 6.
func TestBoard_RemoveFace_ShrinksByExactlyOne_PermutesRest(t *testing.T) {
	b := mustNewBoard(t, 50)
	before := append([]r3.Vector(nil), b.FaceCenters()...)

	if err := b.RemoveFace(5); err != nil {
		t.Fatalf("RemoveFace(5) error = %v, want nil", err)
	}
	after := b.FaceCenters()
	if len(after) != len(before)-1 {
		t.Fatalf("len(after) = %v, want %v", len(after), len(before)-1)
	}

	seen := make(map[r3.Vector]int)
	for _, p := range after {
		seen[p]++
	}
	missing := 0
	for _, p := range before {
		if seen[p] > 0 {
			seen[p]--
		} else {
			missing++
		}
	}
	if missing != 1 {
		t.Errorf("removing one face removed %d distinct points, want 1", missing)
	}
}

// Invariant 7: calling UpdateGeometryIfNeeded twice is idempotent.
func TestBoard_UpdateGeometryIfNeeded_SecondCallIsNoOp(t *testing.T) {
	b := mustNewBoard(t, 50)
	mustRebuild(t, b)
	before, err := b.VertexPositions()
	if err != nil {
		t.Fatalf("VertexPositions() error = %v, want nil", err)
	}
	beforeCopy := append([]r3.Vector(nil), before...)

	mustRebuild(t, b)
	after, err := b.VertexPositions()
	if err != nil {
		t.Fatalf("VertexPositions() error = %v, want nil", err)
	}
	if len(after) != len(beforeCopy) {
		t.Fatalf("len(after) = %v, want %v", len(after), len(beforeCopy))
	}
	for i := range after {
		if after[i] != beforeCopy[i] {
			t.Errorf("VertexPositions()[%d] changed across a no-op rebuild: %v -> %v", i, beforeCopy[i], after[i])
		}
	}
}

// Invariant 8: add then remove the same delta returns n to its original value.
func TestBoard_AddThenRemove_RestoresCount(t *testing.T) {
	b := mustNewBoard(t, 50)
	before := len(b.d.points)
	b.AddFaces(7)
	b.AddFaces(-7)
	if got := len(b.d.points); got != before {
		t.Errorf("len(points) = %v, want %v", got, before)
	}
}

// Boundary 9: degenerate construction.
func TestBoard_DegenerateConstruction(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3} {
		b := mustNewBoard(t, n)
		mustRebuild(t, b)
		if got := b.FaceCount(); got != 0 {
			t.Errorf("n=%d: FaceCount() = %v, want 0", n, got)
		}
		vc, err := b.VertexCount()
		if err != nil {
			t.Fatalf("n=%d: VertexCount() error = %v, want nil", n, err)
		}
		if vc != 0 {
			t.Errorf("n=%d: VertexCount() = %v, want 0", n, vc)
		}
		edges, err := b.Edges()
		if err != nil {
			t.Fatalf("n=%d: Edges() error = %v, want nil", n, err)
		}
		if len(edges) != 0 {
			t.Errorf("n=%d: len(Edges()) = %v, want 0", n, len(edges))
		}
	}
}

// Boundary 10: removing from an exhausted board fails predictably.
func TestBoard_RemoveFace_OnEmptyBoard_FailsPredictably(t *testing.T) {
	b := mustNewBoard(t, 1)
	if err := b.RemoveFace(-1); err != nil {
		t.Fatalf("RemoveFace(-1) on n=1 error = %v, want nil", err)
	}
	if len(b.d.points) != 0 {
		t.Fatalf("len(points) = %v, want 0", len(b.d.points))
	}
	if err := b.RemoveFace(-1); err == nil {
		t.Errorf("RemoveFace(-1) on n=0 error = nil, want non-nil")
	}
}

func TestBoard_HullFailure_LeavesGeometryStale(t *testing.T) {
	b := mustNewBoard(t, 50)
	mustRebuild(t, b)

	// Collapse every point onto a single direction: not a valid
	// convex-hull input, so the rebuild must fail and leave the board
	// stale rather than clearing the flag on a partial result.
	for i := range b.d.points {
		b.d.points[i] = r3.Vector{X: 1, Y: 0, Z: 0}
	}
	b.stale = true

	err := b.UpdateGeometryIfNeeded()
	if err == nil {
		t.Fatalf("UpdateGeometryIfNeeded() error = nil, want non-nil")
	}
	if _, qerr := b.FaceNeighbors(0); !errors.Is(qerr, ErrStaleGeometry) {
		t.Errorf("FaceNeighbors(0) after failed rebuild error = %v, want %v", qerr, ErrStaleGeometry)
	}
}

func TestBoard_DispersionEnergy_DecreasesTowardEquilibrium(t *testing.T) {
	b := mustNewBoard(t, 50)
	var last float64 = math.Inf(1)
	decreased := 0
	for i := 0; i < 50; i++ {
		if err := b.UpdateDispersion(); err != nil {
			t.Fatalf("UpdateDispersion() error = %v, want nil", err)
		}
		e := b.DispersionEnergy()
		if i > 0 && e < last {
			decreased++
		}
		last = e
	}
	if decreased == 0 {
		t.Errorf("DispersionEnergy() never decreased across 50 steps")
	}
}

func TestBoard_NearestFace(t *testing.T) {
	b := mustNewBoard(t, 200)
	for _, dir := range []r3.Vector{
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 1, Z: 1},
	} {
		got := b.NearestFace(dir)
		want := bruteForceNearest(b.FaceCenters(), dir)
		if got != want {
			t.Errorf("NearestFace(%v) = %v, want %v", dir, got, want)
		}
	}
}

func bruteForceNearest(points []r3.Vector, dir r3.Vector) int {
	best, bestDot := -1, math.Inf(-1)
	for i, p := range points {
		if d := p.Dot(dir); d > bestDot {
			best, bestDot = i, d
		}
	}
	return best
}

func TestBoard_ResetPoint(t *testing.T) {
	b := mustNewBoard(t, 50)
	mustRebuild(t, b)

	dir := r3.Vector{X: 2, Y: 0, Z: 0}
	if err := b.ResetPoint(3, dir); err != nil {
		t.Fatalf("ResetPoint(3, ...) error = %v, want nil", err)
	}
	got := b.FaceCenter(3)
	if math.Abs(got.Norm()-1) > 1e-9 {
		t.Errorf("FaceCenter(3) norm = %v, want ~1", got.Norm())
	}
	if got.Sub(r3.Vector{X: 1, Y: 0, Z: 0}).Norm() > 1e-9 {
		t.Errorf("FaceCenter(3) = %v, want (1,0,0)", got)
	}
	if _, err := b.FaceNeighbors(0); !errors.Is(err, ErrStaleGeometry) {
		t.Errorf("FaceNeighbors(0) after ResetPoint error = %v, want %v", err, ErrStaleGeometry)
	}

	if err := b.ResetPoint(-1, dir); err == nil {
		t.Errorf("ResetPoint(-1, ...) error = nil, want non-nil")
	}
}

func TestBoard_ResetAll(t *testing.T) {
	b := mustNewBoard(t, 50)
	b.ResetAll(nil)
	for i, p := range b.FaceCenters() {
		if math.Abs(p.Norm()-1) > 1e-9 {
			t.Errorf("FaceCenters()[%d] norm = %v, want ~1", i, p.Norm())
		}
	}
	for i, s := range b.d.step {
		if s != (r3.Vector{}) {
			t.Errorf("step[%d] = %v, want zero", i, s)
		}
	}
}

func ExampleBoard() {
	b, err := NewBoard(100, WithSeed(1))
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := b.UpdateGeometryIfNeeded(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(b.FaceCount())
	// Output: 100
}

func BenchmarkBoard_UpdateGeometryIfNeeded(b *testing.B) {
	sizes := []int{1e2, 1e3, 1e4}
	for _, n := range sizes {
		b.Run(fmt.Sprintf("N%d", n), func(b *testing.B) {
			board, err := NewBoard(n, WithSeed(0))
			if err != nil {
				b.Fatalf("NewBoard(%d) error = %v, want nil", n, err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				board.stale = true
				if err := board.UpdateGeometryIfNeeded(); err != nil {
					b.Fatalf("UpdateGeometryIfNeeded() error = %v, want nil", err)
				}
			}
		})
	}
}
