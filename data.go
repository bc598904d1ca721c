// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geofloes

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/kriulin/geofloes/utils"
)

// data owns the point array and every array derived from it. It has no
// public surface of its own; Board is the stable facade in front of it.
type data struct {
	rng       *rand.Rand
	logger    *slog.Logger
	workers   int
	eps       float64
	placement utils.Func

	points []r3.Vector // P
	step   []r3.Vector // S

	vertices  []r3.Vector // V
	neighbors [][]int     // N
	faces     [][]int     // F
	edges     [][2]int    // E
}

func newData(n int, cfg config) *data {
	d := &data{
		rng:       rand.New(rand.NewSource(cfg.seed)),
		logger:    cfg.logger,
		workers:   cfg.workers,
		eps:       cfg.eps,
		placement: cfg.placement,
		points:    make([]r3.Vector, n),
		step:      make([]r3.Vector, n),
	}
	for i := range d.points {
		d.points[i] = d.placement(d.rng, i, n)
	}
	return d
}

// addPoints resizes points and step by delta columns. delta > 0 appends
// newly placed points with a zeroed step; delta < 0 drops points from
// the tail, clamped so the board never shrinks below zero points.
func (d *data) addPoints(delta int) {
	n := len(d.points)
	if delta < -n {
		d.logger.Warn("addPoints: delta clamped to remove all points", "delta", delta, "points", n)
		delta = -n
	}
	if delta == 0 {
		return
	}
	if delta < 0 {
		d.points = d.points[:n+delta]
		d.step = d.step[:n+delta]
		return
	}
	total := n + delta
	for i := n; i < total; i++ {
		d.points = append(d.points, d.placement(d.rng, i, total))
		d.step = append(d.step, r3.Vector{})
	}
}

// removePoint swap-erases point i (wrapped modulo the current count)
// with the last point, then shrinks by one. It does not preserve order.
func (d *data) removePoint(i int) error {
	n := len(d.points)
	if n == 0 {
		return fmt.Errorf("geofloes: removePoint: board has no points")
	}
	idx := ((i % n) + n) % n
	last := n - 1
	d.points[idx] = d.points[last]
	d.step[idx] = d.step[last]
	d.points = d.points[:last]
	d.step = d.step[:last]
	return nil
}
