// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geofloes

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/kriulin/geofloes/parallel"
)

// dispersionStep accumulates one inverse-square repulsion increment
// into step, then integrates it into points and reprojects onto the
// sphere. The force phase reads points concurrently and writes only its
// own step slot; the integration phase reads and writes only its own
// point and step slot. The two phases are separate executor calls so
// that integration never sees a partially updated force pass.
func (d *data) dispersionStep() error {
	n := len(d.points)
	if n == 0 {
		return nil
	}

	alpha := 0.1 / math.Sqrt(float64(n))
	beta := 0.5 / math.Sqrt(float64(n))

	err := parallel.Run(n, d.workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			p := d.points[i]

			var rejection r3.Vector
			for j := 0; j < n; j++ {
				diff := d.points[j].Sub(p)
				q := diff.Dot(diff)
				if q == 0 {
					q = 1
				}
				rejection = rejection.Add(diff.Mul(1 / (q * math.Sqrt(q))))
			}

			s := d.step[i].Sub(rejection.Mul(alpha))
			tangential := s.Sub(p.Mul(p.Dot(s)))
			d.step[i] = tangential.Mul(beta)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return parallel.Run(n, d.workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			d.points[i] = d.points[i].Add(d.step[i]).Normalize()
		}
		return nil
	})
}
