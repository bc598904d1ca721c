// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geofloes

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/kriulin/geofloes/utils"
)

const defaultEps = 1e-12

type config struct {
	eps       float64
	logger    *slog.Logger
	workers   int
	seed      int64
	seedSet   bool
	placement utils.Func
}

func defaultConfig() config {
	return config{
		eps:       defaultEps,
		logger:    slog.Default(),
		workers:   runtime.GOMAXPROCS(0),
		placement: utils.Cube,
	}
}

// Option configures a Board at construction time.
type Option func(*config) error

// WithEps sets the coplanarity tolerance passed to the convex hull
// routine on every rebuild. eps must be positive.
func WithEps(eps float64) Option {
	return func(c *config) error {
		if eps <= 0 {
			return fmt.Errorf("geofloes: WithEps: eps must be positive, got %v", eps)
		}
		c.eps = eps
		return nil
	}
}

// WithLogger injects the slog.Logger the board logs rebuilds and
// boundary-clamped mutations to, in place of the process-wide default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return fmt.Errorf("geofloes: WithLogger: logger must not be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithWorkerCount pins the number of goroutines the parallel executor
// dispatches to, overriding the default of runtime.GOMAXPROCS(0). The
// count is fixed for the lifetime of the board.
func WithWorkerCount(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("geofloes: WithWorkerCount: n must be positive, got %d", n)
		}
		c.workers = n
		return nil
	}
}

// WithSeed fixes the random source used to place newly created points,
// for reproducible construction and tests.
func WithSeed(seed int64) Option {
	return func(c *config) error {
		c.seed = seed
		c.seedSet = true
		return nil
	}
}

// WithPlacement sets the function used to place newly created points
// (at construction, and by AddFaces and ResetAll). Defaults to
// utils.Cube.
func WithPlacement(placement utils.Func) Option {
	return func(c *config) error {
		if placement == nil {
			return fmt.Errorf("geofloes: WithPlacement: placement must not be nil")
		}
		c.placement = placement
		return nil
	}
}
