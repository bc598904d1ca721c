// Package parallel provides a data-parallel primitive for splitting a
// contiguous range of work across a fixed number of goroutines and
// waiting for all of them to finish.
package parallel

import "sync"

// Kernel is a unit of work over the half-open range [lo, hi).
type Kernel func(lo, hi int) error

// Run partitions [0, n) into at most workers contiguous, disjoint
// sub-ranges and runs kernel over each sub-range on its own goroutine.
// Worker j (0-indexed) receives [n*j/workers, n*(j+1)/workers); empty
// sub-ranges are skipped. Run blocks until every invocation returns.
//
// If any invocation returns a non-nil error, Run waits for the rest to
// finish, then returns the first error observed in worker order. There
// is no cancellation: in-flight kernels always run to completion.
func Run(n, workers int, kernel Kernel) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	errs := make([]error, workers)

	var wg sync.WaitGroup
	for j := 0; j < workers; j++ {
		lo := n * j / workers
		hi := n * (j + 1) / workers
		if lo == hi {
			continue
		}
		wg.Add(1)
		go func(j, lo, hi int) {
			defer wg.Done()
			errs[j] = kernel(lo, hi)
		}(j, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
