// Package parallel provides CPU-bound work partitioning helpers used by the
// kernel and benchmark packages.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides the specified total number (items) according to the number
// of CPU cores, and executes the specified function (fn) in parallel for each
// range (start, end).
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// Ceiling division so every item is covered
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold performs parallelization only when the number of
// items exceeds the threshold. Below the threshold the function runs
// sequentially, avoiding goroutine overhead on small Gram matrices.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// ForEach runs fn(i) for every i in [0, items) across maxWorkers goroutines
// and returns the first non-nil error by index order. Each index is processed
// by exactly one worker, so fn may write to index-addressed shared slices
// without further synchronization. With maxWorkers <= 1 the loop is
// sequential and stops at the first error.
func ForEach(items, maxWorkers int, fn func(i int) error) error {
	if items == 0 {
		return nil
	}
	if maxWorkers <= 1 {
		for i := 0; i < items; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	if maxWorkers > items {
		maxWorkers = items
	}

	errs := make([]error, items)
	var wg sync.WaitGroup
	next := make(chan int)

	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				errs[i] = fn(i)
			}
		}()
	}

	for i := 0; i < items; i++ {
		next <- i
	}
	close(next)
	wg.Wait()

	// Report the lowest failing index so reruns are deterministic
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
