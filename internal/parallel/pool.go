package parallel

import "sync"

// Run drains pool with the given number of worker goroutines and blocks
// until all of them have returned.
//
// Each worker loops claim → fn(worker, tile) until the pool is exhausted.
// fn is called concurrently from different workers but never twice for the
// same tile. If workers is less than 1, a single worker is used.
//
// Run returns the number of tiles each worker processed.
func Run(workers int, pool *TilePool, fn func(worker int, t Tile)) []int {
	if workers < 1 {
		workers = 1
	}

	counts := make([]int, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		go func() {
			defer wg.Done()
			for {
				t, ok := pool.Claim()
				if !ok {
					return
				}
				fn(w, t)
				counts[w]++
			}
		}()
	}
	wg.Wait()

	return counts
}
