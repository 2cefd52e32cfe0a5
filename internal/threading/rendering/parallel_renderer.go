package rendering

import (
	"raycastmaze/internal/threading/core"
)

// Columns narrower than this are cast inline.
const minParallelColumns = 8

// minColumnBatch keeps batches large enough to amortize the queue hand-off.
const minColumnBatch = 4

// ColumnScheduler spreads per-column work for one frame across a worker pool.
// Columns write disjoint pixels, so batches need no locking between them.
type ColumnScheduler struct {
	workerPool *core.WorkerPool
}

// NewColumnScheduler creates a scheduler with its own pool of the given size.
// workers <= 0 uses one worker per CPU.
func NewColumnScheduler(workers int) *ColumnScheduler {
	pool := core.NewWorkerPool(workers)
	pool.Start()
	return &ColumnScheduler{workerPool: pool}
}

// Workers returns the size of the underlying pool.
func (cs *ColumnScheduler) Workers() int {
	return cs.workerPool.GetNumWorkers()
}

// Columns calls fn once for every column in [0, n) and returns when all calls
// have finished.
func (cs *ColumnScheduler) Columns(n int, fn func(column int)) {
	// Very small workloads: process inline to avoid synchronization overhead
	if n <= minParallelColumns {
		for column := 0; column < n; column++ {
			fn(column)
		}
		return
	}
	cs.workerPool.ParallelFor(0, n, minColumnBatch, fn)
}

// Stop shuts down the pool.
func (cs *ColumnScheduler) Stop() {
	cs.workerPool.Stop()
}
