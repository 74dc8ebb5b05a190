// Package parallel provides a small worker pool used to spread Monte Carlo
// iterations across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// WorkerPool manages a pool of worker goroutines consuming submitted tasks.
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup

	mu     sync.RWMutex // protects taskQueue from concurrent close during send
	closed bool
}

// NewWorkerPool creates a pool with the given number of workers. Non-positive
// counts fall back to GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

// Workers returns the pool size.
func (wp *WorkerPool) Workers() int { return wp.workers }

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		task()
	}
}

// Submit adds a task to the pool. Returns false if the pool is closed.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}
	wp.taskQueue <- task
	return true
}

// Wait closes the queue and blocks until every submitted task has finished.
// The pool cannot be reused afterwards.
func (wp *WorkerPool) Wait() {
	wp.mu.Lock()
	if !wp.closed {
		wp.closed = true
		close(wp.taskQueue)
	}
	wp.mu.Unlock()
	wp.wg.Wait()
}

// Partition splits total items into at most parts contiguous [start, end)
// ranges of near-equal size. Fewer ranges are returned when total < parts.
func Partition(total, parts int) [][2]int {
	if total <= 0 || parts <= 0 {
		return nil
	}
	if parts > total {
		parts = total
	}

	ranges := make([][2]int, 0, parts)
	base := total / parts
	extra := total % parts

	start := 0
	for i := 0; i < parts; i++ {
		size := base
		if i < extra {
			size++
		}
		ranges = append(ranges, [2]int{start, start + size})
		start += size
	}
	return ranges
}
