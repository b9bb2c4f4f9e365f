// Package pools provides the fixed-size worker pool the server runs
// connections on.
package pools

import (
	"runtime"
	"sync/atomic"
)

// Task is one unit of work: a single connection, handled start to
// finish by whichever worker picks it up.
type Task func()

// Depth of each worker's queue.
const queueDepth = 64

// WorkerPool is a bounded pool of OS-level parallel workers. Each
// worker owns a queue and steals from its siblings when idle. When
// every queue is full, Submit blocks; saturation is the pool's
// back-pressure.
type WorkerPool struct {
	size   int
	queues []chan Task
	closed atomic.Bool

	submitted atomic.Uint64
	completed atomic.Uint64
	steals    atomic.Uint64
}

// NewWorkerPool starts a pool of size workers. A non-positive size
// selects the available parallelism, with a floor of two.
func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	if size < 2 {
		size = 2
	}

	p := &WorkerPool{
		size:   size,
		queues: make([]chan Task, size),
	}
	for i := range p.queues {
		p.queues[i] = make(chan Task, queueDepth)
	}
	for i := 0; i < size; i++ {
		go p.run(i)
	}
	return p
}

// Submit hands a task to the pool. It reports false when the pool is
// closed and otherwise blocks until a queue accepts the task.
func (p *WorkerPool) Submit(task Task) bool {
	if p.closed.Load() {
		return false
	}

	idx := int(p.submitted.Add(1)) % p.size

	// Round-robin with one nonblocking probe of the next queue before
	// settling in to wait on the assigned one.
	select {
	case p.queues[idx] <- task:
		return true
	default:
	}
	select {
	case p.queues[(idx+1)%p.size] <- task:
		return true
	default:
	}

	p.queues[idx] <- task
	return true
}

func (p *WorkerPool) run(id int) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	own := p.queues[id]
	for {
		select {
		case task, ok := <-own:
			if !ok {
				return
			}
			task()
			p.completed.Add(1)
			continue
		default:
		}

		if p.steal(id) {
			continue
		}

		task, ok := <-own
		if !ok {
			return
		}
		task()
		p.completed.Add(1)
	}
}

// steal runs one task from a sibling's queue, if any sibling has work.
func (p *WorkerPool) steal(id int) bool {
	for i := 1; i < p.size; i++ {
		select {
		case task, ok := <-p.queues[(id+i)%p.size]:
			if !ok {
				continue
			}
			task()
			p.steals.Add(1)
			p.completed.Add(1)
			return true
		default:
		}
	}
	return false
}

// Close shuts the pool down. Queued tasks still run; new submissions
// are rejected.
func (p *WorkerPool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	for _, q := range p.queues {
		close(q)
	}
}

// Stats is a snapshot of the pool's counters.
type Stats struct {
	Size      int
	Submitted uint64
	Completed uint64
	Steals    uint64
}

func (p *WorkerPool) Stats() Stats {
	return Stats{
		Size:      p.size,
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Steals:    p.steals.Load(),
	}
}
