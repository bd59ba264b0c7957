// Package worker caps how many conversions run at once.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrClosed is returned by Acquire once the pool stopped accepting work.
var ErrClosed = errors.New("worker pool is shutting down")

// Pool hands out a fixed number of conversion slots.
type Pool struct {
	sem      *semaphore.Weighted
	size     int64
	inUse    atomic.Int64
	waiting  atomic.Int64
	mu       sync.Mutex
	stopping bool
}

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: int64(size)}
}

// Acquire blocks until a slot is free or ctx is done. The returned release
// func must be called exactly once; extra calls are no-ops.
func (p *Pool) Acquire(ctx context.Context) (func(), error) {
	if !p.accepting() {
		return nil, ErrClosed
	}
	p.waiting.Add(1)
	err := p.sem.Acquire(ctx, 1)
	p.waiting.Add(-1)
	if err != nil {
		return nil, err
	}
	p.inUse.Add(1)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.inUse.Add(-1)
			p.sem.Release(1)
		})
	}, nil
}

func (p *Pool) Size() int    { return int(p.size) }
func (p *Pool) InUse() int   { return int(p.inUse.Load()) }
func (p *Pool) Waiting() int { return int(p.waiting.Load()) }

// StopAccepting makes later Acquire calls fail with ErrClosed.
func (p *Pool) StopAccepting() {
	p.mu.Lock()
	p.stopping = true
	p.mu.Unlock()
}

func (p *Pool) accepting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.stopping
}

// Drain stops accepting work and waits until every slot is released or ctx
// is done.
func (p *Pool) Drain(ctx context.Context) error {
	p.StopAccepting()
	if err := p.sem.Acquire(ctx, p.size); err != nil {
		return err
	}
	p.sem.Release(p.size)
	return nil
}
