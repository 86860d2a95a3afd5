// Package rwcoord implements the writer-preferring reader/writer
// coordinator described in spec §5: a long-lived read-mostly catalog (for
// this module, a loaded taxonomy) served to many concurrent readers while
// occasional writers refresh it, with writers taking precedence over new
// readers to avoid starvation.
//
// No repository in the retrieved pack implements this as a reusable
// primitive (golang.org/x/sync/errgroup solves fan-out-with-first-error,
// a different problem; dolthub-go-mysql-server's connection pool types
// lease fixed resources rather than arbitrate reader/writer epochs), so
// this is built directly on sync.Mutex/sync.Cond, the standard idiomatic
// Go primitive for condition-based arbitration (see DESIGN.md).
package rwcoord

import "sync"

// Coordinator arbitrates access to one shared resource under the rules of
// spec §5: any number of readers may hold the resource concurrently as
// long as no writer is active or waiting; at most one writer holds it at
// a time; once a writer is waiting, new readers block until every queued
// writer has run, which prevents writer starvation.
type Coordinator struct {
	mu             sync.Mutex
	cond           *sync.Cond
	activeReaders  int
	writerActive   bool
	writersWaiting int
}

// New returns a ready-to-use Coordinator.
func New() *Coordinator {
	c := &Coordinator{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// ReadToken is a scoped reader admission. Release must be called exactly
// once, ordinarily via defer immediately after AcquireRead returns, so
// that a panic while the token is held still releases it (spec §5:
// "exceptions during held time must still release", the "at_work" flag
// gating the decrement).
type ReadToken struct {
	c      *Coordinator
	atWork bool
}

// WriteToken is the writer analogue of ReadToken.
type WriteToken struct {
	c      *Coordinator
	atWork bool
}

// AcquireRead blocks until no writer is active and no writer is waiting,
// then admits one more concurrent reader.
func (c *Coordinator) AcquireRead() *ReadToken {
	c.mu.Lock()
	for c.writerActive || c.writersWaiting > 0 {
		c.cond.Wait()
	}
	c.activeReaders++
	c.mu.Unlock()
	return &ReadToken{c: c, atWork: true}
}

// Release ends this reader's critical section. If it was the last active
// reader, it wakes whichever waiter (a queued writer, or the next batch
// of readers if none is queued) is eligible to proceed.
func (t *ReadToken) Release() {
	if !t.atWork {
		return
	}
	t.atWork = false
	c := t.c
	c.mu.Lock()
	c.activeReaders--
	if c.activeReaders == 0 {
		c.cond.Broadcast()
	}
	c.mu.Unlock()
}

// AcquireWrite registers as a waiting writer (which blocks new readers
// from entering), blocks until no reader is active and no other writer is
// active, then becomes the active writer.
func (c *Coordinator) AcquireWrite() *WriteToken {
	c.mu.Lock()
	c.writersWaiting++
	for c.writerActive || c.activeReaders > 0 {
		c.cond.Wait()
	}
	c.writersWaiting--
	c.writerActive = true
	c.mu.Unlock()
	return &WriteToken{c: c, atWork: true}
}

// Release ends this writer's critical section and wakes every waiter, so
// either the single eligible writer or the blocked reader set (whichever
// spec §5's precedence rule now allows) can proceed.
func (t *WriteToken) Release() {
	if !t.atWork {
		return
	}
	t.atWork = false
	c := t.c
	c.mu.Lock()
	c.writerActive = false
	c.cond.Broadcast()
	c.mu.Unlock()
}
